package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/car-rental-reservation/internal/catalog"
	"github.com/iliyamo/car-rental-reservation/internal/config"
	"github.com/iliyamo/car-rental-reservation/internal/database"
	"github.com/iliyamo/car-rental-reservation/internal/handler"
	"github.com/iliyamo/car-rental-reservation/internal/middleware"
	"github.com/iliyamo/car-rental-reservation/internal/reservation"
	"github.com/iliyamo/car-rental-reservation/internal/router"
	"github.com/iliyamo/car-rental-reservation/internal/service"
	"github.com/iliyamo/car-rental-reservation/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is optional unless it also backs storage.  Without it the
	// response cache and rate limiter pass requests through.
	rdb, err := config.NewRedisClient(config.LoadRedisConfig())
	if err != nil {
		if cfg.StorageDriver == config.DriverRedis {
			return fmt.Errorf("redis storage: %w", err)
		}
		logger.Warn("redis unavailable, cache and rate limit disabled", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	store, closeStore, err := openStorage(ctx, cfg, rdb)
	if err != nil {
		return err
	}
	defer closeStore()

	secret := cfg.SessionSecret
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}

	src := catalog.NewLoader(cfg.CatalogSource, cfg.CatalogTimeout)
	var events reservation.EventPublisher
	if cfg.EventsEnabled {
		events = service.NewPublisher(cfg.RabbitURL, logger)
	}

	e := newEcho()
	session := middleware.Session(secret, middleware.SessionOptions{
		TTL:    cfg.SessionTTL,
		Secure: cfg.Env == "prod",
		Logger: logger,
	})
	router.RegisterRoutes(e)
	router.RegisterCatalog(e,
		handler.NewCatalogHandler(src, store, logger),
		session,
		middleware.ResponseCache(config.LoadCacheConfig(), rdb, logger),
	)
	router.RegisterReservation(e,
		handler.NewReservationHandler(src, store, events, logger),
		session,
		middleware.TokenBucket(config.LoadRateLimitConfig(), rdb, logger),
	)

	addr := ":" + cfg.Port
	logger.Info("listening",
		zap.String("addr", addr),
		zap.String("env", cfg.Env),
		zap.String("storage", cfg.StorageDriver),
		zap.String("catalog", cfg.CatalogSource),
	)
	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	return e
}

// openStorage builds the session store selected by STORAGE_DRIVER.  The
// returned func releases resources owned by the store.
func openStorage(ctx context.Context, cfg config.Config, rdb *redis.Client) (storage.Port, func(), error) {
	noop := func() {}
	switch cfg.StorageDriver {
	case config.DriverRedis:
		return storage.NewRedis(rdb, cfg.StoragePrefix, cfg.StorageTTL), noop, nil
	case config.DriverMySQL:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, noop, fmt.Errorf("mysql storage: %w", err)
		}
		if err := database.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return storage.NewSQL(db), func() { _ = db.Close() }, nil
	default:
		return storage.NewMemory(), noop, nil
	}
}
