package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/car-rental-reservation/internal/queue"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Append confirmed reservations from RabbitMQ to the reservation log",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		c := &queue.Consumer{URL: cfg.RabbitURL, LogDir: cfg.ConsumerLogs, Logger: logger}
		logger.Info("reservation consumer started", zap.String("log_dir", cfg.ConsumerLogs))
		err := c.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
