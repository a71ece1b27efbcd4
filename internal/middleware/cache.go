package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/iliyamo/car-rental-reservation/internal/config"
)

// captureWriter tees the response body (up to limit bytes) while forwarding
// it to the client.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
    cw.status = code
    cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
    room := int64(len(b))
    if cw.limit > 0 {
        room = cw.limit - int64(cw.buf.Len())
    }
    switch {
    case room >= int64(len(b)):
        cw.buf.Write(b)
    case room > 0:
        cw.buf.Write(b[:room])
    }
    return cw.ResponseWriter.Write(b)
}

// cacheKey hashes the parts of the request selected by cfg.KeyStrategy.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
    r := c.Request()
    var parts []string
    switch strings.ToLower(cfg.KeyStrategy) {
    case "route":
        parts = []string{"route", c.Path()}
    case "method_route":
        parts = []string{"method", r.Method, "route", c.Path()}
    case "method_route_query":
        parts = []string{"method", r.Method, "route", c.Path(), "q", r.URL.RawQuery}
    default: // route_query
        parts = []string{"route", c.Path(), "q", r.URL.RawQuery}
    }
    sum := sha1.Sum([]byte(strings.Join(parts, ":")))
    return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// Cached entries are framed as [4B status][4B header len][header JSON][body].
func encodeEntry(status int, header http.Header, body []byte) ([]byte, error) {
    hdr, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    out := make([]byte, 8, 8+len(hdr)+len(body))
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdr)))
    out = append(out, hdr...)
    return append(out, body...), nil
}

func decodeEntry(bs []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    hlen := int(binary.BigEndian.Uint32(bs[4:8]))
    if hlen < 0 || 8+hlen > len(bs) {
        return 0, nil, nil, false
    }
    header = make(http.Header)
    if hlen > 0 {
        if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
            return 0, nil, nil, false
        }
    }
    return status, header, bs[8+hlen:], true
}

// cacheableHeaders describe the representation and are the same for every
// client.  Everything else, Set-Cookie in particular, belongs to the request
// that produced the entry and is neither stored nor replayed.
var cacheableHeaders = []string{
    echo.HeaderContentType,
    echo.HeaderContentEncoding,
    "Content-Language",
    "ETag",
    echo.HeaderLastModified,
}

func sharedHeaders(h http.Header) http.Header {
    out := http.Header{}
    for _, k := range cacheableHeaders {
        if vals := h.Values(k); len(vals) > 0 {
            out[http.CanonicalHeaderKey(k)] = append([]string(nil), vals...)
        }
    }
    return out
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// ResponseCache caches successful responses in Redis.  It must only wrap
// routes whose output does not depend on the session, such as keyword
// suggestions and filter options.  Responses carry X-Cache: HIT or MISS.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client, logger *zap.Logger) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passthrough
    }
    if logger == nil {
        logger = zap.NewNop()
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 5 * time.Minute
    }
    limit := int64(cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }
            key := cacheKey(cfg, c)
            res := c.Response()

            if bs, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
                if status, hdr, body, ok := decodeEntry(bs); ok {
                    for k, vals := range sharedHeaders(hdr) {
                        for _, v := range vals {
                            res.Header().Add(k, v)
                        }
                    }
                    res.Header().Set("X-Cache", "HIT")
                    res.WriteHeader(status)
                    _, err := res.Write(body)
                    return err
                }
            } else if err != redis.Nil {
                logger.Debug("cache read failed", zap.String("key", key), zap.Error(err))
            }

            cw := &captureWriter{ResponseWriter: res.Writer, status: http.StatusOK, limit: limit}
            res.Writer = cw
            res.Header().Set("X-Cache", "MISS")
            if err := next(c); err != nil {
                return err
            }
            // truncated bodies are never stored
            if cw.status != http.StatusOK || (limit > 0 && res.Size > limit) {
                return nil
            }
            payload, err := encodeEntry(cw.status, sharedHeaders(res.Header()), cw.buf.Bytes())
            if err != nil {
                return nil
            }
            if err := rdb.SetEx(context.Background(), key, payload, ttl).Err(); err != nil {
                logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
            }
            return nil
        }
    }
}
