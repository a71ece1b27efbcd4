package config

import (
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger.  dev uses zap's development encoder;
// every other environment logs JSON.
func NewLogger(env, level string) (*zap.Logger, error) {
    zc := zap.NewProductionConfig()
    if env == "dev" {
        zc = zap.NewDevelopmentConfig()
    }
    lvl, err := zapcore.ParseLevel(level)
    if err != nil {
        lvl = zapcore.InfoLevel
    }
    zc.Level = zap.NewAtomicLevelAt(lvl)
    return zc.Build()
}
