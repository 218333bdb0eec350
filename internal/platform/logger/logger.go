// Package logger builds the process slog.Logger on top of zap.
package logger

import (
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// New returns a slog.Logger backed by a zap core together with its flush function.
// Production uses JSON output; anything else gets the coloured console encoder.
// An unparsable level falls back to info.
func New(isProd bool, level string) (*slog.Logger, func() error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	var config zap.Config
	if isProd {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	zapLogger := zap.Must(config.Build())

	return slog.New(zapslog.NewHandler(zapLogger.Core())), zapLogger.Sync
}
