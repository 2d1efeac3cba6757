package log

import (
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Setup builds the service logger. LOG_LEVEL overrides the default info level.
func Setup() *otelzap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if level, err := zapcore.ParseLevel(lvl); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}

	return otelzap.New(logger, otelzap.WithMinLevel(cfg.Level.Level()))
}

// Nop returns a logger that discards everything, for tests.
func Nop() *otelzap.Logger {
	return otelzap.New(zap.NewNop())
}
