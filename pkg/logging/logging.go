// Package logging configures the process-wide zap logger. Every run gets a
// run_id so log lines from restarts of the same service stay separable.
package logging

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds a production logger at the given level and installs it as the
// zap global, so packages can log through zap.S() without plumbing.
func Init(level string, serviceName string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		lvl = parsed
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	logger = logger.With(
		zap.String("service", serviceName),
		zap.String("run_id", uuid.New().String()),
	)

	zap.ReplaceGlobals(logger)
	return logger, nil
}
