package main

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loggerFactory builds the logger once the log level is known.
type loggerFactory func(level zapcore.Level) (*zap.Logger, error)

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Encoding = "console"
	loggerCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	loggerCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	loggerCfg.Level = zap.NewAtomicLevelAt(level)
	loggerCfg.DisableStacktrace = true
	loggerCfg.Sampling = nil

	logger, err := loggerCfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "new logger")
	}
	return logger, nil
}
