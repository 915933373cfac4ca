package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/strbridge/hostrt"
	"github.com/wippyai/strbridge/transcoder"
)

// installLogger builds a console logger on stderr and hands it to the
// packages that log.
func installLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	transcoder.SetLogger(logger.Named("transcoder"))
	hostrt.SetLogger(logger.Named("hostrt"))
	return logger, nil
}
