package util

import (
	"fmt"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Must unwraps value, panicking on err. Only for errors that cannot happen
// with the inputs at hand.
func Must[V any](value V, err error) V {
	if err != nil {
		panic(err)
	}
	return value
}

// StdLogger adapts parent for APIs that only accept a *log.Logger, such as
// http.Server.ErrorLog.
func StdLogger(parent *zap.Logger, subsystem string, level zapcore.Level) *log.Logger {
	logger, err := zap.NewStdLogAt(parent.With(zap.String("subsystem", subsystem)), level)
	if err != nil {
		panic(fmt.Errorf("error getting std logger for %s: %w", subsystem, err))
	}
	return logger
}
