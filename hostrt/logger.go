package hostrt

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/strbridge/resource"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the hostrt package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the hostrt package's logger.
// This must be called before any runtime is created.
func SetLogger(l *zap.Logger) {
	logger = l
}

func traceEvent(e resource.Event) {
	if ce := Logger().Check(zap.DebugLevel, "local reference event"); ce != nil {
		ce.Write(
			zap.Uint32("ref", uint32(e.Handle)),
			zap.Stringer("event", e.Type),
			zap.Uint32("borrows", e.Borrows))
	}
}
