package atlas

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() { logger.Store(slog.New(slog.DiscardHandler)) }

func slogger() *slog.Logger { return logger.Load() }

// SetLogger sets where the cache reports commits, repacks and rebuilds.
// glyphbrush.SetLogger calls it; nil discards the output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}
