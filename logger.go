package glyphbrush

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/glyphbrush/atlas"
)

var silent = slog.New(slog.DiscardHandler)

var current atomic.Pointer[slog.Logger]

func init() { current.Store(silent) }

// SetLogger routes glyphbrush diagnostics, and those of the atlas package,
// to l. Nothing is logged until it is called; nil turns logging off again.
//
// Messages are prefixed with the package that emits them:
//   - Debug: "glyphbrush: pipeline built", bind group and instance buffer
//     rebuilds, atlas commits and repacks, document layout summaries
//   - Info: "glyphbrush: brush created" and the provider's adapter
//   - Warn: "glyphbrush: increasing glyph texture size"
//
// For example:
//
//	glyphbrush.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//		&slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
	atlas.SetLogger(l)
}

// Logger returns the logger set by SetLogger. The document and markup
// packages log through it.
func Logger() *slog.Logger {
	return current.Load()
}
