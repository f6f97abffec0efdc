package atlas

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphbrush/font"
)

// ErrOverflow is returned by Commit when the queued glyphs do not fit in
// the atlas, even after evicting every glyph not queued this frame.
var ErrOverflow = errors.New("atlas: glyphs do not fit in the cache texture")

// NotCachedError is the panic value of Cache.RectFor when asked about a
// glyph that was never committed.
type NotCachedError struct {
	Glyph font.PositionedGlyph
}

func (e *NotCachedError) Error() string {
	return fmt.Sprintf("atlas: glyph %d of font %d at scale %.2f was never committed",
		e.Glyph.Glyph.ID, e.Glyph.Font, e.Glyph.Scale)
}
