package glyphbrush

import "github.com/gogpu/glyphbrush/font"

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Width returns the width of r.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the height of r.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// IsZero reports whether r is the zero Rect.
func (r Rect) IsZero() bool { return r == Rect{} }

// LayoutGlyph is a positioned glyph with its color.
type LayoutGlyph struct {
	Color [4]float32
	Glyph font.PositionedGlyph
}

// Translated returns a copy of g moved by (dx, dy).
func (g LayoutGlyph) Translated(dx, dy float32) LayoutGlyph {
	g.Glyph = g.Glyph.Translated(dx, dy)
	return g
}

// Section is a run of glyphs drawn together.
//
// Glyph pixels outside Bounds are clipped; a zero Bounds means no clipping.
// Z is written to the depth of every instance in the section.
type Section struct {
	Glyphs []LayoutGlyph
	Bounds Rect
	Z      float32
}
