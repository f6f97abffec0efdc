package font

// ID addresses a font within a Set. Ids are assigned in Add order starting at 0.
type ID int

// GlyphID is a glyph index within a single font.
type GlyphID uint16

// Glyph identifies a glyph together with the rune it was mapped from.
// The rune is kept so shaping-based kerning can work on text rather than
// glyph indices.
type Glyph struct {
	ID   GlyphID
	Rune rune
}

// VMetrics are a font's vertical metrics at unit scale.
// Descent is negative (below the baseline).
type VMetrics struct {
	Ascent  float32
	Descent float32
	LineGap float32
}

// Scaled returns the metrics multiplied by scale.
func (m VMetrics) Scaled(scale float32) VMetrics {
	return VMetrics{
		Ascent:  m.Ascent * scale,
		Descent: m.Descent * scale,
		LineGap: m.LineGap * scale,
	}
}

// LineAdvance returns the baseline-to-baseline distance at unit scale.
func (m VMetrics) LineAdvance() float32 {
	return m.Ascent - m.Descent + m.LineGap
}

// PositionedGlyph is a glyph of a given font placed at a pixel position on
// its baseline and drawn at Scale pixels of height.
type PositionedGlyph struct {
	Font  ID
	Glyph Glyph
	Scale float32
	X, Y  float32
}

// Translated returns a copy of g moved by (dx, dy).
func (g PositionedGlyph) Translated(dx, dy float32) PositionedGlyph {
	g.X += dx
	g.Y += dy
	return g
}
