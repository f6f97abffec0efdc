package font

import (
	"fmt"
	"math"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// face is one parsed font of a Set.
type face struct {
	data []byte
	sfnt *opentype.Font
	name string

	// Vertical metrics in font units. descent is negative.
	unitsPerEm float32
	ascent     float32
	descent    float32
	lineGap    float32
}

// Set is an ordered collection of fonts addressed by ID.
//
// A Set is not safe for concurrent use: it shares one sfnt.Buffer across
// all lookups.
type Set struct {
	faces  []*face
	config setConfig
	buf    sfnt.Buffer
	shaped *shapedKerner
}

// NewSet creates an empty font set.
func NewSet(opts ...Option) *Set {
	config := defaultSetConfig()
	for _, opt := range opts {
		opt(&config)
	}
	s := &Set{config: config}
	if config.kerning == KerningShaped {
		s.shaped = newShapedKerner()
	}
	return s
}

// Add parses TTF or OTF data and appends it to the set.
// The data slice is copied and can be reused after this call.
func (s *Set) Add(data []byte) (ID, error) {
	if len(data) == 0 {
		return 0, ErrEmptyFontData
	}
	owned := make([]byte, len(data))
	copy(owned, data)

	f, err := opentype.Parse(owned)
	if err != nil {
		return 0, fmt.Errorf("font: parse font: %w", err)
	}

	upem := f.UnitsPerEm()
	m, err := f.Metrics(&s.buf, fixed.Int26_6(upem)<<6, xfont.HintingNone)
	if err != nil {
		return 0, fmt.Errorf("font: read metrics: %w", err)
	}
	fc := &face{
		data:       owned,
		sfnt:       f,
		unitsPerEm: float32(upem),
		ascent:     fixedToFloat32(m.Ascent),
		descent:    -fixedToFloat32(m.Descent),
		lineGap:    fixedToFloat32(m.Height) - fixedToFloat32(m.Ascent) - fixedToFloat32(m.Descent),
	}
	if fc.ascent-fc.descent <= 0 {
		return 0, ErrInvalidMetrics
	}
	if name, err := f.Name(&s.buf, sfnt.NameIDFamily); err == nil {
		fc.name = name
	}

	id := ID(len(s.faces))
	s.faces = append(s.faces, fc)
	if s.shaped != nil {
		if err := s.shaped.add(owned); err != nil {
			s.faces = s.faces[:id]
			return 0, err
		}
	}
	return id, nil
}

// Len returns the number of fonts in the set.
func (s *Set) Len() int {
	return len(s.faces)
}

// Name returns the family name of the font, or "" if it has none.
func (s *Set) Name(id ID) string {
	return s.face(id).name
}

// face returns the font for id. Ids beyond the set fall back to the first
// font so that layout styles referring to fonts that were never added still
// render.
func (s *Set) face(id ID) *face {
	if int(id) < 0 || int(id) >= len(s.faces) {
		return s.faces[0]
	}
	return s.faces[id]
}

// resolve maps id to the id actually used for lookups.
func (s *Set) resolve(id ID) ID {
	if int(id) < 0 || int(id) >= len(s.faces) {
		return 0
	}
	return id
}

// VMetrics returns the unit-scale vertical metrics of the font.
func (s *Set) VMetrics(id ID) VMetrics {
	f := s.face(id)
	height := f.ascent - f.descent
	return VMetrics{
		Ascent:  f.ascent / height,
		Descent: f.descent / height,
		LineGap: f.lineGap / height,
	}
}

// Glyph maps r to a glyph of the font. Runes the font lacks map to glyph 0.
func (s *Set) Glyph(id ID, r rune) Glyph {
	idx, err := s.face(id).sfnt.GlyphIndex(&s.buf, r)
	if err != nil {
		idx = 0
	}
	return Glyph{ID: GlyphID(idx), Rune: r}
}

// Advance returns the horizontal advance of g at scale, in pixels.
func (s *Set) Advance(id ID, g Glyph, scale float32) float32 {
	f := s.face(id)
	adv, err := f.sfnt.GlyphAdvance(&s.buf, sfnt.GlyphIndex(g.ID), f.ppem(scale), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat32(adv)
}

// Kerning returns the advance adjustment between a and b at scale, in pixels.
func (s *Set) Kerning(id ID, a, b Glyph, scale float32) float32 {
	switch s.config.kerning {
	case KerningNone:
		return 0
	case KerningShaped:
		return s.shaped.kern(s.resolve(id), a.Rune, b.Rune, scale*s.ppemPerScale(id))
	default:
		f := s.face(id)
		k, err := f.sfnt.Kern(&s.buf, sfnt.GlyphIndex(a.ID), sfnt.GlyphIndex(b.ID), f.ppem(scale), xfont.HintingNone)
		if err != nil {
			// sfnt.ErrNotFound: the pair has no adjustment.
			return 0
		}
		return fixedToFloat32(k)
	}
}

// ppemPerScale returns the pixels-per-em for a unit pixel-height scale.
func (s *Set) ppemPerScale(id ID) float32 {
	f := s.face(id)
	return f.unitsPerEm / (f.ascent - f.descent)
}

// ppem converts a pixel-height scale into sfnt's pixels-per-em.
func (f *face) ppem(scale float32) fixed.Int26_6 {
	ppem := scale * f.unitsPerEm / (f.ascent - f.descent)
	return fixed.Int26_6(math.Round(float64(ppem) * 64))
}

// fixedToFloat32 converts fixed.Int26_6 to float32.
func fixedToFloat32(x fixed.Int26_6) float32 {
	return float32(x) / 64.0
}
