// Package font provides the font collaborator used by layout and the glyph
// atlas: a Set of parsed fonts addressed by small integer ids, with vertical
// metrics, advance widths, pair kerning and glyph coverage rasterization.
//
// Scales follow the pixel-height convention: a glyph drawn at scale s maps
// the font's ascent-to-descent span onto s pixels. VMetrics are reported at
// unit scale, so Ascent - Descent == 1 for every font.
//
// Parsing and outlines come from golang.org/x/image/font/sfnt; coverage is
// rasterized with golang.org/x/image/vector. An optional shaping-based
// kerning mode uses github.com/go-text/typesetting.
package font
