package document

import (
	"sort"

	"github.com/gogpu/glyphbrush"
)

// Line is one laid out line: the y-range it covers and the glyphs on it.
// Glyphs [Start, End) of the owning Display are on the line, and
// [Top, Bottom) is its vertical extent in pixels.
type Line struct {
	Top, Bottom float32
	Start, End  int
}

// Range is a half-open range of glyph indices.
type Range struct {
	Start, End int
}

// Len returns the number of glyphs in r.
func (r Range) Len() int { return r.End - r.Start }

// Display is the result of one Layout call: glyphs in emission order and
// the lines that partition them, sorted top to bottom without overlap.
//
// A Display is immutable and may be shared between goroutines.
type Display struct {
	glyphs []glyphbrush.LayoutGlyph
	lines  []Line
}

// BoundYMax returns the bottom of the last line, or 0 if there are no
// lines.
func (d *Display) BoundYMax() float32 {
	if len(d.lines) == 0 {
		return 0
	}
	return d.lines[len(d.lines)-1].Bottom
}

// ClipRange returns the glyphs of every line overlapping (yMin, yMax). A
// line touching the range only at an edge is outside it.
func (d *Display) ClipRange(yMin, yMax float32) Range {
	end := sort.Search(len(d.lines), func(i int) bool {
		return d.lines[i].Top >= yMax
	})
	start := sort.Search(end, func(i int) bool {
		return d.lines[i].Bottom > yMin
	})
	if end <= start {
		return Range{}
	}
	return Range{Start: d.lines[start].Start, End: d.lines[end-1].End}
}

// Clip returns the glyphs of every line overlapping (yMin, yMax). The
// slice aliases the Display and must not be modified.
func (d *Display) Clip(yMin, yMax float32) []glyphbrush.LayoutGlyph {
	r := d.ClipRange(yMin, yMax)
	return d.glyphs[r.Start:r.End:r.End]
}

// Lines returns the lines. The slice must not be modified.
func (d *Display) Lines() []Line { return d.lines }

// Glyphs returns every glyph. The slice must not be modified.
func (d *Display) Glyphs() []glyphbrush.LayoutGlyph { return d.glyphs }

// Len returns the number of glyphs.
func (d *Display) Len() int { return len(d.glyphs) }
