package document

import (
	"testing"

	"github.com/gogpu/glyphbrush"
	"github.com/gogpu/glyphbrush/font"
)

// stackedDisplay builds a display of n lines of height h with a gap
// between them, each line holding i+1 glyphs.
func stackedDisplay(n int, h, gap float32) *Display {
	d := &Display{}
	y := float32(0)
	for i := range n {
		start := len(d.glyphs)
		for j := 0; j <= i; j++ {
			d.glyphs = append(d.glyphs, glyphbrush.LayoutGlyph{
				Glyph: font.PositionedGlyph{X: float32(j), Y: y + h},
			})
		}
		d.lines = append(d.lines, Line{Top: y, Bottom: y + h, Start: start, End: len(d.glyphs)})
		y += h + gap
	}
	return d
}

// bruteClip returns the glyph range of the lines overlapping (yMin, yMax)
// by scanning every line.
func bruteClip(d *Display, yMin, yMax float32) Range {
	var r Range
	found := false
	for _, ln := range d.lines {
		if ln.Bottom > yMin && ln.Top < yMax {
			if !found {
				r.Start, found = ln.Start, true
			}
			r.End = ln.End
		}
	}
	return r
}

func TestClipRangeMatchesScan(t *testing.T) {
	for _, gap := range []float32{0, 3} {
		d := stackedDisplay(25, 10, gap)
		for yMin := float32(-15); yMin < d.BoundYMax()+15; yMin += 2.5 {
			for _, height := range []float32{0, 0.5, 5, 10, 13, 40, 1000} {
				yMax := yMin + height
				got := d.ClipRange(yMin, yMax)
				want := bruteClip(d, yMin, yMax)
				if got.Len() == 0 && want.Len() == 0 {
					continue
				}
				if got != want {
					t.Fatalf("gap %v: ClipRange(%v, %v) = %+v, want %+v", gap, yMin, yMax, got, want)
				}
			}
		}
	}
}

func TestClipEdges(t *testing.T) {
	d := stackedDisplay(3, 10, 0)

	tests := []struct {
		name       string
		yMin, yMax float32
		want       Range
	}{
		{name: "everything", yMin: -100, yMax: 100, want: Range{Start: 0, End: 6}},
		{name: "first line only", yMin: 0, yMax: 10, want: Range{Start: 0, End: 1}},
		{name: "middle line only", yMin: 10, yMax: 20, want: Range{Start: 1, End: 3}},
		{name: "touching top edge", yMin: -5, yMax: 0},
		{name: "touching bottom edge", yMin: 30, yMax: 40},
		{name: "straddling two lines", yMin: 9, yMax: 11, want: Range{Start: 0, End: 3}},
		{name: "inverted", yMin: 20, yMax: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.ClipRange(tt.yMin, tt.yMax)
			if got.Len() != tt.want.Len() || (got.Len() > 0 && got != tt.want) {
				t.Errorf("ClipRange(%v, %v) = %+v, want %+v", tt.yMin, tt.yMax, got, tt.want)
			}
			if n := len(d.Clip(tt.yMin, tt.yMax)); n != tt.want.Len() {
				t.Errorf("Clip returned %d glyphs, want %d", n, tt.want.Len())
			}
		})
	}
}

func TestClipIdempotent(t *testing.T) {
	d := stackedDisplay(40, 12, 1)
	first := d.Clip(100, 250)
	for range 3 {
		again := d.Clip(100, 250)
		if len(again) != len(first) || (len(first) > 0 && &again[0] != &first[0]) {
			t.Fatal("Clip returned a different slice for the same range")
		}
	}
}

func TestClipCannotGrowIntoDisplay(t *testing.T) {
	d := stackedDisplay(3, 10, 0)
	got := d.Clip(0, 10)
	if cap(got) != len(got) {
		t.Errorf("cap = %d, want %d so appends copy", cap(got), len(got))
	}
}

func TestEmptyDisplay(t *testing.T) {
	d := &Display{}
	if d.BoundYMax() != 0 {
		t.Errorf("BoundYMax = %v, want 0", d.BoundYMax())
	}
	if got := d.Clip(-1e9, 1e9); len(got) != 0 {
		t.Errorf("Clip on empty display returned %d glyphs", len(got))
	}
	if d.Len() != 0 || len(d.Lines()) != 0 {
		t.Error("empty display reports content")
	}
}

func TestViewportSubsetOfLayout(t *testing.T) {
	fonts := newGoFonts(t)
	var blocks []Block
	for range 20 {
		blocks = append(blocks,
			Flowing(Heading2, Text(Bold, "Section title")),
			Flowing(Paragraph, Text(Regular, "Lorem ipsum dolor sit amet, consectetur adipiscing elit, "+
				"sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.")),
			Flowing(ListItem, Text(Link, "a link in a list")),
		)
	}
	d := Layout(blocks, fonts, 20, 0, 1)

	const viewport = 600
	for scroll := float32(0); scroll < d.BoundYMax(); scroll += 137 {
		r := d.ClipRange(scroll, scroll+viewport)
		glyphs := d.Clip(scroll, scroll+viewport)
		if len(glyphs) != r.Len() {
			t.Fatalf("Clip and ClipRange disagree at scroll %v", scroll)
		}
		for i, ln := range d.Lines() {
			inside := ln.Start >= r.Start && ln.End <= r.End
			overlaps := ln.Bottom > scroll && ln.Top < scroll+viewport
			if overlaps && ln.End > ln.Start && !inside {
				t.Errorf("scroll %v: visible line %d missing from clip", scroll, i)
			}
			if !overlaps && ln.End > ln.Start && ln.Start >= r.Start && ln.End <= r.End {
				t.Errorf("scroll %v: hidden line %d included in clip", scroll, i)
			}
		}
	}
}
