package glyphbrush

import (
	"testing"

	"github.com/gogpu/glyphbrush/font"
)

func TestRect(t *testing.T) {
	r := Rect{MinX: 10, MinY: 20, MaxX: 40, MaxY: 25}
	if r.Width() != 30 || r.Height() != 5 {
		t.Errorf("size = %vx%v, want 30x5", r.Width(), r.Height())
	}
	if r.IsZero() {
		t.Error("non-zero rect reported as zero")
	}
	if !(Rect{}).IsZero() {
		t.Error("zero rect not reported as zero")
	}
}

func TestLayoutGlyphTranslated(t *testing.T) {
	g := LayoutGlyph{
		Color: [4]float32{1, 0, 0, 1},
		Glyph: font.PositionedGlyph{Font: 1, Scale: 16, X: 3, Y: 4},
	}
	moved := g.Translated(10, -2)
	if moved.Glyph.X != 13 || moved.Glyph.Y != 2 {
		t.Errorf("moved to (%v, %v), want (13, 2)", moved.Glyph.X, moved.Glyph.Y)
	}
	if moved.Color != g.Color || moved.Glyph.Font != 1 || moved.Glyph.Scale != 16 {
		t.Error("Translated changed more than the position")
	}
	if g.Glyph.X != 3 {
		t.Error("Translated modified the receiver")
	}
}
