package font

import "testing"

func coverage(pix []byte) int {
	sum := 0
	for _, p := range pix {
		sum += int(p)
	}
	return sum
}

func TestRasterizeGlyph(t *testing.T) {
	s := newTestSet(t)
	g := PositionedGlyph{Font: 0, Glyph: s.Glyph(0, 'A'), Scale: 32}

	mask := s.Rasterize(g, 0, 0)
	if mask == nil {
		t.Fatal("Rasterize('A') returned nil")
	}
	r := mask.Rect
	if r.Dx() <= 0 || r.Dy() <= 0 {
		t.Fatalf("empty mask bounds %v", r)
	}
	// 'A' sits on the baseline: its box extends above it and not far below.
	if r.Min.Y >= 0 {
		t.Errorf("mask top = %d, want above the baseline", r.Min.Y)
	}
	if r.Max.Y > 2 {
		t.Errorf("mask bottom = %d, want at most just below the baseline", r.Max.Y)
	}
	if r.Dy() > 32 {
		t.Errorf("mask height %d exceeds the scale", r.Dy())
	}
	if coverage(mask.Pix) == 0 {
		t.Error("mask has no coverage")
	}
}

func TestRasterizeBlankGlyph(t *testing.T) {
	s := newTestSet(t)
	g := PositionedGlyph{Font: 0, Glyph: s.Glyph(0, ' '), Scale: 32}

	if mask := s.Rasterize(g, 0, 0); mask != nil {
		t.Errorf("Rasterize(' ') = %v bounds, want nil", mask.Rect)
	}
}

func TestRasterizeSubpixelOffset(t *testing.T) {
	s := newTestSet(t)
	g := PositionedGlyph{Font: 0, Glyph: s.Glyph(0, 'l'), Scale: 24}

	base := s.Rasterize(g, 0, 0)
	shifted := s.Rasterize(g, 0.5, 0)
	if base == nil || shifted == nil {
		t.Fatal("Rasterize returned nil")
	}
	if shifted.Rect.Max.X < base.Rect.Max.X {
		t.Errorf("shifted right edge %d left of unshifted %d", shifted.Rect.Max.X, base.Rect.Max.X)
	}
	// Total ink is preserved to within rounding when moving half a pixel.
	cb, cs := coverage(base.Pix), coverage(shifted.Pix)
	if diff := cb - cs; diff > cb/10 || diff < -cb/10 {
		t.Errorf("coverage changed too much: %d vs %d", cb, cs)
	}
}
