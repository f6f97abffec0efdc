package font

import (
	"image"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/vector"
)

// Rasterize renders the coverage of g at its scale, offset by the sub-pixel
// amounts (subX, subY) in [0, 1). The position of g is ignored apart from the
// font, glyph and scale; callers place the result themselves.
//
// The returned mask's Rect is the pixel bounding box relative to the glyph
// origin on the baseline (y grows down). Rasterize returns nil for glyphs
// without an outline, such as spaces, or whose outline cannot be loaded.
func (s *Set) Rasterize(g PositionedGlyph, subX, subY float32) *image.Alpha {
	f := s.face(g.Font)
	segments, err := f.sfnt.LoadGlyph(&s.buf, sfnt.GlyphIndex(g.Glyph.ID), f.ppem(g.Scale), nil)
	if err != nil || len(segments) == 0 {
		return nil
	}

	b := segments.Bounds()
	minX := int(math.Floor(float64(fixedToFloat32(b.Min.X) + subX)))
	minY := int(math.Floor(float64(fixedToFloat32(b.Min.Y) + subY)))
	maxX := int(math.Ceil(float64(fixedToFloat32(b.Max.X) + subX)))
	maxY := int(math.Ceil(float64(fixedToFloat32(b.Max.Y) + subY)))
	if maxX <= minX || maxY <= minY {
		return nil
	}

	// Rasterizer space has its origin at (minX, minY).
	dx := subX - float32(minX)
	dy := subY - float32(minY)
	z := vector.NewRasterizer(maxX-minX, maxY-minY)
	for i, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if i > 0 {
				z.ClosePath()
			}
			z.MoveTo(
				fixedToFloat32(seg.Args[0].X)+dx, fixedToFloat32(seg.Args[0].Y)+dy,
			)
		case sfnt.SegmentOpLineTo:
			z.LineTo(
				fixedToFloat32(seg.Args[0].X)+dx, fixedToFloat32(seg.Args[0].Y)+dy,
			)
		case sfnt.SegmentOpQuadTo:
			z.QuadTo(
				fixedToFloat32(seg.Args[0].X)+dx, fixedToFloat32(seg.Args[0].Y)+dy,
				fixedToFloat32(seg.Args[1].X)+dx, fixedToFloat32(seg.Args[1].Y)+dy,
			)
		case sfnt.SegmentOpCubeTo:
			z.CubeTo(
				fixedToFloat32(seg.Args[0].X)+dx, fixedToFloat32(seg.Args[0].Y)+dy,
				fixedToFloat32(seg.Args[1].X)+dx, fixedToFloat32(seg.Args[1].Y)+dy,
				fixedToFloat32(seg.Args[2].X)+dx, fixedToFloat32(seg.Args[2].Y)+dy,
			)
		}
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(minX, minY, maxX, maxY))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
