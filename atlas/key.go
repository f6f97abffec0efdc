package atlas

import (
	"math"

	"github.com/gogpu/glyphbrush/font"
)

// key identifies one rasterization in the cache.
type key struct {
	font  font.ID
	glyph font.GlyphID
	scale int32
	subX  int32
	subY  int32
}

func (c *Cache) keyOf(g font.PositionedGlyph) key {
	subX, subY := subPixel(g.X), subPixel(g.Y)
	return key{
		font:  g.Font,
		glyph: g.Glyph.ID,
		scale: bucket(g.Scale, c.config.scaleTolerance),
		subX:  bucket(subX, c.config.positionTolerance),
		subY:  bucket(subY, c.config.positionTolerance),
	}
}

// bucket rounds v to the nearest multiple of tol and returns the multiple.
func bucket(v, tol float32) int32 {
	return int32(math.Round(float64(v / tol)))
}

// subPixel returns the fractional part of v in [0, 1).
func subPixel(v float32) float32 {
	return v - float32(math.Floor(float64(v)))
}

// less orders keys so packing is deterministic.
func (k key) less(o key) bool {
	switch {
	case k.font != o.font:
		return k.font < o.font
	case k.glyph != o.glyph:
		return k.glyph < o.glyph
	case k.scale != o.scale:
		return k.scale < o.scale
	case k.subX != o.subX:
		return k.subX < o.subX
	default:
		return k.subY < o.subY
	}
}
