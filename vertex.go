package glyphbrush

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/glyphbrush/atlas"
	"github.com/gogpu/gputypes"
)

// instanceSize is the byte stride of one Instance in the vertex buffer.
// Layout per instance:
//
//	left_top         (vec3<f32>) = 12 bytes (location 0)
//	right_bottom     (vec2<f32>) =  8 bytes (location 1)
//	tex_left_top     (vec2<f32>) =  8 bytes (location 2)
//	tex_right_bottom (vec2<f32>) =  8 bytes (location 3)
//	color            (vec4<f32>) = 16 bytes (location 4)
//
// Total = 52 bytes per instance.
const instanceSize = 52

// Instance is one glyph quad as the vertex shader reads it. Positions are
// in normalized device coordinates, texture coordinates are normalized to
// the atlas.
type Instance struct {
	LeftTop        [3]float32
	RightBottom    [2]float32
	TexLeftTop     [2]float32
	TexRightBottom [2]float32
	Color          [4]float32
}

// instanceLayout returns the per-instance vertex buffer layout matching
// InstanceInput in glyph.wgsl.
func instanceLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: instanceSize,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // left_top
				{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1}, // right_bottom
				{Format: gputypes.VertexFormatFloat32x2, Offset: 20, ShaderLocation: 2}, // tex_left_top
				{Format: gputypes.VertexFormatFloat32x2, Offset: 28, ShaderLocation: 3}, // tex_right_bottom
				{Format: gputypes.VertexFormatFloat32x4, Offset: 36, ShaderLocation: 4}, // color
			},
		},
	}
}

// buildInstances turns the queued sections into instances for a target of
// width by height pixels. Every glyph must already be committed to cache.
//
// Sections keep submission order and glyphs keep layout order. Glyphs
// without pixels, or whose pixels fall entirely outside their section's
// bounds, produce nothing.
func buildInstances(dst []Instance, sections []Section, cache *atlas.Cache, width, height float32) []Instance {
	for i := range sections {
		s := &sections[i]
		for _, g := range s.Glyphs {
			uv, screen, ok := cache.RectFor(g.Glyph)
			if !ok {
				continue
			}
			inst, visible := clipInstance(uv, screen.Min.X, screen.Min.Y, screen.Max.X, screen.Max.Y, s.Bounds)
			if !visible {
				continue
			}
			inst.LeftTop = [3]float32{ndcX(inst.LeftTop[0], width), ndcY(inst.LeftTop[1], height), s.Z}
			inst.RightBottom = [2]float32{ndcX(inst.RightBottom[0], width), ndcY(inst.RightBottom[1], height)}
			inst.Color = g.Color
			dst = append(dst, inst)
		}
	}
	return dst
}

// clipInstance intersects a glyph's pixel rectangle with bounds and shrinks
// the texture rectangle in proportion on the clipped edges only. The
// returned positions are still in pixels.
func clipInstance(uv atlas.Rect, x0, y0, x1, y1 int, bounds Rect) (Instance, bool) {
	left, top, right, bottom := float32(x0), float32(y0), float32(x1), float32(y1)
	inst := Instance{
		LeftTop:        [3]float32{left, top, 0},
		RightBottom:    [2]float32{right, bottom},
		TexLeftTop:     [2]float32{uv.MinX, uv.MinY},
		TexRightBottom: [2]float32{uv.MaxX, uv.MaxY},
	}
	if bounds.IsZero() {
		return inst, true
	}

	cl := max(left, bounds.MinX)
	ct := max(top, bounds.MinY)
	cr := min(right, bounds.MaxX)
	cb := min(bottom, bounds.MaxY)
	if cl >= cr || ct >= cb {
		return Instance{}, false
	}

	w, h := right-left, bottom-top
	du, dv := uv.MaxX-uv.MinX, uv.MaxY-uv.MinY
	if cl > left {
		inst.TexLeftTop[0] = uv.MinX + du*(cl-left)/w
		inst.LeftTop[0] = cl
	}
	if ct > top {
		inst.TexLeftTop[1] = uv.MinY + dv*(ct-top)/h
		inst.LeftTop[1] = ct
	}
	if cr < right {
		inst.TexRightBottom[0] = uv.MaxX - du*(right-cr)/w
		inst.RightBottom[0] = cr
	}
	if cb < bottom {
		inst.TexRightBottom[1] = uv.MaxY - dv*(bottom-cb)/h
		inst.RightBottom[1] = cb
	}
	return inst, true
}

// ndcX maps a pixel column to [-1, 1], left to right.
func ndcX(x, width float32) float32 {
	return 2 * (x/width - 0.5)
}

// ndcY maps a pixel row to [1, -1], top to bottom.
func ndcY(y, height float32) float32 {
	return 2 * (0.5 - y/height)
}

// encodeInstances serializes instances as little-endian float32 values,
// reusing buf when it is large enough.
func encodeInstances(buf []byte, instances []Instance) []byte {
	n := len(instances) * instanceSize
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]

	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	for i := range instances {
		in := &instances[i]
		for _, v := range in.LeftTop {
			put(v)
		}
		for _, v := range in.RightBottom {
			put(v)
		}
		for _, v := range in.TexLeftTop {
			put(v)
		}
		for _, v := range in.TexRightBottom {
			put(v)
		}
		for _, v := range in.Color {
			put(v)
		}
	}
	return buf
}
