package glyphbrush

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// glyphTextureFormat is the single coverage channel the atlas stores.
const glyphTextureFormat = gputypes.TextureFormatR8Unorm

// glyphTexture is the atlas texture and the view the bind group samples.
type glyphTexture struct {
	texture       hal.Texture
	view          hal.TextureView
	width, height uint32
}

// newGlyphTexture allocates a width by height atlas texture. Failures are
// reported as *TextureAllocationError.
func newGlyphTexture(device hal.Device, width, height uint32) (*glyphTexture, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "glyphbrush_atlas",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        glyphTextureFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, &TextureAllocationError{Width: width, Height: height, Err: err}
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "glyphbrush_atlas_view",
		Format:        glyphTextureFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, &TextureAllocationError{Width: width, Height: height, Err: err}
	}

	return &glyphTexture{texture: tex, view: view, width: width, height: height}, nil
}

// upload writes one tightly packed region of coverage into the texture.
func (t *glyphTexture) upload(queue hal.Queue, region image.Rectangle, pixels []byte) error {
	w, h := uint32(region.Dx()), uint32(region.Dy()) //nolint:gosec // regions lie inside the texture
	err := queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: uint32(region.Min.X), Y: uint32(region.Min.Y)}, //nolint:gosec // non-negative
			Aspect:   gputypes.TextureAspectAll,
		},
		pixels,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("glyphbrush: write glyph region %v: %w", region, err)
	}
	return nil
}

// destroy releases the view and then the texture.
func (t *glyphTexture) destroy(device hal.Device) {
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		device.DestroyTexture(t.texture)
		t.texture = nil
	}
}
