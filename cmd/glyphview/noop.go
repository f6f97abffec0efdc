package main

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphbrush"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// drawNoop draws glyphs through a Brush on the noop backend and returns
// the brush statistics.
func drawNoop(glyphs []glyphbrush.LayoutGlyph, cfg config) (glyphbrush.Stats, error) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return glyphbrush.Stats{}, err
	}
	defer instance.Destroy()

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return glyphbrush.Stats{}, errors.New("noop backend exposes no adapter")
	}
	dev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		return glyphbrush.Stats{}, err
	}
	defer dev.Device.Destroy()

	opts := []glyphbrush.Option{
		glyphbrush.WithInitialCacheSize(uint32(cfg.atlasSize), uint32(cfg.atlasSize)), //nolint:gosec // validated positive
	}
	if cfg.maxAtlas > 0 {
		opts = append(opts, glyphbrush.WithMaxAtlasSize(uint32(cfg.maxAtlas))) //nolint:gosec // validated positive
	}
	brush, err := glyphbrush.New(dev.Device, dev.Queue, goFonts(), opts...)
	if err != nil {
		return glyphbrush.Stats{}, err
	}
	defer brush.Destroy()

	width := uint32(cfg.width*cfg.scale) + 1 //nolint:gosec // validated positive
	height := uint32(cfg.height)             //nolint:gosec // validated positive
	target, err := dev.Device.CreateTexture(&hal.TextureDescriptor{
		Label:         "glyphview_target",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return glyphbrush.Stats{}, fmt.Errorf("create target: %w", err)
	}
	defer dev.Device.DestroyTexture(target)
	view, err := dev.Device.CreateTextureView(target, nil)
	if err != nil {
		return glyphbrush.Stats{}, fmt.Errorf("create target view: %w", err)
	}
	defer dev.Device.DestroyTextureView(view)

	enc, err := dev.Device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "glyphview"})
	if err != nil {
		return glyphbrush.Stats{}, err
	}
	if err := enc.BeginEncoding("glyphview"); err != nil {
		return glyphbrush.Stats{}, err
	}

	brush.QueueSection(glyphbrush.Section{
		Glyphs: glyphs,
		Bounds: glyphbrush.Rect{MaxX: float32(width), MaxY: float32(height)},
	})
	err = brush.DrawQueued(enc, glyphbrush.RenderTarget{
		View:   view,
		Format: gputypes.TextureFormatRGBA8Unorm,
		Width:  width,
		Height: height,
	}, glyphbrush.DepthTarget{})
	if err != nil {
		enc.DiscardEncoding()
		return glyphbrush.Stats{}, err
	}

	cmd, err := enc.EndEncoding()
	if err != nil {
		return glyphbrush.Stats{}, err
	}
	index, err := dev.Queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		return glyphbrush.Stats{}, err
	}
	brush.Submitted(index)
	dev.Device.FreeCommandBuffer(cmd)
	return brush.Stats(), nil
}
