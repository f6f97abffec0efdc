package glyphbrush

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/glyphbrush/atlas"
	"github.com/gogpu/glyphbrush/font"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// RenderTarget is the color attachment glyphs are drawn into.
//
// A zero Format falls back to the surface format of the provider passed to
// NewFromProvider.
type RenderTarget struct {
	View   hal.TextureView
	Format gputypes.TextureFormat
	Width  uint32
	Height uint32
}

// DepthTarget is an optional depth attachment. The zero value means the
// pass has none.
type DepthTarget struct {
	View   hal.TextureView
	Format gputypes.TextureFormat
}

// Brush queues glyph sections and draws them from a glyph texture atlas.
//
// A Brush is not safe for concurrent use.
type Brush struct {
	device hal.Device
	queue  hal.Queue
	opts   options

	fonts   *font.Set
	cache   *atlas.Cache
	texture *glyphTexture
	draw    *drawCache

	sections  []Section
	instances []Instance

	surfaceFormat gputypes.TextureFormat
}

// New creates a Brush on device and queue with the given fonts. The first
// font gets id 0, the next id 1, and so on.
func New(device hal.Device, queue hal.Queue, fonts [][]byte, opts ...Option) (*Brush, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	if len(fonts) == 0 {
		return nil, ErrNoFonts
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkGlyphShader(); err != nil {
		return nil, err
	}

	set := font.NewSet(font.WithKerning(o.kerning))
	for i, data := range fonts {
		if _, err := set.Add(data); err != nil {
			return nil, fmt.Errorf("glyphbrush: add font %d: %w", i, err)
		}
	}

	tex, err := newGlyphTexture(device, o.cacheWidth, o.cacheHeight)
	if err != nil {
		return nil, err
	}
	draw, err := newDrawCache(device, queue, &o)
	if err != nil {
		tex.destroy(device)
		return nil, err
	}

	b := &Brush{
		device:  device,
		queue:   queue,
		opts:    o,
		fonts:   set,
		texture: tex,
		draw:    draw,
		cache: atlas.New(int(o.cacheWidth), int(o.cacheHeight), set,
			atlas.WithScaleTolerance(o.scaleTolerance),
			atlas.WithPositionTolerance(o.positionTolerance),
		),
	}
	Logger().Info("glyphbrush: brush created",
		"fonts", set.Len(), "atlas_width", o.cacheWidth, "atlas_height", o.cacheHeight)
	return b, nil
}

// NewFromProvider creates a Brush on the device and queue of a
// gpucontext.DeviceProvider. The provider must also implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
//
// Render targets with a zero Format use the provider's surface format.
func NewFromProvider(provider gpucontext.DeviceProvider, fonts [][]byte, opts ...Option) (*Brush, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrProviderNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, ErrProviderNotHAL
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil, ErrProviderNotHAL
	}

	b, err := New(device, queue, fonts, opts...)
	if err != nil {
		return nil, err
	}
	b.surfaceFormat = provider.SurfaceFormat()
	info := provider.AdapterInfo()
	Logger().Info("glyphbrush: using provider device",
		"adapter", info.Name, "type", info.Type.String(), "surface_format", b.surfaceFormat.String())
	return b, nil
}

// Fonts returns the brush's font set, for layout.
func (b *Brush) Fonts() *font.Set {
	return b.fonts
}

// AddFont adds a font and returns its id.
func (b *Brush) AddFont(data []byte) (font.ID, error) {
	return b.fonts.Add(data)
}

// QueueSection queues s for the next draw. Sections are drawn in the order
// they are queued.
func (b *Brush) QueueSection(s Section) {
	b.sections = append(b.sections, s)
}

// DrawQueued draws every queued section into target and clears the queue.
// See DrawQueuedWithTransform.
func (b *Brush) DrawQueued(enc hal.CommandEncoder, target RenderTarget, depth DepthTarget) error {
	return b.DrawQueuedWithTransform(identityTransform, enc, target, depth)
}

// DrawQueuedWithTransform draws every queued section into target, applying
// the column-major matrix m to the normalized device coordinates of each
// glyph.
//
// Newly needed glyphs are uploaded to the atlas first, enlarging it when
// they do not fit. One render pass is recorded into enc; the caller ends
// encoding and submits. Several draws may be recorded into the same
// encoder, each with its own transform. The queued sections are cleared
// whether or not the draw succeeds.
func (b *Brush) DrawQueuedWithTransform(m [16]float32, enc hal.CommandEncoder, target RenderTarget, depth DepthTarget) error {
	defer b.clearSections()

	if target.Format == gputypes.TextureFormatUndefined {
		target.Format = b.surfaceFormat
	}
	if enc == nil || target.View == nil || target.Width == 0 || target.Height == 0 ||
		target.Format == gputypes.TextureFormatUndefined {
		return ErrInvalidTarget
	}
	if depth.View == nil {
		depth.Format = gputypes.TextureFormatUndefined
	}
	b.draw.beginDraw(enc)

	for i := range b.sections {
		for _, g := range b.sections[i].Glyphs {
			b.cache.Queue(g.Glyph)
		}
	}
	if err := b.commit(); err != nil {
		return err
	}

	b.instances = buildInstances(b.instances[:0], b.sections, b.cache,
		float32(target.Width), float32(target.Height))
	if len(b.instances) == 0 {
		b.draw.stats.LastInstances = 0
		return nil
	}

	if err := b.draw.ensurePipeline(pipelineKey{color: target.Format, depth: depth.Format}); err != nil {
		return err
	}
	slot, err := b.draw.reserveDraw(len(b.instances))
	if err != nil {
		return err
	}
	if err := b.draw.ensureBindGroup(b.texture.view); err != nil {
		return err
	}
	if err := b.draw.write(slot, b.instances, m); err != nil {
		return err
	}
	b.draw.record(enc, target, depth, slot)
	Logger().Debug("glyphbrush: draw recorded",
		"sections", len(b.sections), "instances", len(b.instances))
	return nil
}

// commit uploads queued glyphs, growing the atlas until they fit. On
// failure the queue is dropped so the next frame starts clean.
func (b *Brush) commit() error {
	for {
		err := b.cache.Commit(b.upload)
		if err == nil {
			return nil
		}
		if errors.Is(err, atlas.ErrOverflow) {
			err = b.grow()
		}
		if err != nil {
			b.cache.ClearQueue()
			return err
		}
	}
}

// grow doubles the glyph texture and re-queues every cached glyph.
func (b *Brush) grow() error {
	oldW, oldH := b.texture.width, b.texture.height
	w, h := oldW*2, oldH*2
	Logger().Warn("glyphbrush: increasing glyph texture size",
		"old_width", oldW, "old_height", oldH, "new_width", w, "new_height", h)

	if limit := b.opts.maxAtlasSize; limit > 0 && (w > limit || h > limit) {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrAtlasLimit, w, h, limit)
	}
	tex, err := newGlyphTexture(b.device, w, h)
	if err != nil {
		return err
	}

	old := b.texture
	b.draw.frames.retire(func() { old.destroy(b.device) })
	b.texture = tex
	b.cache.Rebuild(int(w), int(h))
	b.draw.textureUpdated = true
	b.draw.stats.AtlasGrowths++
	return nil
}

func (b *Brush) upload(region image.Rectangle, pixels []byte) error {
	return b.texture.upload(b.queue, region, pixels)
}

func (b *Brush) clearSections() {
	clear(b.sections)
	b.sections = b.sections[:0]
}

// Submitted reports that every draw recorded so far was submitted, the
// latest in the hal.Queue submission index returned by Submit. Buffers and
// textures the brush replaced during those draws are destroyed once the
// queue reports index completed.
//
// Calling Submitted is optional. Without it the brush keeps replaced
// objects until three newer frames have been drawn, where a frame is the
// set of draws recorded into one encoder.
func (b *Brush) Submitted(index uint64) {
	b.draw.submitted(index)
}

// Stats returns counters describing the brush's GPU object churn.
func (b *Brush) Stats() Stats {
	s := b.draw.stats
	s.AtlasWidth, s.AtlasHeight = b.texture.width, b.texture.height
	return s
}

// Destroy releases every GPU object owned by the brush. The brush must not
// be used afterwards.
func (b *Brush) Destroy() {
	if b.draw != nil {
		b.draw.destroy()
		b.draw = nil
	}
	if b.texture != nil {
		b.texture.destroy(b.device)
		b.texture = nil
	}
	b.sections = nil
}
