package atlas

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/gogpu/glyphbrush/font"
)

// Rasterizer renders glyph coverage masks. *font.Set implements it.
//
// The returned mask's Rect is relative to the glyph's integer origin on the
// baseline. A nil mask means the glyph has no pixels.
type Rasterizer interface {
	Rasterize(g font.PositionedGlyph, subX, subY float32) *image.Alpha
}

// UploadFunc copies a tightly packed single-channel region into the
// texture backing the cache.
type UploadFunc func(region image.Rectangle, pixels []byte) error

// Rect is a rectangle in normalized texture coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// entry is a committed glyph.
type entry struct {
	glyph  font.PositionedGlyph // representative, kept for Rebuild
	region image.Rectangle      // pixels in the atlas
	bounds image.Rectangle      // pixels relative to the integer origin
	empty  bool
}

// pending is a queued glyph, rasterized at most once per queueing.
type pending struct {
	key   key
	glyph font.PositionedGlyph
	mask  *image.Alpha
	done  bool
}

func (p *pending) rasterize(r Rasterizer) {
	if p.done {
		return
	}
	p.mask = r.Rasterize(p.glyph, subPixel(p.glyph.X), subPixel(p.glyph.Y))
	p.done = true
}

// placement is a planned position for a pending glyph.
type placement struct {
	p      *pending
	region image.Rectangle
}

// Cache is the glyph atlas cache. It is not safe for concurrent use.
type Cache struct {
	width, height int
	raster        Rasterizer
	config        config
	packer        *packer

	entries map[key]entry
	queue   []*pending
	queued  map[key]*pending
}

// New creates an empty cache for a width by height texture.
func New(width, height int, r Rasterizer, opts ...Option) *Cache {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache{
		width:   width,
		height:  height,
		raster:  r,
		config:  cfg,
		packer:  newPacker(width, height, cfg.padding),
		entries: make(map[key]entry),
		queued:  make(map[key]*pending),
	}
}

// Dimensions returns the size of the texture the cache packs into.
func (c *Cache) Dimensions() (width, height int) {
	return c.width, c.height
}

// Len returns the number of committed glyphs, including empty ones.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Utilization returns the fraction of the texture covered by glyphs.
func (c *Cache) Utilization() float64 {
	return c.packer.utilization()
}

// Queue marks g as needed for the next Commit. The first glyph queued for
// a key is the one rasterized.
func (c *Cache) Queue(g font.PositionedGlyph) {
	k := c.keyOf(g)
	if _, ok := c.queued[k]; ok {
		return
	}
	p := &pending{key: k, glyph: g}
	c.queue = append(c.queue, p)
	c.queued[k] = p
}

// Commit makes every queued glyph available to RectFor.
//
// Glyphs not yet in the atlas are rasterized and packed after the existing
// ones. If they do not fit, the atlas is repacked with only the glyphs
// queued since the last Commit, dropping the rest. If even that fails,
// Commit returns ErrOverflow and leaves the cache as it was, queue
// included.
//
// upload is called once for each newly placed glyph. An upload error
// aborts the commit; glyphs uploaded before it stay committed.
func (c *Cache) Commit(upload UploadFunc) error {
	if len(c.queue) == 0 {
		return nil
	}

	var fresh []*pending
	for _, p := range c.queue {
		if _, ok := c.entries[p.key]; ok {
			continue
		}
		p.rasterize(c.raster)
		fresh = append(fresh, p)
	}
	if len(fresh) == 0 {
		c.clearQueue()
		return nil
	}

	pk := c.packer.clone()
	if plan, ok := planPlacements(pk, fresh); ok {
		return c.apply(pk, plan, upload)
	}

	for _, p := range c.queue {
		p.rasterize(c.raster)
	}
	pk = newPacker(c.width, c.height, c.config.padding)
	plan, ok := planPlacements(pk, c.queue)
	if !ok {
		slogger().Debug("atlas: queued glyphs overflow",
			"queued", len(c.queue), "width", c.width, "height", c.height)
		return ErrOverflow
	}

	slogger().Debug("atlas: repacking with this frame's glyphs",
		"kept", len(c.queue), "previous", len(c.entries))
	c.entries = make(map[key]entry, len(c.queue))
	return c.apply(pk, plan, upload)
}

// planPlacements packs items tallest first. It mutates only pk.
func planPlacements(pk *packer, items []*pending) ([]placement, bool) {
	sorted := make([]*pending, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		hi, hj := maskSize(sorted[i].mask), maskSize(sorted[j].mask)
		if hi.Y != hj.Y {
			return hi.Y > hj.Y
		}
		if hi.X != hj.X {
			return hi.X > hj.X
		}
		return sorted[i].key.less(sorted[j].key)
	})

	plan := make([]placement, 0, len(sorted))
	for _, p := range sorted {
		if p.mask == nil {
			plan = append(plan, placement{p: p})
			continue
		}
		size := maskSize(p.mask)
		r, ok := pk.allocate(size.X, size.Y)
		if !ok {
			return nil, false
		}
		plan = append(plan, placement{p: p, region: r})
	}
	return plan, true
}

func (c *Cache) apply(pk *packer, plan []placement, upload UploadFunc) error {
	c.packer = pk
	uploaded := 0
	for _, pl := range plan {
		e := entry{glyph: pl.p.glyph, empty: pl.p.mask == nil}
		if !e.empty {
			e.region = pl.region
			e.bounds = pl.p.mask.Rect
			if err := upload(pl.region, tightPixels(pl.p.mask)); err != nil {
				return fmt.Errorf("atlas: upload glyph %d: %w", pl.p.glyph.Glyph.ID, err)
			}
			uploaded++
		}
		c.entries[pl.p.key] = e
	}
	c.clearQueue()
	slogger().Debug("atlas: committed", "uploaded", uploaded, "entries", len(c.entries))
	return nil
}

func (c *Cache) clearQueue() {
	clear(c.queue)
	c.queue = c.queue[:0]
	clear(c.queued)
}

// ClearQueue forgets every glyph queued since the last successful Commit.
// Committed glyphs stay available to RectFor. Call it after a Commit the
// caller gives up on, so the failed glyphs are not retried next frame.
func (c *Cache) ClearQueue() {
	if len(c.queue) > 0 {
		slogger().Debug("atlas: dropped queued glyphs", "queued", len(c.queue))
	}
	c.clearQueue()
}

// Rebuild resizes the cache to width by height and forgets every placement.
// Every previously committed glyph is queued again, ahead of the current
// queue, so the next Commit re-uploads all of them.
func (c *Cache) Rebuild(width, height int) {
	keys := make([]key, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	current := c.queue
	c.queue = make([]*pending, 0, len(keys)+len(current))
	clear(c.queued)
	for _, k := range keys {
		p := &pending{key: k, glyph: c.entries[k].glyph}
		c.queue = append(c.queue, p)
		c.queued[k] = p
	}
	for _, p := range current {
		if _, ok := c.queued[p.key]; ok {
			continue
		}
		c.queue = append(c.queue, p)
		c.queued[p.key] = p
	}

	c.entries = make(map[key]entry, len(c.queue))
	c.width, c.height = width, height
	c.packer.reset(width, height)
	slogger().Debug("atlas: rebuilt", "width", width, "height", height, "requeued", len(c.queue))
}

// RectFor returns where g lives in the atlas and which pixels it covers on
// screen. ok is false for glyphs without pixels, such as spaces.
//
// RectFor panics with *NotCachedError if g was never committed.
func (c *Cache) RectFor(g font.PositionedGlyph) (uv Rect, screen image.Rectangle, ok bool) {
	e, found := c.entries[c.keyOf(g)]
	if !found {
		panic(&NotCachedError{Glyph: g})
	}
	if e.empty {
		return Rect{}, image.Rectangle{}, false
	}

	w, h := float32(c.width), float32(c.height)
	uv = Rect{
		MinX: float32(e.region.Min.X) / w,
		MinY: float32(e.region.Min.Y) / h,
		MaxX: float32(e.region.Max.X) / w,
		MaxY: float32(e.region.Max.Y) / h,
	}
	origin := image.Pt(int(math.Floor(float64(g.X))), int(math.Floor(float64(g.Y))))
	return uv, e.bounds.Add(origin), true
}

func maskSize(m *image.Alpha) image.Point {
	if m == nil {
		return image.Point{}
	}
	return m.Rect.Size()
}

// tightPixels returns the mask's pixels without row padding.
func tightPixels(m *image.Alpha) []byte {
	size := m.Rect.Size()
	if m.Stride == size.X {
		return m.Pix[:size.X*size.Y]
	}
	out := make([]byte, 0, size.X*size.Y)
	for y := 0; y < size.Y; y++ {
		row := m.Pix[y*m.Stride:]
		out = append(out, row[:size.X]...)
	}
	return out
}
