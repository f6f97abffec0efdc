package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gogpu/glyphbrush"
	"github.com/gogpu/glyphbrush/atlas"
	"github.com/gogpu/glyphbrush/font"
)

// cpuAtlas is an atlas.Cache whose texture is an in-memory image. It grows
// the way glyphbrush.Brush grows its GPU texture.
type cpuAtlas struct {
	cache   *atlas.Cache
	img     *image.Alpha
	max     int
	growths int
}

func newCPUAtlas(fonts *font.Set, size, maxSize int) *cpuAtlas {
	return &cpuAtlas{
		cache: atlas.New(size, size, fonts),
		img:   image.NewAlpha(image.Rect(0, 0, size, size)),
		max:   maxSize,
	}
}

// add queues glyphs and commits them, doubling the atlas until they fit.
// A failed add leaves nothing queued.
func (a *cpuAtlas) add(glyphs []glyphbrush.LayoutGlyph) error {
	for _, g := range glyphs {
		a.cache.Queue(g.Glyph)
	}
	for {
		err := a.cache.Commit(a.upload)
		if err == nil {
			return nil
		}
		if errors.Is(err, atlas.ErrOverflow) {
			err = a.grow()
		}
		if err != nil {
			a.cache.ClearQueue()
			return err
		}
	}
}

func (a *cpuAtlas) grow() error {
	w, h := a.cache.Dimensions()
	w, h = w*2, h*2
	if a.max > 0 && (w > a.max || h > a.max) {
		return fmt.Errorf("%w: %dx%d exceeds %d", glyphbrush.ErrAtlasLimit, w, h, a.max)
	}
	glyphbrush.Logger().Warn("glyphview: increasing atlas size", "width", w, "height", h)
	a.cache.Rebuild(w, h)
	a.img = image.NewAlpha(image.Rect(0, 0, w, h))
	a.growths++
	return nil
}

// upload copies tightly packed rows into the image.
func (a *cpuAtlas) upload(r image.Rectangle, pixels []byte) error {
	if !r.In(a.img.Rect) || len(pixels) != r.Dx()*r.Dy() {
		return fmt.Errorf("upload %v of %d bytes does not fit %v", r, len(pixels), a.img.Rect)
	}
	for y := 0; y < r.Dy(); y++ {
		row := pixels[y*r.Dx() : (y+1)*r.Dx()]
		copy(a.img.Pix[a.img.PixOffset(r.Min.X, r.Min.Y+y):], row)
	}
	return nil
}

func (a *cpuAtlas) writePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, a.img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
