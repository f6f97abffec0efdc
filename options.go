package glyphbrush

import (
	"github.com/gogpu/glyphbrush/atlas"
	"github.com/gogpu/glyphbrush/font"
	"github.com/gogpu/gputypes"
)

// Default brush settings.
const (
	DefaultCacheWidth  = 256
	DefaultCacheHeight = 256
)

// Option configures a Brush during creation.
//
// Example:
//
//	brush, err := glyphbrush.New(device, queue, fonts,
//	    glyphbrush.WithInitialCacheSize(1024, 1024),
//	    glyphbrush.WithDepthTest(gputypes.CompareFunctionLessEqual, true),
//	)
type Option func(*options)

// options holds the configuration collected from Option values.
type options struct {
	cacheWidth, cacheHeight uint32
	scaleTolerance          float32
	positionTolerance       float32
	depthCompare            gputypes.CompareFunction
	depthWrite              bool
	filter                  gputypes.FilterMode
	maxAtlasSize            uint32
	kerning                 font.KerningMode
}

func defaultOptions() options {
	return options{
		cacheWidth:        DefaultCacheWidth,
		cacheHeight:       DefaultCacheHeight,
		scaleTolerance:    atlas.DefaultScaleTolerance,
		positionTolerance: atlas.DefaultPositionTolerance,
		depthCompare:      gputypes.CompareFunctionAlways,
		filter:            gputypes.FilterModeLinear,
		kerning:           font.KerningTable,
	}
}

// WithInitialCacheSize sets the starting size of the glyph texture.
// Zero dimensions are ignored.
func WithInitialCacheSize(width, height uint32) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.cacheWidth, o.cacheHeight = width, height
		}
	}
}

// WithScaleTolerance sets how far apart two glyph scales may be, in pixels,
// and still share one rasterization.
func WithScaleTolerance(tol float32) Option {
	return func(o *options) {
		o.scaleTolerance = tol
	}
}

// WithPositionTolerance sets how far apart two sub-pixel offsets may be,
// in pixels, and still share one rasterization.
func WithPositionTolerance(tol float32) Option {
	return func(o *options) {
		o.positionTolerance = tol
	}
}

// WithDepthTest sets the depth comparison and whether glyphs write depth
// when drawing into a target with a depth attachment.
func WithDepthTest(compare gputypes.CompareFunction, write bool) Option {
	return func(o *options) {
		o.depthCompare = compare
		o.depthWrite = write
	}
}

// WithFilterMode sets the filter used when sampling the glyph texture.
// Linear (the default) smooths glyphs drawn at fractional offsets;
// Nearest keeps them pixel exact.
func WithFilterMode(f gputypes.FilterMode) Option {
	return func(o *options) {
		o.filter = f
	}
}

// WithMaxAtlasSize caps the glyph texture's width and height. Once growth
// would exceed the cap, DrawQueued returns ErrAtlasLimit. Zero, the
// default, means no cap.
func WithMaxAtlasSize(n uint32) Option {
	return func(o *options) {
		o.maxAtlasSize = n
	}
}

// WithKerning selects how glyph pairs are kerned by the brush's font set.
func WithKerning(mode font.KerningMode) Option {
	return func(o *options) {
		o.kerning = mode
	}
}
