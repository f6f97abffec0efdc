package atlas

// Default tolerances and padding.
const (
	DefaultScaleTolerance    = 0.5
	DefaultPositionTolerance = 0.1
	DefaultPadding           = 1
)

type config struct {
	scaleTolerance    float32
	positionTolerance float32
	padding           int
}

func defaultConfig() config {
	return config{
		scaleTolerance:    DefaultScaleTolerance,
		positionTolerance: DefaultPositionTolerance,
		padding:           DefaultPadding,
	}
}

// Option configures a Cache.
type Option func(*config)

// WithScaleTolerance sets how far apart two glyph scales may be, in pixels,
// and still share one rasterization. Non-positive values are ignored.
func WithScaleTolerance(tol float32) Option {
	return func(c *config) {
		if tol > 0 {
			c.scaleTolerance = tol
		}
	}
}

// WithPositionTolerance sets how far apart two sub-pixel offsets may be,
// in pixels, and still share one rasterization. Non-positive values are
// ignored.
func WithPositionTolerance(tol float32) Option {
	return func(c *config) {
		if tol > 0 {
			c.positionTolerance = tol
		}
	}
}

// WithPadding sets the empty border kept between packed glyphs.
func WithPadding(px int) Option {
	return func(c *config) {
		if px >= 0 {
			c.padding = px
		}
	}
}
