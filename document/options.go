package document

// Layout defaults, in unscaled pixels.
const (
	DefaultColumnWidth      = 540
	DefaultBaseFontSize     = 18
	DefaultIndent           = 32
	DefaultParagraphSpacing = 14
)

// LayoutOption configures Layout.
type LayoutOption func(*layoutConfig)

type layoutConfig struct {
	columnWidth      float32
	baseFontSize     float32
	indent           float32
	paragraphSpacing float32
	palette          Palette
}

func defaultLayoutConfig() layoutConfig {
	return layoutConfig{
		columnWidth:      DefaultColumnWidth,
		baseFontSize:     DefaultBaseFontSize,
		indent:           DefaultIndent,
		paragraphSpacing: DefaultParagraphSpacing,
		palette:          DefaultPalette,
	}
}

// WithColumnWidth sets the width lines wrap at, measured from the origin.
// Non-positive values are ignored.
func WithColumnWidth(w float32) LayoutOption {
	return func(c *layoutConfig) {
		if w > 0 {
			c.columnWidth = w
		}
	}
}

// WithBaseFontSize sets the paragraph font size in pixels before scaling.
// Non-positive values are ignored.
func WithBaseFontSize(px float32) LayoutOption {
	return func(c *layoutConfig) {
		if px > 0 {
			c.baseFontSize = px
		}
	}
}

// WithIndent sets the left margin of list items and preformatted blocks.
func WithIndent(px float32) LayoutOption {
	return func(c *layoutConfig) {
		if px >= 0 {
			c.indent = px
		}
	}
}

// WithParagraphSpacing sets the vertical gap after every block.
func WithParagraphSpacing(px float32) LayoutOption {
	return func(c *layoutConfig) {
		if px >= 0 {
			c.paragraphSpacing = px
		}
	}
}

// WithPalette sets the colors text is painted in.
func WithPalette(p Palette) LayoutOption {
	return func(c *layoutConfig) {
		c.palette = p
	}
}
