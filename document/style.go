package document

import "github.com/gogpu/glyphbrush/font"

// Font ids layout assigns to span classes.
const (
	FontRegular    font.ID = 0
	FontBold       font.ID = 1
	FontBoldItalic font.ID = 2
	FontItalic     font.ID = 3
	FontCode       font.ID = 4
)

// Palette holds the colors layout paints with.
type Palette struct {
	Regular     [4]float32
	Link        [4]float32
	Code        [4]float32
	Placeholder [4]float32
}

// DefaultPalette is black text, blue links, dark gray code and red image
// placeholders.
var DefaultPalette = Palette{
	Regular:     [4]float32{0, 0, 0, 1},
	Link:        [4]float32{0.09803921568627451, 0.4627450980392157, 0.8235294117647058, 1},
	Code:        [4]float32{0.2, 0.2, 0.2, 1},
	Placeholder: [4]float32{0.8, 0, 0, 1},
}

// fontFor returns the font id a span class is drawn with.
func fontFor(c SpanClass) font.ID {
	switch c {
	case Bold, BoldLink:
		return FontBold
	case BoldItalic, BoldItalicLink:
		return FontBoldItalic
	case Italic, ItalicLink:
		return FontItalic
	case Code:
		return FontCode
	case Regular, Link:
		return FontRegular
	default:
		return FontRegular
	}
}

// colorFor returns the color a span class is drawn in.
func (p *Palette) colorFor(c SpanClass) [4]float32 {
	switch c {
	case Regular, Bold, Italic, BoldItalic:
		return p.Regular
	case Link, BoldLink, ItalicLink, BoldItalicLink:
		return p.Link
	case Code:
		return p.Code
	default:
		return p.Regular
	}
}

// headingFactor returns the size of a block class relative to the base
// font size.
func headingFactor(c BlockClass) float32 {
	switch c {
	case Heading1:
		return 2
	case Heading2:
		return 1.5
	case Heading3:
		return 1.17
	case Heading4:
		return 1
	case Heading5:
		return 0.83
	case Heading6:
		return 0.67
	case Paragraph, ListItem, Preformatted:
		return 1
	default:
		return 1
	}
}

// indented reports whether a block class starts at the indent.
func indented(c BlockClass) bool {
	return c == ListItem || c == Preformatted
}
