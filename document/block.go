package document

// BlockKind discriminates the variants of Block.
type BlockKind uint8

const (
	// BlockFlowing is a run of styled text that wraps within the column.
	BlockFlowing BlockKind = iota
	// BlockImage is an image, shown as a one-line placeholder.
	BlockImage
)

// BlockClass is the role of a flowing block.
type BlockClass uint8

// Block classes.
const (
	Paragraph BlockClass = iota
	Heading1
	Heading2
	Heading3
	Heading4
	Heading5
	Heading6
	ListItem
	Preformatted
)

// String returns the name of the block class.
func (c BlockClass) String() string {
	switch c {
	case Paragraph:
		return "Paragraph"
	case Heading1:
		return "Heading1"
	case Heading2:
		return "Heading2"
	case Heading3:
		return "Heading3"
	case Heading4:
		return "Heading4"
	case Heading5:
		return "Heading5"
	case Heading6:
		return "Heading6"
	case ListItem:
		return "ListItem"
	case Preformatted:
		return "Preformatted"
	default:
		return "Unknown"
	}
}

// SpanKind discriminates the variants of Span.
type SpanKind uint8

const (
	// SpanText is styled text.
	SpanText SpanKind = iota
	// SpanLineBreak ends the current line.
	SpanLineBreak
)

// SpanClass is the style of a text span.
type SpanClass uint8

// Span classes.
const (
	Regular SpanClass = iota
	Bold
	Italic
	BoldItalic
	Code
	Link
	BoldLink
	ItalicLink
	BoldItalicLink
)

// String returns the name of the span class.
func (c SpanClass) String() string {
	switch c {
	case Regular:
		return "Regular"
	case Bold:
		return "Bold"
	case Italic:
		return "Italic"
	case BoldItalic:
		return "BoldItalic"
	case Code:
		return "Code"
	case Link:
		return "Link"
	case BoldLink:
		return "BoldLink"
	case ItalicLink:
		return "ItalicLink"
	case BoldItalicLink:
		return "BoldItalicLink"
	default:
		return "Unknown"
	}
}

// Span is a piece of a flowing block: either text in one style or a
// line break. Class and Text are meaningful only for SpanText.
type Span struct {
	Kind  SpanKind
	Class SpanClass
	Text  string
}

// Text returns a text span.
func Text(class SpanClass, s string) Span {
	return Span{Kind: SpanText, Class: class, Text: s}
}

// LineBreak returns a line break span.
func LineBreak() Span {
	return Span{Kind: SpanLineBreak}
}

// Block is one unit of block flow. Class and Spans are meaningful for
// BlockFlowing, Source for BlockImage.
type Block struct {
	Kind   BlockKind
	Class  BlockClass
	Spans  []Span
	Source string
}

// Flowing returns a flowing block of the given class.
func Flowing(class BlockClass, spans ...Span) Block {
	return Block{Kind: BlockFlowing, Class: class, Spans: spans}
}

// Image returns an image block.
func Image(source string) Block {
	return Block{Kind: BlockImage, Source: source}
}
