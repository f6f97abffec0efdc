package markup

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/gogpu/glyphbrush"
	"github.com/gogpu/glyphbrush/document"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// Parse reads an HTML fragment and returns its blocks in document order.
func Parse(r io.Reader) ([]document.Block, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	nodes, err := html.ParseFragment(r, &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return nil, fmt.Errorf("markup: parse html: %w", err)
	}

	p := &parser{class: document.Paragraph}
	p.walk(nodes)
	p.flushBlock()

	glyphbrush.Logger().Debug("markup: parsed", "nodes", len(nodes), "blocks", len(p.blocks))
	return p.blocks, nil
}

// ParseString is Parse over a string.
func ParseString(s string) ([]document.Block, error) {
	return Parse(strings.NewReader(s))
}

// style is the set of inline styles in effect.
type style struct {
	bold, italic, link, code bool
}

// class returns the span class for s. Code wins over every other style.
func (s style) class() document.SpanClass {
	if s.code {
		return document.Code
	}
	switch {
	case s.bold && s.italic && s.link:
		return document.BoldItalicLink
	case s.bold && s.italic:
		return document.BoldItalic
	case s.bold && s.link:
		return document.BoldLink
	case s.italic && s.link:
		return document.ItalicLink
	case s.bold:
		return document.Bold
	case s.italic:
		return document.Italic
	case s.link:
		return document.Link
	default:
		return document.Regular
	}
}

// flush says what to close when leaving an element.
type flush uint8

const (
	flushNone flush = iota
	flushSpan
	flushBlock
)

// frame is one unit of pending work: a node to visit, or the exit of an
// element whose children have been visited.
type frame struct {
	node *html.Node

	exit  bool
	flush flush
	style style
	class document.BlockClass
}

type parser struct {
	blocks []document.Block

	class document.BlockClass
	style style

	// spans is the open block's content; open reports whether a block is
	// open at all, since br only applies inside one.
	spans []document.Span
	open  bool

	text    strings.Builder
	hasText bool
}

// walk visits nodes depth first with an explicit stack.
func (p *parser) walk(nodes []*html.Node) {
	stack := make([]frame, 0, 64)
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: nodes[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			switch f.flush {
			case flushSpan:
				p.flushSpan()
			case flushBlock:
				p.flushBlock()
			}
			p.style, p.class = f.style, f.class
			continue
		}

		n := f.node
		switch n.Type {
		case html.TextNode:
			p.text.WriteString(n.Data)
			p.hasText = true
			continue
		case html.ElementNode:
		default:
			continue
		}

		exit, descend := p.enter(n)
		if !descend {
			continue
		}
		stack = append(stack, exit)
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, frame{node: c})
		}
	}
}

// enter applies the effect of opening element n and returns the frame that
// undoes it, and whether n's children should be visited.
func (p *parser) enter(n *html.Node) (frame, bool) {
	exit := frame{exit: true, style: p.style, class: p.class}

	switch n.DataAtom {
	case atom.A:
		if !p.style.link && hasAttr(n, "href") {
			p.flushSpan()
			p.style.link = true
			exit.flush = flushSpan
		}
	case atom.B, atom.Strong:
		if !p.style.bold {
			p.flushSpan()
			p.style.bold = true
			exit.flush = flushSpan
		}
	case atom.I, atom.Em:
		if !p.style.italic {
			p.flushSpan()
			p.style.italic = true
			exit.flush = flushSpan
		}
	case atom.Code, atom.Tt:
		if !p.style.code {
			p.flushSpan()
			p.style.code = true
			exit.flush = flushSpan
		}
	case atom.Br:
		p.flushSpan()
		if p.open {
			p.spans = append(p.spans, document.LineBreak())
		}
		return exit, false
	case atom.Div, atom.P:
		p.flushBlock()
		exit.flush = flushBlock
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		p.flushBlock()
		p.class = headingClass(n.DataAtom)
		p.style.bold = true
		exit.flush = flushBlock
	case atom.Img:
		if src, ok := attr(n, "src"); ok {
			p.flushBlock()
			p.blocks = append(p.blocks, document.Image(src))
		}
		return exit, false
	case atom.Li:
		p.flushBlock()
		p.class = document.ListItem
		exit.flush = flushBlock
	case atom.Pre:
		p.flushBlock()
		p.class = document.Preformatted
		p.style.code = true
		exit.flush = flushBlock
	case atom.Script, atom.Style:
		return exit, false
	}
	return exit, true
}

// flushSpan closes the pending text into a span. The first span of a block
// loses its leading whitespace and is dropped if nothing remains.
func (p *parser) flushSpan() {
	text, ok := p.takeText()
	if !ok {
		return
	}
	if !p.open {
		text = strings.TrimLeftFunc(text, unicode.IsSpace)
		if text == "" {
			return
		}
		p.open = true
	}
	p.spans = append(p.spans, document.Text(p.style.class(), text))
}

// flushBlock closes the pending text and the open block. The last span
// loses its trailing whitespace.
func (p *parser) flushBlock() {
	if text, ok := p.takeText(); ok {
		if !p.open {
			text = strings.TrimSpace(text)
		} else {
			text = strings.TrimRightFunc(text, unicode.IsSpace)
		}
		if text != "" {
			p.spans = append(p.spans, document.Text(p.style.class(), text))
			p.open = true
		}
	}
	if !p.open {
		return
	}
	p.blocks = append(p.blocks, document.Flowing(p.class, p.spans...))
	p.spans, p.open = nil, false
}

// takeText returns and clears the pending text, NFC normalised.
func (p *parser) takeText() (string, bool) {
	if !p.hasText {
		return "", false
	}
	s := norm.NFC.String(p.text.String())
	p.text.Reset()
	p.hasText = false
	return s, true
}

func headingClass(a atom.Atom) document.BlockClass {
	switch a {
	case atom.H1:
		return document.Heading1
	case atom.H2:
		return document.Heading2
	case atom.H3:
		return document.Heading3
	case atom.H4:
		return document.Heading4
	case atom.H5:
		return document.Heading5
	default:
		return document.Heading6
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attr(n, key)
	return ok
}
