package document

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gogpu/glyphbrush"
	"github.com/gogpu/glyphbrush/font"
)

// Metrics supplies the font measurements layout needs. *font.Set
// implements it.
type Metrics interface {
	VMetrics(id font.ID) font.VMetrics
	Glyph(id font.ID, r rune) font.Glyph
	Advance(id font.ID, g font.Glyph, scale float32) float32
	Kerning(id font.ID, a, b font.Glyph, scale float32) float32
}

const (
	bulletRune       = '•'
	placeholderLabel = "Image: "
)

// endKind says why a line ended.
type endKind uint8

const (
	// endBlock: the line holds the rest of the block.
	endBlock endKind = iota
	// endWrap: the line stops at span/offset, which begins the next line.
	endWrap
	// endBreak: the line stops at the line break span at index span.
	endBreak
)

// lineEnd is where a measured line stops. span and offset are relative to
// the spans passed to measure; offset is a byte offset into that span's
// text and is meaningful only for endWrap.
type lineEnd struct {
	kind   endKind
	span   int
	offset int
}

// breakPoint is a whitespace rune a line may be broken at.
type breakPoint struct {
	span, offset int
}

type layouter struct {
	cfg     layoutConfig
	fonts   Metrics
	vm      font.VMetrics
	originX float32
	scale   float32
	y       float32
	disp    *Display
}

// Layout positions blocks in a column whose top-left corner is at
// (originX, originY). Block sizes, margins and spacing are multiplied by
// scale; the column width is not.
//
// Lines wrap at the last whitespace that fits, or mid-word when a word
// alone is wider than the column. Every line holds at least one rune.
// Vertical metrics come from the regular font (id 0).
func Layout(blocks []Block, fonts Metrics, originX, originY, scale float32, opts ...LayoutOption) *Display {
	cfg := defaultLayoutConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	l := &layouter{
		cfg:     cfg,
		fonts:   fonts,
		vm:      fonts.VMetrics(FontRegular),
		originX: originX,
		scale:   scale,
		y:       originY,
		disp:    &Display{},
	}
	for i := range blocks {
		b := &blocks[i]
		switch b.Kind {
		case BlockImage:
			l.image(b.Source)
		case BlockFlowing:
			l.flowing(b)
		}
	}

	glyphbrush.Logger().Debug("document: layout",
		"blocks", len(blocks), "lines", len(l.disp.lines), "glyphs", len(l.disp.glyphs),
		"bottom", l.disp.BoundYMax())
	return l.disp
}

func (l *layouter) flowing(b *Block) {
	size := headingFactor(b.Class) * l.cfg.baseFontSize * l.scale
	var margin float32
	if indented(b.Class) {
		margin = l.cfg.indent * l.scale
	}

	spans, start := b.Spans, 0
	bullet := b.Class == ListItem
	for {
		end := l.measure(spans, start, margin, size)
		l.emit(spans, start, end, margin, size, bullet)
		bullet = false
		l.y += size * l.vm.LineAdvance()

		switch end.kind {
		case endBlock:
			l.y += l.cfg.paragraphSpacing * l.scale
			return
		case endWrap:
			spans, start = spans[end.span:], end.offset
		case endBreak:
			spans, start = spans[end.span+1:], 0
		}
		spans, start = trimLeading(spans, start)
		if end.kind == endWrap && len(spans) == 0 {
			l.y += l.cfg.paragraphSpacing * l.scale
			return
		}
	}
}

// measure finds where the line beginning at byte start of spans[0] ends.
func (l *layouter) measure(spans []Span, start int, margin, size float32) lineEnd {
	x := margin
	var (
		candidate breakPoint
		found     bool
		runes     int
		prev      font.Glyph
		hasPrev   bool
		prevFont  = FontRegular
	)

	for si := range spans {
		sp := &spans[si]
		if sp.Kind == SpanLineBreak {
			return lineEnd{kind: endBreak, span: si}
		}
		id := fontFor(sp.Class)
		if id != prevFont {
			hasPrev, prevFont = false, id
		}

		off := 0
		if si == 0 {
			off = start
		}
		text := sp.Text[off:]
		for i, r := range text {
			if runes > 0 && unicode.IsSpace(r) {
				candidate, found = breakPoint{span: si, offset: off + i}, true
			}
			g := l.fonts.Glyph(id, mapRune(r))
			if hasPrev {
				x += l.fonts.Kerning(id, prev, g, size)
			}
			x += l.fonts.Advance(id, g, size)

			if x > l.cfg.columnWidth {
				switch {
				case found:
					return lineEnd{kind: endWrap, span: candidate.span, offset: candidate.offset}
				case runes == 0:
					_, n := utf8.DecodeRuneInString(text[i:])
					return lineEnd{kind: endWrap, span: si, offset: off + i + n}
				default:
					return lineEnd{kind: endWrap, span: si, offset: off + i}
				}
			}
			prev, hasPrev = g, true
			runes++
		}
	}
	return lineEnd{kind: endBlock}
}

// emit positions the glyphs of one measured line and records the line.
func (l *layouter) emit(spans []Span, start int, end lineEnd, margin, size float32, bullet bool) {
	d := l.disp
	baseline := l.y + float32(math.Ceil(float64(size*l.vm.Ascent)))
	first := len(d.glyphs)

	if bullet {
		d.glyphs = append(d.glyphs, glyphbrush.LayoutGlyph{
			Color: l.cfg.palette.Regular,
			Glyph: font.PositionedGlyph{
				Font:  FontRegular,
				Glyph: l.fonts.Glyph(FontRegular, bulletRune),
				Scale: size,
				X:     l.originX + 0.5*l.cfg.indent*l.scale,
				Y:     baseline,
			},
		})
	}

	x := l.originX + margin
	var (
		prev     font.Glyph
		hasPrev  bool
		prevFont = FontRegular
	)
	for si := range spans {
		sp := &spans[si]
		if sp.Kind == SpanLineBreak || (end.kind == endWrap && si > end.span) {
			break
		}
		id := fontFor(sp.Class)
		if id != prevFont {
			hasPrev, prevFont = false, id
		}
		color := l.cfg.palette.colorFor(sp.Class)

		lo, hi := 0, len(sp.Text)
		if si == 0 {
			lo = start
		}
		if end.kind == endWrap && si == end.span {
			hi = end.offset
		}
		for _, r := range sp.Text[lo:hi] {
			g := l.fonts.Glyph(id, mapRune(r))
			if hasPrev {
				x += l.fonts.Kerning(id, prev, g, size)
			}
			d.glyphs = append(d.glyphs, glyphbrush.LayoutGlyph{
				Color: color,
				Glyph: font.PositionedGlyph{Font: id, Glyph: g, Scale: size, X: x, Y: baseline},
			})
			x += l.fonts.Advance(id, g, size)
			prev, hasPrev = g, true
		}
	}

	d.lines = append(d.lines, Line{
		Top:    l.y,
		Bottom: l.lineBottom(baseline, size),
		Start:  first,
		End:    len(d.glyphs),
	})
}

// lineBottom returns the bottom of a line: the descent below baseline, cut
// at the top of the line that follows so lines never overlap after the
// ascent is rounded up to a whole pixel.
func (l *layouter) lineBottom(baseline, size float32) float32 {
	return min(baseline-size*l.vm.Descent, l.y+size*l.vm.LineAdvance())
}

// image lays out the one-line placeholder of an image block.
func (l *layouter) image(source string) {
	d := l.disp
	size := l.cfg.baseFontSize * l.scale
	baseline := l.y + float32(math.Ceil(float64(size*l.vm.Ascent)))
	first := len(d.glyphs)

	x := l.originX
	var prev font.Glyph
	hasPrev := false
	for _, r := range placeholderLabel + source {
		g := l.fonts.Glyph(FontRegular, mapRune(r))
		if hasPrev {
			x += l.fonts.Kerning(FontRegular, prev, g, size)
		}
		d.glyphs = append(d.glyphs, glyphbrush.LayoutGlyph{
			Color: l.cfg.palette.Placeholder,
			Glyph: font.PositionedGlyph{Font: FontRegular, Glyph: g, Scale: size, X: x, Y: baseline},
		})
		x += l.fonts.Advance(FontRegular, g, size)
		prev, hasPrev = g, true
	}

	d.lines = append(d.lines, Line{
		Top:    l.y,
		Bottom: l.lineBottom(baseline, size),
		Start:  first,
		End:    len(d.glyphs),
	})
	l.y += size*l.vm.LineAdvance() + l.cfg.paragraphSpacing*l.scale
}

// trimLeading skips whitespace at the start of the next line, dropping
// text spans that become empty. It stops at a line break.
func trimLeading(spans []Span, start int) ([]Span, int) {
	for len(spans) > 0 && spans[0].Kind == SpanText {
		text := spans[0].Text
		rest := strings.TrimLeftFunc(text[start:], unicode.IsSpace)
		if rest != "" {
			return spans, len(text) - len(rest)
		}
		spans, start = spans[1:], 0
	}
	return spans, start
}

func mapRune(r rune) rune {
	if r == '\n' {
		return ' '
	}
	return r
}
