package document

import (
	"math"
	"strings"
	"testing"

	"github.com/gogpu/glyphbrush/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// monoMetrics is a fixed-pitch font: every rune advances half the scale.
// Pairs within one font kern by kern pixels.
type monoMetrics struct {
	kern float32
}

func (monoMetrics) VMetrics(font.ID) font.VMetrics {
	return font.VMetrics{Ascent: 0.8, Descent: -0.2, LineGap: 0.1}
}

func (monoMetrics) Glyph(_ font.ID, r rune) font.Glyph {
	return font.Glyph{ID: font.GlyphID(r), Rune: r}
}

func (monoMetrics) Advance(_ font.ID, _ font.Glyph, scale float32) float32 {
	return scale / 2
}

func (m monoMetrics) Kerning(font.ID, font.Glyph, font.Glyph, float32) float32 {
	return m.kern
}

func newGoFonts(t *testing.T) *font.Set {
	t.Helper()
	s := font.NewSet()
	for _, data := range [][]byte{goregular.TTF, gobold.TTF, gobolditalic.TTF, goitalic.TTF, gomono.TTF} {
		if _, err := s.Add(data); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return s
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

// lineText returns the runes on line i.
func lineText(d *Display, i int) string {
	var sb strings.Builder
	ln := d.Lines()[i]
	for _, g := range d.Glyphs()[ln.Start:ln.End] {
		sb.WriteRune(g.Glyph.Glyph.Rune)
	}
	return sb.String()
}

func allLines(d *Display) []string {
	out := make([]string, len(d.Lines()))
	for i := range out {
		out[i] = lineText(d, i)
	}
	return out
}

func TestLayoutSingleLine(t *testing.T) {
	d := Layout([]Block{Flowing(Paragraph, Text(Regular, "hello"))}, monoMetrics{}, 10, 100, 1)

	if len(d.Lines()) != 1 || d.Len() != 5 {
		t.Fatalf("lines = %d glyphs = %d, want 1 and 5", len(d.Lines()), d.Len())
	}
	for i, g := range d.Glyphs() {
		if want := 10 + float32(i)*9; !approx(g.Glyph.X, want) {
			t.Errorf("glyph %d x = %v, want %v", i, g.Glyph.X, want)
		}
		if g.Glyph.Y != 115 {
			t.Errorf("glyph %d baseline = %v, want 115", i, g.Glyph.Y)
		}
		if g.Glyph.Scale != 18 {
			t.Errorf("glyph %d scale = %v, want 18", i, g.Glyph.Scale)
		}
		if g.Color != DefaultPalette.Regular {
			t.Errorf("glyph %d color = %v", i, g.Color)
		}
	}
	ln := d.Lines()[0]
	if ln.Top != 100 || !approx(ln.Bottom, 118.6) {
		t.Errorf("line = [%v, %v), want [100, 118.6)", ln.Top, ln.Bottom)
	}
	if !approx(d.BoundYMax(), 118.6) {
		t.Errorf("BoundYMax = %v, want 118.6", d.BoundYMax())
	}
}

func TestLayoutWrapping(t *testing.T) {
	tests := []struct {
		name  string
		spans []Span
		width float32
		want  []string
	}{
		{
			name:  "at whitespace",
			spans: []Span{Text(Regular, "aaaa bbbb cccc")},
			width: 90,
			want:  []string{"aaaa bbbb", "cccc"},
		},
		{
			name:  "overflowing space",
			spans: []Span{Text(Regular, "aaaaaaaaaa bb")},
			width: 90,
			want:  []string{"aaaaaaaaaa", "bb"},
		},
		{
			name:  "forced mid word",
			spans: []Span{Text(Regular, "abcdefghijklmno")},
			width: 90,
			want:  []string{"abcdefghij", "klmno"},
		},
		{
			name:  "rune wider than column",
			spans: []Span{Text(Regular, "abc")},
			width: 5,
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "across spans",
			spans: []Span{Text(Regular, "aaaa "), Text(Bold, "bbbb "), Text(Italic, "cccc")},
			width: 90,
			want:  []string{"aaaa bbbb", "cccc"},
		},
		{
			name:  "break at span start",
			spans: []Span{Text(Regular, "aaaaaaaaa"), Text(Bold, " bbb")},
			width: 90,
			want:  []string{"aaaaaaaaa", "bbb"},
		},
		{
			name:  "line break",
			spans: []Span{Text(Regular, "ab"), LineBreak(), Text(Regular, "cd")},
			width: 90,
			want:  []string{"ab", "cd"},
		},
		{
			name:  "trailing line break",
			spans: []Span{Text(Regular, "ab"), LineBreak()},
			width: 90,
			want:  []string{"ab", ""},
		},
		{
			name:  "leading whitespace trimmed after break",
			spans: []Span{Text(Regular, "ab"), LineBreak(), Text(Regular, "   "), Text(Regular, "  cd")},
			width: 90,
			want:  []string{"ab", "cd"},
		},
		{
			name:  "trailing whitespace wrap",
			spans: []Span{Text(Regular, "aaaaaaaaaa   ")},
			width: 90,
			want:  []string{"aaaaaaaaaa"},
		},
		{
			name:  "newline is a space",
			spans: []Span{Text(Regular, "ab\ncd")},
			width: 90,
			want:  []string{"ab cd"},
		},
		{
			name:  "empty block",
			width: 90,
			want:  []string{""},
		},
		{
			name:  "multibyte runes",
			spans: []Span{Text(Regular, "héllö wörld ñandú")},
			width: 54,
			want:  []string{"héllö", "wörld", "ñandú"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Layout([]Block{Flowing(Paragraph, tt.spans...)}, monoMetrics{}, 0, 0, 1, WithColumnWidth(tt.width))
			got := allLines(d)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutNewlineGlyphIsSpace(t *testing.T) {
	d := Layout([]Block{Flowing(Paragraph, Text(Regular, "a\nb"))}, monoMetrics{}, 0, 0, 1)
	if got := d.Glyphs()[1].Glyph.Glyph.ID; got != font.GlyphID(' ') {
		t.Errorf("newline mapped to glyph %d, want the space glyph", got)
	}
}

func TestLayoutForcedProgress(t *testing.T) {
	text := strings.Repeat("w", 50) + " " + strings.Repeat("x", 3)
	for _, width := range []float32{0.5, 5, 9, 30, 95} {
		d := Layout([]Block{Flowing(Paragraph, Text(Regular, text))}, monoMetrics{}, 0, 0, 1, WithColumnWidth(width))
		for i, ln := range d.Lines() {
			if ln.End <= ln.Start {
				t.Errorf("width %v: line %d is empty", width, i)
			}
		}
		if d.Len() != len(text)-1 {
			t.Errorf("width %v: %d glyphs, want %d", width, d.Len(), len(text)-1)
		}
	}
}

func TestLayoutKerningResetsOnFontChange(t *testing.T) {
	d := Layout([]Block{Flowing(Paragraph, Text(Regular, "ab"), Text(Bold, "cd"))}, monoMetrics{kern: -1}, 0, 0, 1)

	want := []float32{0, 8, 17, 25}
	for i, g := range d.Glyphs() {
		if !approx(g.Glyph.X, want[i]) {
			t.Errorf("glyph %d x = %v, want %v", i, g.Glyph.X, want[i])
		}
	}
	if d.Glyphs()[2].Glyph.Font != FontBold {
		t.Errorf("bold span font = %d, want %d", d.Glyphs()[2].Glyph.Font, FontBold)
	}
}

func TestLayoutBlockClasses(t *testing.T) {
	tests := []struct {
		class  BlockClass
		scale  float32
		margin float32
	}{
		{class: Paragraph, scale: 18},
		{class: Heading1, scale: 36},
		{class: Heading2, scale: 27},
		{class: Heading3, scale: 21.06},
		{class: Heading4, scale: 18},
		{class: Heading5, scale: 14.94},
		{class: Heading6, scale: 12.06},
		{class: Preformatted, scale: 18, margin: 32},
	}
	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			d := Layout([]Block{Flowing(tt.class, Text(Regular, "x"))}, monoMetrics{}, 5, 0, 1)
			g := d.Glyphs()[0].Glyph
			if !approx(g.Scale, tt.scale) {
				t.Errorf("scale = %v, want %v", g.Scale, tt.scale)
			}
			if !approx(g.X, 5+tt.margin) {
				t.Errorf("x = %v, want %v", g.X, 5+tt.margin)
			}
		})
	}
}

func TestLayoutListItemBullet(t *testing.T) {
	d := Layout(
		[]Block{Flowing(ListItem, Text(Bold, "aaaa bbbb"))},
		monoMetrics{}, 10, 0, 2, WithColumnWidth(150),
	)

	lines := allLines(d)
	if len(lines) != 2 || lines[0] != "•aaaa" || lines[1] != "bbbb" {
		t.Fatalf("lines = %q, want [•aaaa bbbb]", lines)
	}
	bullet := d.Glyphs()[0]
	if bullet.Glyph.Font != FontRegular || bullet.Color != DefaultPalette.Regular {
		t.Errorf("bullet font %d color %v", bullet.Glyph.Font, bullet.Color)
	}
	if bullet.Glyph.X != 10+0.5*32*2 {
		t.Errorf("bullet x = %v, want %v", bullet.Glyph.X, 10+0.5*32*2)
	}
	if first := d.Glyphs()[1].Glyph.X; first != 10+32*2 {
		t.Errorf("text x = %v, want %v", first, 10+32*2)
	}
	second := d.Lines()[1]
	if x := d.Glyphs()[second.Start].Glyph.X; x != 10+32*2 {
		t.Errorf("wrapped line x = %v, want the margin", x)
	}
}

func TestLayoutImagePlaceholder(t *testing.T) {
	d := Layout([]Block{Image("cat.png"), Flowing(Paragraph, Text(Regular, "after"))}, monoMetrics{}, 0, 0, 1)

	if got := lineText(d, 0); got != "Image: cat.png" {
		t.Errorf("placeholder = %q", got)
	}
	for _, g := range d.Glyphs()[d.Lines()[0].Start:d.Lines()[0].End] {
		if g.Color != DefaultPalette.Placeholder || g.Glyph.Font != FontRegular {
			t.Fatalf("placeholder glyph color %v font %d", g.Color, g.Glyph.Font)
		}
	}
	if top := d.Lines()[1].Top; !approx(top, 18*1.1+14) {
		t.Errorf("next block top = %v, want %v", top, 18*1.1+14)
	}
}

func TestLayoutParagraphSeparation(t *testing.T) {
	for _, scale := range []float32{1, 1.5, 2} {
		blocks := []Block{
			Flowing(Paragraph, Text(Regular, "one")),
			Flowing(Paragraph, Text(Regular, "two")),
		}
		d := Layout(blocks, monoMetrics{}, 0, 0, scale)
		gap := d.Lines()[1].Top - d.Lines()[0].Top
		if want := 14*scale + 18*scale*1.1; !approx(gap, want) {
			t.Errorf("scale %v: paragraph step = %v, want %v", scale, gap, want)
		}
	}
}

func TestLayoutPalette(t *testing.T) {
	p := Palette{
		Regular:     [4]float32{1, 0, 0, 1},
		Link:        [4]float32{0, 1, 0, 1},
		Code:        [4]float32{0, 0, 1, 1},
		Placeholder: [4]float32{1, 1, 0, 1},
	}
	d := Layout(
		[]Block{Flowing(Paragraph, Text(Regular, "r"), Text(ItalicLink, "l"), Text(Code, "c"))},
		monoMetrics{}, 0, 0, 1, WithPalette(p),
	)
	want := [][4]float32{p.Regular, p.Link, p.Code}
	for i, g := range d.Glyphs() {
		if g.Color != want[i] {
			t.Errorf("glyph %d color = %v, want %v", i, g.Color, want[i])
		}
	}
}

func TestLayoutLinesSortedAndDisjoint(t *testing.T) {
	fonts := newGoFonts(t)
	para := "The quick brown fox jumps over the lazy dog, then keeps running " +
		"through fields of very-long-hyphenated-words and pneumonoultramicroscopicsilicovolcanoconiosis."
	var blocks []Block
	for i := range 30 {
		class := BlockClass(i % 9)
		blocks = append(blocks, Flowing(class,
			Text(Regular, para), Text(Bold, " bold "), Text(Code, "code()"), LineBreak(),
			Text(BoldItalicLink, para[:40])))
		if i%7 == 0 {
			blocks = append(blocks, Image("figure.png"))
		}
	}

	for _, scale := range []float32{0.75, 1, 1.33, 2} {
		d := Layout(blocks, fonts, 0, 0, scale, WithColumnWidth(300))
		lines := d.Lines()
		next := 0
		for i, ln := range lines {
			if ln.Top >= ln.Bottom {
				t.Fatalf("scale %v: line %d has no height: %+v", scale, i, ln)
			}
			if ln.Start != next || ln.End < ln.Start {
				t.Fatalf("scale %v: line %d glyphs [%d,%d) do not follow %d", scale, i, ln.Start, ln.End, next)
			}
			next = ln.End
			if i > 0 && lines[i-1].Bottom > ln.Top {
				t.Fatalf("scale %v: line %d overlaps the previous: %v > %v", scale, i, lines[i-1].Bottom, ln.Top)
			}
		}
		if next != d.Len() {
			t.Errorf("scale %v: lines cover %d of %d glyphs", scale, next, d.Len())
		}
	}
}

func TestLayoutWithRealFontsFitsColumn(t *testing.T) {
	fonts := newGoFonts(t)
	text := "Sphinx of black quartz, judge my vow. Pack my box with five dozen liquor jugs."
	d := Layout([]Block{Flowing(Paragraph, Text(Regular, text))}, fonts, 0, 0, 1, WithColumnWidth(200))

	if len(d.Lines()) < 2 {
		t.Fatalf("expected wrapping, got %d lines", len(d.Lines()))
	}
	for i, ln := range d.Lines() {
		last := d.Glyphs()[ln.End-1].Glyph
		right := last.X + fonts.Advance(last.Font, last.Glyph, last.Scale)
		if right > 200+0.01 {
			t.Errorf("line %d %q ends at %v, past the column", i, lineText(d, i), right)
		}
	}
	if got := strings.Join(allLines(d), " "); got != text {
		t.Errorf("rejoined lines = %q, want %q", got, text)
	}
}
