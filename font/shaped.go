package font

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/glyphbrush/internal/lru"
	"golang.org/x/image/math/fixed"
)

// shapedCacheSize bounds the number of memoised kerning pairs.
const shapedCacheSize = 4096

// shapedKey identifies one kerning lookup in the shaped kerner's cache.
type shapedKey struct {
	font ID
	a, b rune
	size fixed.Int26_6
}

// shapedKerner derives pair kerning by shaping two-rune runs with HarfBuzz
// and comparing the first glyph's advance against the same rune shaped
// alone. The most recent results are memoised per font, pair and size.
type shapedKerner struct {
	shaper shaping.HarfbuzzShaper
	faces  []*gotext.Face
	cache  *lru.Map[shapedKey, float32]
	text   [2]rune
}

func newShapedKerner() *shapedKerner {
	return &shapedKerner{cache: lru.New[shapedKey, float32](shapedCacheSize)}
}

// add parses data with go-text and appends the face.
// Ids match the owning Set's ids.
func (k *shapedKerner) add(data []byte) error {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("font: parse font for shaping: %w", err)
	}
	k.faces = append(k.faces, face)
	return nil
}

// kern returns the adjustment between a and b at ppem pixels per em.
func (k *shapedKerner) kern(id ID, a, b rune, ppem float32) float32 {
	size := fixed.Int26_6(ppem * 64)
	key := shapedKey{font: id, a: a, b: b, size: size}
	if v, ok := k.cache.Get(key); ok {
		return v
	}

	face := k.faces[id]
	k.text = [2]rune{a, b}
	pair := k.shape(face, k.text[:], size)
	var v float32
	// A ligature collapses the pair into one glyph; there is nothing to kern.
	if len(pair.Glyphs) == 2 {
		pairAdvance := pair.Glyphs[0].Advance
		single := k.shape(face, k.text[:1], size)
		if len(single.Glyphs) == 1 {
			v = float32(pairAdvance-single.Glyphs[0].Advance) / 64
		}
	}
	k.cache.Put(key, v)
	return v
}

func (k *shapedKerner) shape(face *gotext.Face, runes []rune, size fixed.Int26_6) shaping.Output {
	return k.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      size,
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	})
}
