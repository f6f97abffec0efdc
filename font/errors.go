package font

import "errors"

// Sentinel errors for the font package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("font: empty font data")

	// ErrInvalidMetrics is returned when a font reports a zero ascent-to-descent span.
	ErrInvalidMetrics = errors.New("font: font has no vertical extent")
)
