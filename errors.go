package glyphbrush

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNilDevice is returned when New is given a nil device or queue.
	ErrNilDevice = errors.New("glyphbrush: nil device or queue")

	// ErrNoFonts is returned when New is given no font data.
	ErrNoFonts = errors.New("glyphbrush: at least one font is required")

	// ErrProviderNotHAL is returned by NewFromProvider when the provider
	// does not expose a HAL device and queue.
	ErrProviderNotHAL = errors.New("glyphbrush: device provider does not expose HAL device and queue")

	// ErrInvalidTarget is returned when a render target has no view or a
	// zero dimension.
	ErrInvalidTarget = errors.New("glyphbrush: render target needs a view and a non-zero size")

	// ErrAtlasLimit is returned when the glyph texture would have to grow
	// beyond the size set with WithMaxAtlasSize.
	ErrAtlasLimit = errors.New("glyphbrush: glyph texture reached its maximum size")
)

// TextureAllocationError is returned when the glyph texture cannot be
// created at the requested size.
type TextureAllocationError struct {
	Width, Height uint32
	Err           error
}

func (e *TextureAllocationError) Error() string {
	return fmt.Sprintf("glyphbrush: allocate %dx%d glyph texture: %v", e.Width, e.Height, e.Err)
}

func (e *TextureAllocationError) Unwrap() error {
	return e.Err
}
