package glyphbrush

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

// Embedded glyph shader source.
//
//go:embed shaders/glyph.wgsl
var glyphShaderSource string

// Shader entry points in glyph.wgsl.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// checkGlyphShader validates the embedded shader with naga. It runs once
// per process; New returns its error.
var checkGlyphShader = sync.OnceValue(func() error {
	if glyphShaderSource == "" {
		return fmt.Errorf("glyphbrush: glyph shader source is empty")
	}
	if _, err := naga.Compile(glyphShaderSource); err != nil {
		return fmt.Errorf("glyphbrush: compile glyph shader: %w", err)
	}
	return nil
})
