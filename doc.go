// Package glyphbrush renders laid-out text on the GPU through a glyph
// texture atlas.
//
// # Overview
//
// A Brush owns one single-channel atlas texture plus the pipeline, buffers
// and bind group needed to draw from it. Each frame the caller queues
// sections of positioned glyphs and then records one instanced draw into its
// own command encoder:
//
//	brush, err := glyphbrush.New(device, queue, [][]byte{regular, bold})
//	...
//	brush.QueueSection(glyphbrush.Section{
//	    Glyphs: display.Clip(scroll, scroll+height),
//	    Bounds: glyphbrush.Rect{MaxX: width, MaxY: height},
//	})
//	err = brush.DrawQueued(encoder, glyphbrush.RenderTarget{
//	    View: view, Format: format, Width: width, Height: height,
//	}, glyphbrush.DepthTarget{})
//
// The caller owns BeginEncoding, EndEncoding and Submit. Atlas uploads and
// buffer writes go through the queue before the pass is recorded.
//
// # Layout
//
// The document sub-package turns structured text into a Display, a list of
// positioned glyphs with a line index that maps a visible y range to a
// contiguous glyph range. Layout runs once; each frame only clips and
// translates.
//
// # Atlas growth
//
// When a frame's glyphs do not fit, DrawQueued logs a warning, doubles the
// texture in both dimensions, re-uploads everything and retries. Growth is
// unbounded unless WithMaxAtlasSize sets a cap.
//
// # Coordinate System
//
// Glyph positions are in pixels with the origin at the top-left of the
// render target and y growing down. The instance data is converted to
// normalized device coordinates; DrawQueuedWithTransform applies an extra
// matrix after that conversion.
//
// # Logging
//
// The package is silent by default. See SetLogger.
package glyphbrush
