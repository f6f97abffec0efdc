// Package document lays styled blocks of text out into positioned glyphs
// and indexes the result by line for viewport clipping.
//
// Layout runs once per column width, scale and font set. The returned
// Display is immutable; each frame the caller asks it for the glyphs of the
// visible y-range and queues them on a glyphbrush.Brush:
//
//	disp := document.Layout(blocks, brush.Fonts(), 20, 0, 1)
//	for _, g := range disp.Clip(scroll, scroll+viewHeight) {
//	    glyphs = append(glyphs, g.Translated(0, -scroll))
//	}
//	brush.QueueSection(glyphbrush.Section{Glyphs: glyphs})
//
// Fonts are addressed by fixed ids: 0 regular, 1 bold, 2 bold italic,
// 3 italic and 4 code. The first five fonts passed to glyphbrush.New must
// follow that order.
package document
