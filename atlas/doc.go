// Package atlas implements the glyph texture atlas cache.
//
// A Cache tracks which rasterized glyphs live where in a single-channel
// texture. Glyphs are queued during a frame, then committed together:
// Commit rasterizes the new ones, packs them into shelves and hands each
// placed region to an upload callback. Queries made after a successful
// Commit return the UV rectangle to sample and the screen rectangle to
// cover.
//
// Glyphs are keyed by font, glyph id, and scale and sub-pixel offset
// rounded to configurable tolerances, so a glyph drawn at nearly the same
// size and offset reuses the existing rasterization.
//
// When the atlas cannot hold the frame's glyphs Commit returns ErrOverflow
// without changing any state. The owner is expected to enlarge its texture
// and call Rebuild, which re-queues everything so the next Commit re-uploads
// it at the new size.
package atlas
