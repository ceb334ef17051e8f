// Package loop implements the per-glyph geometry transform behind a
// seamlessly scrolling text ribbon.
//
// Given a glyph quad placed by a text layout engine, an atlas rectangle and
// a scroll offset, Transform computes where the glyph appears inside a fixed
// viewport once the content repeats with period LoopSize. Glyphs that
// straddle the wrap seam are emitted as partial glyphs: the quad is clipped
// to the viewport edge and the atlas UV window is clipped to match, so no
// stencil or scissor pass is needed.
//
// The kernel is a pure function of its inputs. Job adapts it to a
// parallel-for over disjoint glyph indices.
package loop
