// Package glyphbuf holds the reusable per-glyph storage of the scroll
// pipeline: static glyph records and the vertex/UV output arrays.
//
// Capacity only grows. A Reserve that fits the current capacity touches no
// allocation, which keeps steady-state frames allocation free.
package glyphbuf

import "github.com/gogpu/marquee/loop"

// Default sizing policy.
const (
	DefaultMinQuads = 16
	DefaultGrowth   = 2
)

// VerticesPerQuad is the vertex stride of one glyph.
const VerticesPerQuad = 4

// Arena owns the glyph, vertex and UV buffers.
//
// Thread safety: Arena is not safe for concurrent use. The pipeline lends
// the slices to a batch and must not call Reserve or Release until the batch
// has completed.
type Arena struct {
	minQuads int
	growth   int

	glyphs   []loop.Glyph
	vertices []loop.Vec3
	uvs      []loop.Vec2

	// grows counts reallocations over the arena's lifetime.
	grows int
}

// New creates an empty arena. Non-positive arguments select the defaults.
func New(minQuads, growth int) *Arena {
	if minQuads <= 0 {
		minQuads = DefaultMinQuads
	}
	if growth <= 0 {
		growth = DefaultGrowth
	}
	return &Arena{minQuads: minQuads, growth: growth}
}

// Reserve makes room for count glyphs. When the current capacity is too
// small the buffers are replaced with ones holding max(count, minQuads) *
// growth quads and the old buffers are dropped. It reports whether a
// reallocation happened.
func (a *Arena) Reserve(count int) bool {
	if count <= len(a.glyphs) {
		return false
	}
	quads := max(count, a.minQuads) * a.growth
	a.glyphs = make([]loop.Glyph, quads)
	a.vertices = make([]loop.Vec3, quads*VerticesPerQuad)
	a.uvs = make([]loop.Vec2, quads*VerticesPerQuad)
	a.grows++
	return true
}

// Reset zeroes the glyph records from index n onward so stale glyphs from a
// longer previous text are skipped by the kernel.
func (a *Arena) Reset(n int) {
	if n >= len(a.glyphs) {
		return
	}
	clear(a.glyphs[n:])
}

// Capacity returns the capacity in quads.
func (a *Arena) Capacity() int {
	return len(a.glyphs)
}

// Grows returns how many times the buffers were reallocated.
func (a *Arena) Grows() int {
	return a.grows
}

// Glyphs returns the static glyph records, one per quad of capacity.
func (a *Arena) Glyphs() []loop.Glyph {
	return a.glyphs
}

// Vertices returns the position output buffer.
func (a *Arena) Vertices() []loop.Vec3 {
	return a.vertices
}

// UVs returns the texture coordinate output buffer.
func (a *Arena) UVs() []loop.Vec2 {
	return a.uvs
}

// Release drops all buffers. A released arena can be reused; the next
// Reserve allocates again.
func (a *Arena) Release() {
	a.glyphs = nil
	a.vertices = nil
	a.uvs = nil
}
