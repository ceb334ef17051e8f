package mesh

import (
	"github.com/gogpu/marquee/loop"
)

// VerticesPerQuad is the number of vertices of one glyph quad.
const VerticesPerQuad = 4

// IndicesPerQuad is the number of indices of one glyph quad (two triangles).
const IndicesPerQuad = 6

// quadIndices lists the corners of the two triangles of a quad:
// bottom-left, top-left, top-right and top-right, bottom-right, bottom-left.
var quadIndices = [IndicesPerQuad]uint32{
	uint32(loop.BottomLeft), uint32(loop.TopLeft), uint32(loop.TopRight),
	uint32(loop.TopRight), uint32(loop.BottomRight), uint32(loop.BottomLeft),
}

// Mesh holds the vertex attributes of one glyph sub-mesh.
//
// Attribute arrays grow as needed and are never shrunk, so steady-state
// frames do not allocate.
//
// Mesh is not safe for concurrent use.
type Mesh struct {
	vertices []loop.Vec3
	uvs      []loop.Vec2
	count    int

	version uint64
	indices []uint32
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// SetGeometry copies vertex positions and UVs into the mesh. Only the
// shorter of the two lengths, rounded down to whole quads, is used.
func (m *Mesh) SetGeometry(vertices []loop.Vec3, uvs []loop.Vec2) {
	n := min(len(vertices), len(uvs))
	n -= n % VerticesPerQuad

	if cap(m.vertices) < n {
		m.vertices = make([]loop.Vec3, n)
		m.uvs = make([]loop.Vec2, n)
	}
	m.vertices = m.vertices[:n]
	m.uvs = m.uvs[:n]
	copy(m.vertices, vertices)
	copy(m.uvs, uvs)
	m.count = n
}

// UpdateGeometry marks the attribute arrays as changed.
func (m *Mesh) UpdateGeometry() {
	m.version++
}

// Version counts UpdateGeometry calls. Renderers compare it against the
// version they last uploaded.
func (m *Mesh) Version() uint64 {
	return m.version
}

// Vertices returns the vertex positions. The slice is reused by the next
// SetGeometry.
func (m *Mesh) Vertices() []loop.Vec3 {
	return m.vertices[:m.count]
}

// UVs returns the texture coordinates. The slice is reused by the next
// SetGeometry.
func (m *Mesh) UVs() []loop.Vec2 {
	return m.uvs[:m.count]
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return m.count
}

// QuadCount returns the number of glyph quads.
func (m *Mesh) QuadCount() int {
	return m.count / VerticesPerQuad
}

// Quad returns the corners and UVs of quad i.
func (m *Mesh) Quad(i int) (loop.Quad, [VerticesPerQuad]loop.Vec2) {
	var q loop.Quad
	var uv [VerticesPerQuad]loop.Vec2
	k := i * VerticesPerQuad
	copy(q[:], m.vertices[k:k+VerticesPerQuad])
	copy(uv[:], m.uvs[k:k+VerticesPerQuad])
	return q, uv
}

// Indices returns the triangle list indices for all quads.
func (m *Mesh) Indices() []uint32 {
	n := m.QuadCount() * IndicesPerQuad
	if len(m.indices) >= n {
		return m.indices[:n]
	}

	start := len(m.indices) / IndicesPerQuad
	m.indices = append(m.indices, make([]uint32, n-len(m.indices))...)
	for q := start; q < m.QuadCount(); q++ {
		base := uint32(q * VerticesPerQuad)
		for j, c := range quadIndices {
			m.indices[q*IndicesPerQuad+j] = base + c
		}
	}
	return m.indices[:n]
}
