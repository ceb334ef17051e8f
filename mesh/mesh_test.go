package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/marquee/loop"
)

// unitQuads returns n quads of size 1 placed side by side, with UVs equal
// to their local corner positions.
func unitQuads(n int) ([]loop.Vec3, []loop.Vec2) {
	verts := make([]loop.Vec3, 0, n*VerticesPerQuad)
	uvs := make([]loop.Vec2, 0, n*VerticesPerQuad)
	for i := range n {
		x := float32(i)
		verts = append(verts,
			loop.V3(x, 0, 0), loop.V3(x, 1, 0), loop.V3(x+1, 1, 0), loop.V3(x+1, 0, 0))
		uvs = append(uvs, loop.V2(0, 0), loop.V2(0, 1), loop.V2(1, 1), loop.V2(1, 0))
	}
	return verts, uvs
}

func TestSetGeometryCopies(t *testing.T) {
	m := New()
	verts, uvs := unitQuads(2)

	m.SetGeometry(verts, uvs)
	verts[0] = loop.V3(99, 99, 99)

	require.Equal(t, 2, m.QuadCount())
	assert.Equal(t, 8, m.VertexCount())
	assert.Equal(t, loop.V3(0, 0, 0), m.Vertices()[0], "mesh must own its copy")
	assert.Equal(t, loop.V2(1, 1), m.UVs()[2])
}

func TestSetGeometryTruncatesToWholeQuads(t *testing.T) {
	m := New()
	verts, uvs := unitQuads(2)

	m.SetGeometry(verts[:7], uvs)
	assert.Equal(t, 1, m.QuadCount())

	m.SetGeometry(verts, uvs[:4])
	assert.Equal(t, 1, m.QuadCount())
}

func TestSetGeometryReusesArrays(t *testing.T) {
	m := New()
	verts, uvs := unitQuads(4)
	m.SetGeometry(verts, uvs)
	first := &m.Vertices()[0]

	m.SetGeometry(verts[:4], uvs[:4])
	assert.Equal(t, 1, m.QuadCount())

	m.SetGeometry(verts, uvs)
	assert.Same(t, first, &m.Vertices()[0], "arrays never shrink")
}

func TestSetGeometryEmpty(t *testing.T) {
	m := New()
	m.SetGeometry(nil, nil)

	assert.Zero(t, m.QuadCount())
	assert.Empty(t, m.Vertices())
	assert.Empty(t, m.Indices())
}

func TestUpdateGeometryVersion(t *testing.T) {
	m := New()
	assert.Zero(t, m.Version())

	m.UpdateGeometry()
	m.UpdateGeometry()
	assert.Equal(t, uint64(2), m.Version())
}

func TestQuad(t *testing.T) {
	m := New()
	m.SetGeometry(unitQuads(3))

	q, uv := m.Quad(2)
	assert.Equal(t, loop.V3(2, 0, 0), q[loop.BottomLeft])
	assert.Equal(t, loop.V3(3, 1, 0), q[loop.TopRight])
	assert.Equal(t, loop.V2(0, 1), uv[loop.TopLeft])
}

func TestIndices(t *testing.T) {
	m := New()
	m.SetGeometry(unitQuads(2))

	assert.Equal(t, []uint32{
		0, 1, 2, 2, 3, 0,
		4, 5, 6, 6, 7, 4,
	}, m.Indices())
}

func TestIndicesGrowAndShrinkWithQuadCount(t *testing.T) {
	m := New()
	m.SetGeometry(unitQuads(1))
	require.Len(t, m.Indices(), 6)

	m.SetGeometry(unitQuads(3))
	idx := m.Indices()
	require.Len(t, idx, 18)
	assert.Equal(t, []uint32{8, 9, 10, 10, 11, 8}, idx[12:])

	m.SetGeometry(unitQuads(2))
	assert.Len(t, m.Indices(), 12)
}
