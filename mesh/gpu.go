package mesh

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Interleaved vertex layout: position (xyz) then uv, all float32.
const (
	positionOffset = 0
	uvOffset       = 12

	// VertexStride is the size of one interleaved vertex in bytes.
	VertexStride = 20
)

// Shader locations of the vertex attributes.
const (
	PositionLocation = 0
	UVLocation       = 1
)

// VertexLayout describes the interleaved vertex buffer written by VertexData.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: positionOffset, ShaderLocation: PositionLocation},
			{Format: gputypes.VertexFormatFloat32x2, Offset: uvOffset, ShaderLocation: UVLocation},
		},
	}
}

// Topology is the primitive topology of the index buffer.
const Topology = gputypes.PrimitiveTopologyTriangleList

// IndexFormat returns the smallest index format that addresses every vertex.
func (m *Mesh) IndexFormat() gputypes.IndexFormat {
	if m.count <= math.MaxUint16+1 {
		return gputypes.IndexFormatUint16
	}
	return gputypes.IndexFormatUint32
}

// VertexData packs positions and UVs into little-endian interleaved bytes.
// buf is reused when it has enough capacity.
func (m *Mesh) VertexData(buf []byte) []byte {
	n := m.count * VertexStride
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]

	le := binary.LittleEndian
	for i := range m.count {
		p, uv := m.vertices[i], m.uvs[i]
		b := buf[i*VertexStride:]
		le.PutUint32(b[0:], math.Float32bits(p.X))
		le.PutUint32(b[4:], math.Float32bits(p.Y))
		le.PutUint32(b[8:], math.Float32bits(p.Z))
		le.PutUint32(b[12:], math.Float32bits(uv.X))
		le.PutUint32(b[16:], math.Float32bits(uv.Y))
	}
	return buf
}

// IndexData packs Indices in IndexFormat. The result is padded to a
// multiple of four bytes, as buffer writes require.
func (m *Mesh) IndexData(buf []byte) []byte {
	idx := m.Indices()
	format := m.IndexFormat()
	size := int(format.Size())
	n := align4(len(idx) * size)
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	clear(buf[len(idx)*size:])

	le := binary.LittleEndian
	for i, v := range idx {
		if format == gputypes.IndexFormatUint16 {
			le.PutUint16(buf[i*2:], uint16(v))
		} else {
			le.PutUint32(buf[i*4:], v)
		}
	}
	return buf
}

// BufferDescriptors returns descriptors for vertex and index buffers large
// enough for the current geometry.
func (m *Mesh) BufferDescriptors(label string) (vertex, index gputypes.BufferDescriptor) {
	vertex = gputypes.BufferDescriptor{
		Label: label + " vertices",
		Size:  uint64(align4(m.count * VertexStride)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	}
	index = gputypes.BufferDescriptor{
		Label: label + " indices",
		Size:  uint64(align4(m.QuadCount() * IndicesPerQuad * int(m.IndexFormat().Size()))),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	}
	return vertex, index
}

func align4(n int) int {
	return (n + 3) &^ 3
}
