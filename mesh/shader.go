package mesh

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/naga"

	"github.com/gogpu/marquee/loop"
)

//go:embed shaders/marquee.wgsl
var shaderSource string

// Shader entry points.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// UniformSize is the size of the shader's uniform block in bytes:
// a 4x4 transform followed by an RGBA color.
const UniformSize = 80

// ShaderSource returns the WGSL source of the glyph shader.
func ShaderSource() string {
	return shaderSource
}

// CompileShader compiles the glyph shader to SPIR-V words.
func CompileShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(shaderSource)
	if err != nil {
		return nil, fmt.Errorf("mesh: compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return spirv, nil
}

// Ortho returns a column-major matrix mapping the viewport onto clip space,
// bottom-left to (-1, -1) and top-right to (1, 1).
func Ortho(vp loop.Viewport) [16]float32 {
	size := vp.Size()
	sx, sy := float32(1), float32(1)
	if size.X != 0 {
		sx = 2 / size.X
	}
	if size.Y != 0 {
		sy = 2 / size.Y
	}
	return [16]float32{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		-1 - vp.BottomLeft.X*sx, -1 - vp.BottomLeft.Y*sy, 0, 1,
	}
}

// UniformData packs the uniform block for the given transform and color.
func UniformData(transform [16]float32, c color.Color) []byte {
	buf := make([]byte, UniformSize)
	le := binary.LittleEndian
	for i, v := range transform {
		le.PutUint32(buf[i*4:], math.Float32bits(v))
	}

	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	rgba := [4]float32{
		float32(n.R) / 255,
		float32(n.G) / 255,
		float32(n.B) / 255,
		float32(n.A) / 255,
	}
	for i, v := range rgba {
		le.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	return buf
}
