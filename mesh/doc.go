// Package mesh is the renderer side of the marquee: it receives looped
// glyph geometry from the pipeline and prepares it for drawing.
//
// Mesh satisfies marquee.MeshSink. Each frame the pipeline copies vertex
// positions and UVs into it and bumps its version. From there a renderer
// can either
//
//   - upload VertexData and IndexData into buffers described by
//     BufferDescriptors and VertexLayout, drawing with the WGSL shader
//     returned by ShaderSource, or
//   - call Rasterize to composite the quads on the CPU, e.g. for previews
//     and golden images.
//
// Positions are Y-up in host space. UVs are normalized with V growing
// upward; both the shader and Rasterize flip V to sample a top-first
// atlas image.
package mesh
