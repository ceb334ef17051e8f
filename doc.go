// Package marquee scrolls a block of shaped text continuously and seamlessly
// inside a fixed rectangular viewport.
//
// # Overview
//
// Glyphs leaving one edge of the viewport re-enter at the opposite edge, so
// the text forms an endless ribbon. Glyphs that straddle the wrap seam are
// drawn as partial glyphs with matching clipped texture coordinates, so no
// mask or scissor pass is required and the mesh is rebuilt without per-frame
// allocation.
//
// # Quick Start
//
//	layout, _ := text.NewLayout(source, "Breaking news", text.WithSize(32))
//	m := mesh.New()
//	p, err := marquee.New(layout, marquee.NewStaticViewport(0, 0, 400, 48), m)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	_ = p.Prepare()
//	for frame := 0; ; frame++ {
//	    _ = p.Apply()
//	    _ = p.Schedule(loop.V2(float32(frame)*2, 0), loop.V2(40, 0))
//	}
//
// # Architecture
//
// The module is organized into:
//   - loop: data model and the per-glyph loop transform kernel
//   - marquee: the Prepare / Schedule / Apply pipeline
//   - internal/glyphbuf: growth-only glyph and vertex buffers
//   - internal/parallel: work-stealing worker pool
//   - text: go-text/typesetting based layout engine with a glyph atlas
//   - mesh: attribute arrays, GPU vertex layout and a software preview
package marquee
