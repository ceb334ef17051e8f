package marquee

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/marquee/internal/glyphbuf"
	"github.com/gogpu/marquee/loop"
)

// Pipeline scrolls laid-out text through a viewport.
//
// A Pipeline runs in two phases. Prepare re-reads the layout and viewport
// whenever the text changes. Every frame, Schedule dispatches the loop
// kernel for the current offset and Apply, called on a later frame, waits
// for that batch and hands the geometry to the mesh sink:
//
//	for each frame {
//	    if textChanged {
//	        p.Prepare()
//	    }
//	    p.Apply()                  // results of last frame's Schedule
//	    p.Schedule(offset, spacing)
//	}
//
// Thread safety: Pipeline is driven by a single coordinating goroutine and
// is not safe for concurrent use. Kernel work runs on the Runner.
type Pipeline struct {
	layout   Layout
	viewport ViewportSource
	sink     MeshSink
	runner   Runner

	// owned is the pool created by New when no runner was given.
	owned *PoolRunner

	arena *glyphbuf.Arena
	job   loop.Job
	body  func(start, end int)

	vp      loop.Viewport
	metrics loop.Metrics
	glyphs  int
	visible int

	frame        func() uint64
	frames       uint64
	prepareFrame uint64
	prepared     bool

	// batch is the outstanding kernel batch, nil when none is in flight.
	batch Batch

	// pending is set by Schedule and cleared by Prepare and Apply.
	pending bool
	closed  bool
}

// Stats is a snapshot of pipeline counters.
type Stats struct {
	Glyphs   int
	Visible  int
	Capacity int
	Grows    int
	Frames   uint64
}

// New creates a pipeline. Call Prepare before the first Schedule and Close
// when done.
func New(layout Layout, viewport ViewportSource, sink MeshSink, opts ...Option) (*Pipeline, error) {
	if layout == nil || viewport == nil || sink == nil {
		return nil, ErrNilCollaborator
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pipeline{
		layout:   layout,
		viewport: viewport,
		sink:     sink,
		runner:   o.runner,
		arena:    glyphbuf.New(o.minQuads, o.growth),
	}
	if p.runner == nil {
		p.owned = NewPoolRunner(o.workers)
		p.runner = p.owned
	}
	p.frame = o.frame
	if p.frame == nil {
		p.frame = func() uint64 { return p.frames }
	}
	p.body = p.job.ExecuteRange
	return p, nil
}

// Prepare re-derives the per-glyph static data after a text or layout
// change. It first waits for any in-flight batch, since it rewrites the
// buffers the batch is using.
func (p *Pipeline) Prepare() error {
	if p.closed {
		return ErrClosed
	}
	p.finish()

	if err := p.layout.Refresh(); err != nil {
		return fmt.Errorf("marquee: refresh layout: %w", err)
	}

	n := p.layout.GlyphCount()
	if p.arena.Reserve(n) {
		Logger().Debug("marquee: glyph buffers grown",
			slog.Int("glyphs", n),
			slog.Int("capacity", p.arena.Capacity()),
			slog.Int("grows", p.arena.Grows()))
	}

	glyphs := p.arena.Glyphs()
	visible := 0
	for i := range n {
		g := p.layout.Glyph(i)
		if !g.Visible {
			glyphs[i] = loop.Glyph{}
			continue
		}
		g.VertexIndex = visible * glyphbuf.VerticesPerQuad
		glyphs[i] = g
		visible++
	}
	p.arena.Reset(n)

	p.glyphs = n
	p.visible = visible
	p.metrics = p.layout.Metrics()
	p.vp = loop.ViewportFromCorners(p.viewport.LocalCorners())

	p.prepared = true
	p.pending = false
	p.prepareFrame = p.frame()
	return nil
}

// Schedule dispatches the loop kernel over all glyphs for the given scroll
// offset and spacing. It does not wait for the kernel to finish.
//
// At most one batch is outstanding. Scheduling again before Apply or Wait
// first waits for the previous batch.
func (p *Pipeline) Schedule(offset, spacing loop.Vec2) error {
	if p.closed {
		Logger().Warn("marquee: Schedule called after Close")
		return ErrClosed
	}
	if !p.prepared {
		Logger().Warn("marquee: Schedule called before Prepare")
		return ErrNotPrepared
	}
	if p.batch != nil {
		Logger().Warn("marquee: Schedule called with a batch in flight, waiting")
		p.finish()
	}

	p.job = loop.Job{
		Glyphs: p.arena.Glyphs()[:p.glyphs],
		Params: loop.Params{
			Offset:    offset,
			LoopSize:  loop.LoopSize(p.metrics.Preferred, spacing, p.vp.Size(), p.metrics.Nominal),
			AtlasSize: p.metrics.AtlasSize,
		},
		Viewport: p.vp,
		Vertices: p.arena.Vertices(),
		UVs:      p.arena.UVs(),
	}
	p.batch = p.runner.For(p.glyphs, p.body)
	p.pending = true
	p.frames++
	return nil
}

// Apply waits for the last scheduled batch and writes its output into the
// mesh sink. It is a no-op on the frame of the last Prepare and when nothing
// was scheduled since the last Prepare or Apply, so stale geometry is never
// shown.
func (p *Pipeline) Apply() error {
	if p.closed {
		return ErrClosed
	}
	if !p.prepared {
		Logger().Warn("marquee: Apply called before Prepare")
		return ErrNotPrepared
	}
	if p.frame() == p.prepareFrame {
		Logger().Debug("marquee: apply skipped on prepare frame")
		return nil
	}
	if !p.pending {
		Logger().Debug("marquee: apply skipped, nothing scheduled")
		return nil
	}

	p.finish()
	n := p.visible * glyphbuf.VerticesPerQuad
	p.sink.SetGeometry(p.arena.Vertices()[:n], p.arena.UVs()[:n])
	p.sink.UpdateGeometry()
	p.pending = false
	return nil
}

// Wait blocks until the outstanding batch, if any, has completed.
func (p *Pipeline) Wait() {
	p.finish()
}

// Close waits for any in-flight batch, then releases the buffers and the
// pool the pipeline created. Close is safe to call multiple times.
func (p *Pipeline) Close() error {
	if p.closed {
		return nil
	}
	p.finish()
	p.arena.Release()
	if p.owned != nil {
		p.owned.Close()
	}
	p.closed = true
	return nil
}

// Stats returns the current counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		Glyphs:   p.glyphs,
		Visible:  p.visible,
		Capacity: p.arena.Capacity(),
		Grows:    p.arena.Grows(),
		Frames:   p.frames,
	}
}

// Viewport returns the viewport read by the last Prepare.
func (p *Pipeline) Viewport() loop.Viewport {
	return p.vp
}

// finish is the batch completion barrier.
func (p *Pipeline) finish() {
	if p.batch == nil {
		return
	}
	p.batch.Wait()
	p.batch = nil
}
