package marquee

import (
	"github.com/gogpu/marquee/internal/parallel"
	"github.com/gogpu/marquee/loop"
)

// Layout is the text layout engine feeding the pipeline.
type Layout interface {
	// Refresh forces the layout to re-shape and re-measure so that the
	// glyph data read afterwards is final.
	Refresh() error

	// GlyphCount returns the number of glyph slots, including invisible ones.
	GlyphCount() int

	// Glyph returns the visibility, corners and atlas rectangle of glyph i.
	// VertexIndex is assigned by the pipeline and ignored here.
	Glyph(i int) loop.Glyph

	// Metrics returns the preferred size, nominal glyph size and atlas size.
	Metrics() loop.Metrics
}

// ViewportSource owns the rectangle the text loops inside.
type ViewportSource interface {
	// LocalCorners returns the viewport corners in BL, TL, TR, BR order.
	LocalCorners() [4]loop.Vec3
}

// MeshSink receives the looped geometry.
type MeshSink interface {
	// SetGeometry replaces the vertex and UV attribute arrays. Both slices
	// hold four entries per visible glyph and are only valid during the
	// call; implementations copy them.
	SetGeometry(vertices []loop.Vec3, uvs []loop.Vec2)

	// UpdateGeometry signals that new geometry is ready to render.
	UpdateGeometry()
}

// Batch is the completion handle of one parallel-for.
type Batch interface {
	Wait()
}

// Runner runs body over [0, n) in disjoint ranges, possibly concurrently,
// and returns without waiting for completion.
type Runner interface {
	For(n int, body func(start, end int)) Batch
}

// StaticViewport is a ViewportSource for a fixed axis-aligned rectangle.
type StaticViewport [4]loop.Vec3

// NewStaticViewport returns the viewport spanning (x0,y0)-(x1,y1).
func NewStaticViewport(x0, y0, x1, y1 float32) StaticViewport {
	return StaticViewport{
		loop.BottomLeft:  loop.V3(x0, y0, 0),
		loop.TopLeft:     loop.V3(x0, y1, 0),
		loop.TopRight:    loop.V3(x1, y1, 0),
		loop.BottomRight: loop.V3(x1, y0, 0),
	}
}

// LocalCorners implements ViewportSource.
func (v StaticViewport) LocalCorners() [4]loop.Vec3 {
	return v
}

// PoolRunner runs batches on a work-stealing worker pool.
//
// Thread safety: PoolRunner is safe for concurrent use and may be shared by
// several pipelines. For never blocks on a busy pool; each pipeline keeps at
// most one batch outstanding.
type PoolRunner struct {
	pool  *parallel.WorkerPool
	grain int
}

// NewPoolRunner starts a pool with the given number of workers.
// Zero or negative selects GOMAXPROCS.
func NewPoolRunner(workers int) *PoolRunner {
	return &PoolRunner{pool: parallel.NewWorkerPool(workers), grain: parallel.DefaultGrain}
}

// For implements Runner.
func (r *PoolRunner) For(n int, body func(start, end int)) Batch {
	return r.pool.For(n, r.grain, body)
}

// Workers returns the number of pool workers.
func (r *PoolRunner) Workers() int {
	return r.pool.Workers()
}

// Close drains queued work and stops the workers.
func (r *PoolRunner) Close() {
	r.pool.Close()
}

// SerialRunner runs every batch on the calling goroutine before For returns.
// It is deterministic and useful in tests and single-threaded hosts.
type SerialRunner struct{}

// For implements Runner.
func (SerialRunner) For(n int, body func(start, end int)) Batch {
	if n > 0 {
		body(0, n)
	}
	return doneBatch{}
}

type doneBatch struct{}

func (doneBatch) Wait() {}
