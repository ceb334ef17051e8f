package marquee

// Option configures a Pipeline during creation.
//
// Example:
//
//	// Default: a worker pool sized to GOMAXPROCS
//	p, err := marquee.New(layout, viewport, mesh)
//
//	// Share one pool between many pipelines
//	pool := marquee.NewPoolRunner(4)
//	defer pool.Close()
//	p, err := marquee.New(layout, viewport, mesh, marquee.WithRunner(pool))
type Option func(*options)

// options holds optional configuration for Pipeline creation.
type options struct {
	runner   Runner
	workers  int
	minQuads int
	growth   int
	frame    func() uint64
}

// defaultOptions returns the default pipeline options.
func defaultOptions() options {
	return options{
		runner:  nil, // Will be set to an owned PoolRunner if nil
		workers: 0,   // GOMAXPROCS
	}
}

// WithRunner sets the parallel-for primitive used to run the kernel.
// The pipeline does not close a runner it was given.
func WithRunner(r Runner) Option {
	return func(o *options) {
		o.runner = r
	}
}

// WithWorkers sets the number of workers of the pool the pipeline creates
// when no runner is given. Zero or negative selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithBufferPolicy sets the glyph buffer sizing policy: buffers hold
// max(glyphs, minQuads) * growth quads and are replaced only when the glyph
// count exceeds the current capacity. Non-positive values keep the defaults.
func WithBufferPolicy(minQuads, growth int) Option {
	return func(o *options) {
		o.minQuads = minQuads
		o.growth = growth
	}
}

// WithFrameCounter injects the host's frame clock. Apply is a no-op when the
// clock reads the same frame as the last Prepare. Without a clock the
// pipeline counts Schedule calls as frames.
func WithFrameCounter(frame func() uint64) Option {
	return func(o *options) {
		o.frame = frame
	}
}
