package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// DefaultGrain is the smallest number of items For hands to one work item.
const DefaultGrain = 64

// WorkerPool is a pool of goroutines for data-parallel loops.
//
// Each worker has its own queue. Workers steal from other queues when their
// own queue is empty, which balances batches whose items differ in cost.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker work queues.
	// Each worker primarily pulls from its own queue but can steal from others.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// queueSize is the buffer size for each worker's queue.
	queueSize int

	// mu orders For against Close: For holds it for reading from the
	// running check through the last enqueue, Close for writing.
	mu sync.RWMutex

	// overflow holds chunks that found every queue full.
	overflowMu sync.Mutex
	overflow   []func()
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
		queueSize:  queueSize,
	}

	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			p.drainOverflow()
			return

		case work := <-myQueue:
			if work != nil {
				work()
			}

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
			} else {
				// No work anywhere, block on own queue
				select {
				case <-p.done:
					p.drainQueue(myQueue)
					p.drainOverflow()
					return
				case work := <-myQueue:
					if work != nil {
						work()
					}
				}
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// drainOverflow executes all parked chunks.
func (p *WorkerPool) drainOverflow() {
	for work := p.popOverflow(); work != nil; work = p.popOverflow() {
		work()
	}
}

// steal attempts to take work from another worker's queue, then from the
// overflow list. Returns nil if no work is available.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}

		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return p.popOverflow()
}

// popOverflow removes the oldest parked chunk, or returns nil.
func (p *WorkerPool) popOverflow() func() {
	p.overflowMu.Lock()
	defer p.overflowMu.Unlock()

	if len(p.overflow) == 0 {
		return nil
	}
	work := p.overflow[0]
	p.overflow[0] = nil
	p.overflow = p.overflow[1:]
	return work
}

// park stores a chunk no queue had room for and wakes idle workers.
// A nil item is a wake-up: workers skip it and look for stolen work.
func (p *WorkerPool) park(work func()) {
	p.overflowMu.Lock()
	p.overflow = append(p.overflow, work)
	p.overflowMu.Unlock()

	for _, q := range p.workQueues {
		select {
		case q <- nil:
		default:
		}
	}
}

// enqueue hands a chunk to the first queue with room, starting at the
// preferred worker, and parks it when every queue is full.
func (p *WorkerPool) enqueue(preferred int, work func()) {
	for k := range p.workers {
		select {
		case p.workQueues[(preferred+k)%p.workers] <- work:
			return
		default:
		}
	}
	p.park(work)
}

// Batch tracks the completion of one For call.
type Batch struct {
	wg     sync.WaitGroup
	chunks int
}

// Wait blocks until every chunk of the batch has run.
// Wait on a nil Batch returns immediately.
func (b *Batch) Wait() {
	if b == nil {
		return
	}
	b.wg.Wait()
}

// Chunks returns how many work items the batch was split into.
func (b *Batch) Chunks() int {
	if b == nil {
		return 0
	}
	return b.chunks
}

// For runs body over [0, n) split into contiguous ranges of at least grain
// items and returns without waiting. Ranges never overlap, so body may write
// to per-index storage without locking.
//
// The batch is split into at most two chunks per worker. For never blocks:
// chunks that find every queue full are parked until a worker is free, so
// several callers may share one pool. On a closed pool the body runs on the
// calling goroutine before For returns.
func (p *WorkerPool) For(n, grain int, body func(start, end int)) *Batch {
	b := &Batch{}
	if n <= 0 || body == nil {
		return b
	}
	if grain <= 0 {
		grain = DefaultGrain
	}

	chunks := (n + grain - 1) / grain
	if limit := p.workers * 2; chunks > limit {
		chunks = limit
	}
	size := (n + chunks - 1) / chunks
	chunks = (n + size - 1) / size
	b.chunks = chunks

	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.running.Load() {
		body(0, n)
		return b
	}

	b.wg.Add(chunks)
	for i := range chunks {
		start := i * size
		end := min(start+size, n)
		p.enqueue(i, func() {
			defer b.wg.Done()
			body(start, end)
		})
	}
	return b
}

// Close gracefully shuts down the pool.
// It stops accepting new work, waits for all queued work to complete,
// and then stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
