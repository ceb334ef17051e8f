package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}

	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateZeroWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

func TestWorkerPool_CreateNegativeWorkers(t *testing.T) {
	pool := NewWorkerPool(-5)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

// =============================================================================
// For Tests
// =============================================================================

func TestWorkerPool_For_CoversEveryIndexOnce(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	for _, n := range []int{1, 7, 64, 65, 1000, 4097} {
		hits := make([]int32, n)
		b := pool.For(n, 16, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		b.Wait()

		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d: index %d visited %d times, want 1", n, i, h)
			}
		}
	}
}

func TestWorkerPool_For_DisjointRanges(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	var mu sync.Mutex
	var ranges [][2]int

	pool.For(500, 10, func(start, end int) {
		mu.Lock()
		ranges = append(ranges, [2]int{start, end})
		mu.Unlock()
	}).Wait()

	covered := 0
	for i, a := range ranges {
		covered += a[1] - a[0]
		for j, b := range ranges {
			if i != j && a[0] < b[1] && b[0] < a[1] {
				t.Fatalf("ranges %v and %v overlap", a, b)
			}
		}
	}
	if covered != 500 {
		t.Errorf("covered %d items, want 500", covered)
	}
}

func TestWorkerPool_For_ChunkLimit(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	b := pool.For(10000, 1, func(int, int) {})
	b.Wait()

	if b.Chunks() > 4 {
		t.Errorf("Chunks() = %d, want at most 2 per worker", b.Chunks())
	}
}

func TestWorkerPool_For_SmallBatchSingleChunk(t *testing.T) {
	pool := NewWorkerPool(8)
	defer pool.Close()

	b := pool.For(10, 0, func(int, int) {})
	b.Wait()

	if b.Chunks() != 1 {
		t.Errorf("Chunks() = %d, want 1 for n below DefaultGrain", b.Chunks())
	}
}

func TestWorkerPool_For_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	called := false
	b := pool.For(0, 1, func(int, int) { called = true })
	b.Wait()

	if called || b.Chunks() != 0 {
		t.Error("For(0) should not run the body")
	}
}

func TestWorkerPool_For_DoesNotBlock(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	release := make(chan struct{})
	returned := make(chan *Batch, 1)
	go func() {
		returned <- pool.For(1000, 1, func(int, int) { <-release })
	}()

	select {
	case b := <-returned:
		close(release)
		b.Wait()
	case <-time.After(time.Second):
		close(release)
		t.Fatal("For blocked while the batch was running")
	}
}

func TestWorkerPool_For_SaturatedPoolDoesNotBlock(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	release := make(chan struct{})
	var ran atomic.Int64
	body := func(start, end int) {
		<-release
		ran.Add(int64(end - start))
	}

	// Far more single-chunk batches than the worker queue holds, as when
	// many pipelines share one pool.
	const calls = 40
	batches := make(chan *Batch, calls)
	go func() {
		for range calls {
			batches <- pool.For(1, 0, body)
		}
		close(batches)
	}()

	var all []*Batch
	deadline := time.After(time.Second)
	for len(all) < calls {
		select {
		case b := <-batches:
			all = append(all, b)
		case <-deadline:
			close(release)
			t.Fatalf("For blocked: %d of %d calls returned", len(all), calls)
		}
	}

	close(release)
	for _, b := range all {
		b.Wait()
	}
	if ran.Load() != calls {
		t.Errorf("ran %d items, want %d", ran.Load(), calls)
	}
}

func TestWorkerPool_ParkedChunksRunAfterClose(t *testing.T) {
	pool := NewWorkerPool(1)

	release := make(chan struct{})
	var ran atomic.Int64
	var batches []*Batch
	for range 30 {
		batches = append(batches, pool.For(1, 0, func(int, int) {
			<-release
			ran.Add(1)
		}))
	}

	close(release)
	pool.Close()
	for _, b := range batches {
		b.Wait()
	}
	if ran.Load() != 30 {
		t.Errorf("ran %d chunks, want 30", ran.Load())
	}
}

func TestBatch_NilWait(t *testing.T) {
	var b *Batch
	b.Wait()
	if b.Chunks() != 0 {
		t.Error("nil Batch should report zero chunks")
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_Close(t *testing.T) {
	pool := NewWorkerPool(4)

	if !pool.IsRunning() {
		t.Error("Pool should be running before close")
	}

	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)

	pool.Close()
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

func TestWorkerPool_CloseDrainsPendingBatch(t *testing.T) {
	pool := NewWorkerPool(2)

	var counter atomic.Int64
	b := pool.For(100, 1, func(start, end int) {
		counter.Add(int64(end - start))
	})
	pool.Close()
	b.Wait()

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_ForAfterCloseRunsInline(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var counter atomic.Int64
	b := pool.For(50, 10, func(start, end int) {
		counter.Add(int64(end - start))
	})

	if counter.Load() != 50 {
		t.Errorf("counter = %d before Wait, want 50 on a closed pool", counter.Load())
	}
	b.Wait()
}

func TestWorkerPool_ConcurrentForAndClose(t *testing.T) {
	for range 200 {
		pool := NewWorkerPool(2)

		var wg sync.WaitGroup
		batches := make(chan *Batch, 8)
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				batches <- pool.For(100, 10, func(int, int) {})
			}()
		}
		pool.Close()
		wg.Wait()
		close(batches)

		done := make(chan struct{})
		go func() {
			for b := range batches {
				b.Wait()
			}
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("a batch dispatched during Close never completed")
		}
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestWorkerPool_WorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var slow, fast atomic.Int64
	b := pool.For(8, 1, func(start, end int) {
		for i := start; i < end; i++ {
			if i%4 == 0 {
				time.Sleep(10 * time.Millisecond)
				slow.Add(1)
			} else {
				fast.Add(1)
			}
		}
	})
	start := time.Now()
	b.Wait()

	if slow.Load() != 2 || fast.Load() != 6 {
		t.Errorf("slow=%d fast=%d, want 2 and 6", slow.Load(), fast.Load())
	}
	t.Logf("Elapsed time: %v (work stealing should help)", time.Since(start))
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for i := 0; i < 5; i++ {
		pool := NewWorkerPool(4)
		pool.For(100, 1, func(int, int) {}).Wait()
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	final := runtime.NumGoroutine()
	if final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}
