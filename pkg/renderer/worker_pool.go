package renderer

import (
	"context"
	"sync"
	"sync/atomic"
)

// ScanlineTask asks a worker to render one row of the framebuffer
type ScanlineTask struct {
	Line int
}

// ScanlineResult reports a finished (or skipped) scanline
type ScanlineResult struct {
	Line  int
	Error error
}

// WorkerPool renders scanlines in parallel. Each worker owns its random source
// and BVH workspace; the scene is shared read-only.
type WorkerPool struct {
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	completed   atomic.Int64
}

// Worker handles individual scanline tasks
type Worker struct {
	ID          int
	ctx         context.Context
	renderer    *scanlineRenderer
	framebuffer *Framebuffer
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
	pool        *WorkerPool
}

// NewWorkerPool creates a pool of opts.Workers workers writing into fb.
// Worker i is seeded with opts.Seed+i.
func NewWorkerPool(ctx context.Context, frame Frame, opts Options, fb *Framebuffer) *WorkerPool {
	opts = opts.normalize()

	wp := &WorkerPool{
		taskQueue:   make(chan ScanlineTask, fb.Height),
		resultQueue: make(chan ScanlineResult, fb.Height),
		numWorkers:  opts.Workers,
	}

	for i := 0; i < opts.Workers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			ctx:         ctx,
			renderer:    newScanlineRenderer(frame, opts, opts.Seed+int64(i)),
			framebuffer: fb,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
			pool:        wp,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a scanline to the pool
func (wp *WorkerPool) SubmitTask(task ScanlineTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed scanline result
func (wp *WorkerPool) GetResult() (ScanlineResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Completed returns how many scanlines have been rendered so far
func (wp *WorkerPool) Completed() int64 {
	return wp.completed.Load()
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if err := w.ctx.Err(); err != nil {
			w.resultQueue <- ScanlineResult{Line: task.Line, Error: err}
			continue
		}

		// Rows never overlap, so writing straight into the shared framebuffer is safe
		w.renderer.render(task.Line, w.framebuffer.Row(task.Line))
		w.pool.completed.Add(1)

		w.resultQueue <- ScanlineResult{Line: task.Line}
	}
}
