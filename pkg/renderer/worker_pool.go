package renderer

import (
	"context"
	"sync"
)

// BandTask represents a band rendering task for the worker pool
type BandTask struct {
	Band        Band
	Framebuffer *Framebuffer // Render target shared by every band of one render
	Progress    *Progress
	TaskID      int // For deterministic ordering of results
}

// BandResult contains the result from rendering a band
type BandResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// bandRenderer renders one band; implemented by Renderer
type bandRenderer interface {
	renderBand(ctx context.Context, band Band, fb *Framebuffer, counter *Progress) (RenderStats, error)
}

// WorkerPool manages parallel band rendering
type WorkerPool struct {
	taskQueue   chan BandTask
	resultQueue chan BandResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual band rendering tasks
type Worker struct {
	ID          int
	renderer    bandRenderer
	taskQueue   chan BandTask
	resultQueue chan BandResult
}

// NewWorkerPool creates a pool with one worker per expected band
func NewWorkerPool(renderer bandRenderer, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}

	wp := &WorkerPool{
		taskQueue:   make(chan BandTask, maxTasks),
		resultQueue: make(chan BandResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    renderer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop closes the task queue and blocks until every worker has finished
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a band task to the worker pool
func (wp *WorkerPool) SubmitTask(task BandTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed band result
func (wp *WorkerPool) GetResult() (BandResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Bands never overlap, so workers write disjoint framebuffer rows
		stats, err := w.renderer.renderBand(ctx, task.Band, task.Framebuffer, task.Progress)
		w.resultQueue <- BandResult{
			TaskID: task.TaskID,
			Stats:  stats,
			Error:  err,
		}
	}
}
