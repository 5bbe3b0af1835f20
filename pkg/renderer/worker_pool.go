package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// RowTask represents a single image row to render
type RowTask struct {
	Row  int
	Seed int64 // Seed for the row's private random stream
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Row   int
	Stats RenderStats
	Error error
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	renderer    *RowRenderer
	image       *Image
	progress    Progress
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool writing into image. Rows never overlap,
// so workers share the pixel buffer without locking.
func NewWorkerPool(renderer *RowRenderer, image *Image, progress Progress, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if progress == nil {
		progress = nopProgress{}
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, image.Height),   // Buffer for every row
		resultQueue: make(chan RowResult, image.Height), // Buffer for every result
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			renderer:    renderer,
			image:       image,
			progress:    progress,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
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
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.resultQueue <- w.renderRow(task)
	}
}

// renderRow renders one row with its own sampler, reporting a panic as the row error
func (w *Worker) renderRow(task RowTask) (result RowResult) {
	result.Row = task.Row
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("row %d: %v", task.Row, r)
		}
	}()

	if task.Row < 0 || task.Row >= w.image.Height {
		result.Error = fmt.Errorf("row %d out of range [0, %d)", task.Row, w.image.Height)
		return result
	}

	sampler := core.NewSeededSampler(task.Seed)
	result.Stats = w.renderer.RenderRow(task.Row, w.image.Row(task.Row), sampler)
	w.progress.Increment(result.Stats.TotalPixels)
	return result
}
