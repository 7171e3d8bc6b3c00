package renderer

import (
	"runtime"
	"sync"
)

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	TaskID  int   // For matching results to tasks
	Row     int   // Raster row to render
	Columns []int // Columns to render; nil renders the whole row
	Samples int   // Supersampling grid size
	Target  Frame // Frame to write into; tasks never share a row
}

// RowResult contains the result from rendering a row
type RowResult struct {
	TaskID int
	Pixels int           // Pixels rendered
	Errors []*PixelError // Pixels whose trace failed
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	startOnce   sync.Once
	stopOnce    sync.Once
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// All workers share the raytracer, which is read-only during a render.
func NewWorkerPool(raytracer *Raytracer, height, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, height),   // Buffer for every row of a pass
		resultQueue: make(chan RowResult, height), // Buffer for every result of a pass
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	wp.startOnce.Do(func() {
		for _, worker := range wp.workers {
			wp.wg.Add(1)
			go worker.run(&wp.wg)
		}
	})
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.taskQueue) // No more tasks
		wp.wg.Wait()        // Wait for workers to finish
		close(wp.resultQueue)
	})
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

// renderRow renders the task's pixels into its target frame
func (w *Worker) renderRow(task RowTask) RowResult {
	result := RowResult{TaskID: task.TaskID}
	width, height := task.Target.Width(), task.Target.Height()
	row := task.Target[task.Row]

	render := func(column int) {
		x, y := RasterToScreen(column, task.Row, width, height)
		color, err := w.raytracer.RenderPixel(x, y, task.Samples)
		if err != nil {
			result.Errors = append(result.Errors, err)
		}

		row[column].Color = color
		row[column].SampleCount += SamplesFor(task.Samples)
		result.Pixels++
	}

	if task.Columns == nil {
		for column := range row {
			render(column)
		}
	} else {
		for _, column := range task.Columns {
			render(column)
		}
	}

	return result
}
