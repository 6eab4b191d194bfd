package reflection

import (
	"runtime"
	"sync"
)

// TraceTask is one chunk of the frame's ray buffer for a worker to resolve
type TraceTask struct {
	TaskID int
	Rays   []Ray
	Cfg    FrameConfig
}

// TraceResult contains the aggregated outcome of one trace task
type TraceResult struct {
	TaskID int
	Stats  TraceStats
}

// WorkerPool manages parallel ray tracing. Rays are independent units of
// work, so tasks carry no ordering requirements and results may arrive in
// any order.
type WorkerPool struct {
	taskQueue   chan TraceTask
	resultQueue chan TraceResult
	tracer      *Tracer
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool tracing through the given tracer.
// Both queues are sized for maxTasks so a frame can submit every chunk
// before draining results without blocking.
func NewWorkerPool(tracer *Tracer, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if maxTasks < numWorkers {
		maxTasks = numWorkers
	}

	return &WorkerPool{
		taskQueue:   make(chan TraceTask, maxTasks),
		resultQueue: make(chan TraceResult, maxTasks),
		tracer:      tracer,
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Submit queues a trace task
func (wp *WorkerPool) Submit(task TraceTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed task result
func (wp *WorkerPool) GetResult() (TraceResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		var stats TraceStats
		for _, ray := range task.Rays {
			stats.add(wp.tracer.TraceRay(ray, task.Cfg))
		}
		wp.resultQueue <- TraceResult{TaskID: task.TaskID, Stats: stats}
	}
}
