package resilience

import (
	"context"
	"errors"
	"sync"
)

var ErrWorkerPoolClosed = errors.New("worker pool is closed")

// WorkerPool runs submitted tasks on a bounded set of goroutines.
// Workers are spawned lazily as tasks arrive, up to the configured limit.
type WorkerPool struct {
	mu     sync.Mutex
	tasks  chan func()
	spare  int
	closed bool
	wg     sync.WaitGroup
}

func NewWorkerPool(workers, queueSize int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}

	return &WorkerPool{
		tasks: make(chan func(), queueSize),
		spare: workers,
	}
}

// Submit enqueues a task, blocking while the queue is full unless ctx is done.
// The send happens under the pool lock, so a concurrent Close can never close
// the channel mid-send; Close instead waits for a blocked Submit to enqueue.
func (p *WorkerPool) Submit(ctx context.Context, task func()) error {
	if task == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrWorkerPoolClosed
	}
	if p.spare > 0 {
		p.spare--
		p.wg.Add(1)
		go p.worker()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.tasks <- task:
		return nil
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Close stops intake. Queued tasks still run; pair with Wait to drain.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.tasks)
}

// Wait blocks until every queued task has finished.
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}
