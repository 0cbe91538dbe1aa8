package worker

import (
	"context"
	"sync"
	"time"

	"github.com/safeguardx/safeguardx/internal/pkg/logger"
)

// Task is a fire-and-forget unit of background work.
type Task func(ctx context.Context)

// Pool runs tasks on a fixed set of goroutines. Submission never blocks
// the caller: when all workers are busy and the queue is full, the task
// runs on its own goroutine. Tasks run to completion once scheduled.
type Pool struct {
	tasks  chan Task
	logger *logger.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool creates and starts a pool with the given number of workers.
func NewPool(workers int, log *logger.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}

	p := &Pool{
		tasks:  make(chan Task, 64),
		logger: log,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

func (p *Pool) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithFields(map[string]interface{}{
				"panic": r,
			}).Error("Background task panicked")
		}
	}()

	task(context.Background())
}

// Submit schedules a task without blocking. Submissions after Stop are
// dropped with a warning.
func (p *Pool) Submit(task Task) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.logger.Warn("Task submitted after pool shutdown, dropping")
		return
	}

	select {
	case p.tasks <- task:
		p.mu.Unlock()
	default:
		// Queue full: run the task on its own goroutine so the
		// submitting request never waits.
		p.wg.Add(1)
		p.mu.Unlock()
		go func() {
			defer p.wg.Done()
			p.run(task)
		}()
	}
}

// Stop closes the pool and waits for in-flight and queued tasks to finish,
// up to the context deadline.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StopWithTimeout is a convenience wrapper around Stop.
func (p *Pool) StopWithTimeout(d time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return p.Stop(ctx)
}
