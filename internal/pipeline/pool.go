package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrPoolClosed is returned by Submit after Shutdown has been called.
	ErrPoolClosed = errors.New("worker pool closed")

	// ErrShutdownTimeout is returned by Shutdown when queued work did not
	// drain within the grace period and had to be interrupted.
	ErrShutdownTimeout = errors.New("worker pool shutdown timed out")
)

// WorkerPool runs submitted tasks on a fixed number of workers. The queue is
// unbounded: excess submissions wait in line instead of failing. The pool's
// context is cancelled when a shutdown is forced, which unblocks stages
// sitting in their simulated latency waits.
type WorkerPool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool

	workers sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewWorkerPool(size int) *WorkerPool {
	if size <= 0 {
		size = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &WorkerPool{
		ctx:    ctx,
		cancel: cancel,
	}
	p.cond = sync.NewCond(&p.mu)

	p.workers.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}

	return p
}

func (p *WorkerPool) worker() {
	defer p.workers.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		task()
	}
}

// Submit queues a task for execution.
func (p *WorkerPool) Submit(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	p.queue = append(p.queue, task)
	p.cond.Signal()
	return nil
}

// Context is cancelled when the pool is forcibly terminated.
func (p *WorkerPool) Context() context.Context {
	return p.ctx
}

// Shutdown stops intake and waits up to grace for queued work to drain. If
// the grace period elapses first, the pool context is cancelled to interrupt
// in-flight waits and Shutdown reports ErrShutdownTimeout after the workers
// exit.
func (p *WorkerPool) Shutdown(grace time.Duration) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.workers.Wait()
		close(done)
	}()

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-timer.C:
		p.cancel()
		<-done
		return ErrShutdownTimeout
	}
}
