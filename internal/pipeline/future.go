package pipeline

import "sync"

// Future is a value that settles exactly once with either a result or an
// error. Dependent work is registered as a callback and scheduled on the
// worker pool when the future settles, so waiting on an upstream stage never
// occupies a worker slot.
type Future[T any] struct {
	mu        sync.Mutex
	settled   bool
	value     T
	err       error
	callbacks []func(T, error)
	done      chan struct{}
}

// NewFuture returns an unsettled future, completed later via Complete.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{
		done: make(chan struct{}),
	}
}

// Complete settles the future. The first call wins; later calls are ignored,
// which is how a timed-out pipeline discards a stage's late result. It
// reports whether this call settled the future.
func (f *Future[T]) Complete(value T, err error) bool {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return false
	}
	f.settled = true
	f.value = value
	f.err = err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb(value, err)
	}
	return true
}

// Done is closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future settles.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// onSettled registers cb, invoking it immediately if already settled.
func (f *Future[T]) onSettled(cb func(T, error)) {
	f.mu.Lock()
	if !f.settled {
		f.callbacks = append(f.callbacks, cb)
		f.mu.Unlock()
		return
	}
	value, err := f.value, f.err
	f.mu.Unlock()
	cb(value, err)
}

// SubmitTask runs fn on the pool and exposes its outcome as a future. If the
// pool is already closed the future settles with the submission error.
func SubmitTask[T any](pool *WorkerPool, fn func() (T, error)) *Future[T] {
	f := NewFuture[T]()
	if err := pool.Submit(func() {
		f.Complete(fn())
	}); err != nil {
		var zero T
		f.Complete(zero, err)
	}
	return f
}

// Then schedules fn on the pool once parent settles successfully. A parent
// error short-circuits: fn is never scheduled and the error propagates.
func Then[A, B any](pool *WorkerPool, parent *Future[A], fn func(A) (B, error)) *Future[B] {
	f := NewFuture[B]()
	parent.onSettled(func(value A, err error) {
		var zero B
		if err != nil {
			f.Complete(zero, err)
			return
		}
		if submitErr := pool.Submit(func() {
			f.Complete(fn(value))
		}); submitErr != nil {
			f.Complete(zero, submitErr)
		}
	})
	return f
}

// Combine joins two futures: fn runs on the pool once both have settled
// successfully. The first error to arrive propagates instead.
func Combine[A, B, C any](pool *WorkerPool, fa *Future[A], fb *Future[B], fn func(A, B) (C, error)) *Future[C] {
	f := NewFuture[C]()
	fa.onSettled(func(a A, errA error) {
		var zero C
		if errA != nil {
			f.Complete(zero, errA)
			return
		}
		fb.onSettled(func(b B, errB error) {
			if errB != nil {
				f.Complete(zero, errB)
				return
			}
			if submitErr := pool.Submit(func() {
				f.Complete(fn(a, b))
			}); submitErr != nil {
				f.Complete(zero, submitErr)
			}
		})
	})
	return f
}
