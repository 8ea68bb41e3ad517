// Package task runs a computation once in the background and lets any number
// of readers wait for its result.
package task

import "sync"

// Gate is a one-shot completion signal. It starts closed, is released exactly
// once and is never re-armed.
type Gate struct {
	once sync.Once
	ch   chan struct{}
}

// NewGate returns an unreleased gate.
func NewGate() *Gate {
	return &Gate{ch: make(chan struct{})}
}

// Release opens the gate. Calls after the first are no-ops.
func (g *Gate) Release() {
	g.once.Do(func() { close(g.ch) })
}

// Wait blocks until the gate is released.
func (g *Gate) Wait() {
	<-g.ch
}

// Done returns a channel closed on release, for use in select.
func (g *Gate) Done() <-chan struct{} {
	return g.ch
}

// Released reports whether Release has been called.
func (g *Gate) Released() bool {
	select {
	case <-g.ch:
		return true
	default:
		return false
	}
}

// Future holds the result of a function run at most once on its own
// goroutine. There is no retry and no cancellation.
type Future[T any] struct {
	start sync.Once
	gate  *Gate
	fn    func() T
	value T

	panicked any
}

// New prepares fn to run on the first Start or Get.
func New[T any](fn func() T) *Future[T] {
	return &Future[T]{gate: NewGate(), fn: fn}
}

// Spawn is New followed by Start.
func Spawn[T any](fn func() T) *Future[T] {
	f := New(fn)
	f.Start()
	return f
}

// Start launches the background goroutine if it has not been launched yet.
func (f *Future[T]) Start() {
	f.start.Do(func() {
		go func() {
			defer f.gate.Release()
			defer func() {
				if r := recover(); r != nil {
					f.panicked = r
				}
			}()
			f.value = f.fn()
		}()
	})
}

// Get starts the task if needed and blocks until it completes. A panicking
// task releases waiters with the zero value.
func (f *Future[T]) Get() T {
	f.Start()
	f.gate.Wait()
	return f.value
}

// Panicked returns the value the task panicked with, or nil. Only valid
// once the task is ready.
func (f *Future[T]) Panicked() any {
	return f.panicked
}

// Ready reports whether the task has completed.
func (f *Future[T]) Ready() bool {
	return f.gate.Released()
}
