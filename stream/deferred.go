package stream

import (
	"context"
	"sync"
)

// Deferred represents a single value resolved at a later time. A deferred is
// settled exactly once; later Resolve or Reject calls are ignored.
type Deferred[T any] struct {
	mux   sync.RWMutex
	value T
	err   error
	once  sync.Once
	done  chan struct{}
}

// NewDeferred creates an unresolved deferred value
func NewDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

// Resolve settles the deferred with a value. Only the first settlement takes
// effect; it reports whether this call settled the deferred.
func (d *Deferred[T]) Resolve(value T) bool {
	result := false
	d.once.Do(func() {
		d.mux.Lock()
		d.value = value
		d.mux.Unlock()
		close(d.done)
		result = true
	})
	return result
}

// Reject settles the deferred with an error. Only the first settlement takes
// effect; it reports whether this call settled the deferred.
func (d *Deferred[T]) Reject(err error) bool {
	result := false
	d.once.Do(func() {
		d.mux.Lock()
		d.err = err
		d.mux.Unlock()
		close(d.done)
		result = true
	})
	return result
}

// Done returns a channel closed once the deferred settles
func (d *Deferred[T]) Done() <-chan struct{} {
	return d.done
}

// Settled returns the outcome without blocking; ok is false while unsettled
func (d *Deferred[T]) Settled() (value T, err error, ok bool) {
	select {
	case <-d.done:
		d.mux.RLock()
		defer d.mux.RUnlock()
		return d.value, d.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

// Wait blocks until the deferred settles or the context ends
func (d *Deferred[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		d.mux.RLock()
		defer d.mux.RUnlock()
		return d.value, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
