package stream

import (
	"sync"
)

// Stream represents a push-based, ordered sequence of elements with an
// explicit completion signal. A stream is closed exactly once; an optional
// terminal error set via Fail is observable after the channel drains.
type Stream[T any] struct {
	ch     chan T
	mux    sync.RWMutex
	err    error
	once   sync.Once
	closed bool
}

// Option customizes a stream
type Option func(*options)

type options struct {
	buffer int
}

// WithBuffer sets the stream channel buffer size
func WithBuffer(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.buffer = size
		}
	}
}

// New creates a stream
func New[T any](opts ...Option) *Stream[T] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return &Stream[T]{ch: make(chan T, o.buffer)}
}

// Of creates a stream preloaded with the supplied values and already completed
func Of[T any](values ...T) *Stream[T] {
	result := New[T](WithBuffer(len(values)))
	for _, value := range values {
		result.ch <- value
	}
	result.Close()
	return result
}

// Emit publishes a value to the stream, blocking when the buffer is full.
// Emitting to a closed stream is a programming error and panics.
func (s *Stream[T]) Emit(value T) {
	s.ch <- value
}

// Close completes the stream. Only the first call takes effect; it reports
// whether this call performed the close.
func (s *Stream[T]) Close() bool {
	result := false
	s.once.Do(func() {
		s.mux.Lock()
		s.closed = true
		s.mux.Unlock()
		close(s.ch)
		result = true
	})
	return result
}

// Fail completes the stream with a terminal error. Only the first terminal
// signal takes effect; it reports whether this call performed the close.
func (s *Stream[T]) Fail(err error) bool {
	result := false
	s.once.Do(func() {
		s.mux.Lock()
		s.err = err
		s.closed = true
		s.mux.Unlock()
		close(s.ch)
		result = true
	})
	return result
}

// Closed returns true once the stream has been completed
func (s *Stream[T]) Closed() bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.closed
}

// Err returns the terminal error, if any
func (s *Stream[T]) Err() error {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.err
}

// Chan exposes the stream for consumption; the channel closes on completion
func (s *Stream[T]) Chan() <-chan T {
	return s.ch
}

// Subscribe starts a goroutine delivering elements to onNext one at a time,
// in arrival order, then calls onDone after the stream completes.
func (s *Stream[T]) Subscribe(onNext func(value T), onDone func()) {
	go func() {
		for value := range s.ch {
			if onNext != nil {
				onNext(value)
			}
		}
		if onDone != nil {
			onDone()
		}
	}()
}

// Collect drains the stream into a slice, blocking until completion
func (s *Stream[T]) Collect() ([]T, error) {
	var result []T
	for value := range s.ch {
		result = append(result, value)
	}
	return result, s.Err()
}
