package watch

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/viant/splitly/splitter"
	"github.com/viant/splitly/stream"
)

// Watcher turns filesystem change notifications into a stream of splitting
// elements. Every matching change emits the affected path as a location, so
// the source plugs straight into the streaming split and count adapters.
type Watcher struct {
	watcher *fsnotify.Watcher
	source  *stream.Stream[interface{}]
	once    sync.Once
}

// Option customizes a watcher
type Option func(*options)

type options struct {
	buffer int
	ops    fsnotify.Op
}

// WithBuffer sets the source stream buffer size
func WithBuffer(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.buffer = size
		}
	}
}

// WithOps narrows the forwarded filesystem operations
func WithOps(ops fsnotify.Op) Option {
	return func(o *options) {
		if ops != 0 {
			o.ops = ops
		}
	}
}

// New watches the supplied paths, emitting a location for every create or
// write until Close. A slow consumer holds back event delivery once the
// buffer fills.
func New(paths []string, opts ...Option) (*Watcher, error) {
	o := &options{buffer: 16, ops: fsnotify.Create | fsnotify.Write}
	for _, opt := range opts {
		opt(o)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	result := &Watcher{
		watcher: watcher,
		source:  stream.New[interface{}](stream.WithBuffer(o.buffer)),
	}
	go result.loop(o.ops)
	for _, path := range paths {
		if err = watcher.Add(path); err != nil {
			_ = result.Close()
			return nil, fmt.Errorf("failed to watch %v: %w", path, err)
		}
	}
	return result, nil
}

// loop forwards events until the underlying watcher closes, then completes
// the source stream.
func (w *Watcher) loop(ops fsnotify.Op) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				w.source.Close()
				return
			}
			if event.Op&ops == 0 {
				continue
			}
			w.source.Emit(splitter.NewLocation(event.Name))
		case _, ok := <-w.watcher.Errors:
			if !ok {
				w.source.Close()
				return
			}
		}
	}
}

// Source returns the element stream fed by filesystem changes
func (w *Watcher) Source() *stream.Stream[interface{}] {
	return w.source
}

// Close stops watching and completes the source stream. Only the first call
// takes effect.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.watcher.Close()
	})
	return err
}
