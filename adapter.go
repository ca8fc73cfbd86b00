package splitly

import (
	"context"
	"fmt"

	"github.com/viant/splitly/fragment"
	"github.com/viant/splitly/stream"
)

// Split subscribes to the source and returns a fragment stream fed by
// splitting each element with the named strategy. The sink is returned
// immediately and receives exactly one terminal signal, a close after the
// source completes or a failure on the first element error. Fragment indexes
// run monotonically across all elements. When the caller supplies an into
// sink it is used in place of a fresh one, the adapter still owns its
// completion.
func (s *Service) Split(ctx context.Context, source *stream.Stream[interface{}], name string, args ...interface{}) (*stream.Stream[*fragment.Fragment], error) {
	arguments, err := NormalizeArgs(args...)
	if err != nil {
		return nil, err
	}
	aSplitter, found, err := s.Resolve(name, arguments.Options)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, name)
	}
	sink := arguments.Into
	if sink == nil {
		sink = stream.New[*fragment.Fragment](stream.WithBuffer(s.buffer))
	}
	index := 0
	failed := false
	source.Subscribe(func(element interface{}) {
		if failed {
			return
		}
		payload, err := aSplitter.Normalize(ctx, element)
		if err != nil {
			failed = true
			sink.Fail(fmt.Errorf("failed to normalize element: %w", err))
			return
		}
		err = aSplitter.Split(ctx, payload, index, func(aFragment *fragment.Fragment) error {
			index++
			if arguments.Each != nil {
				arguments.Each(aFragment)
			}
			sink.Emit(aFragment)
			return nil
		})
		if err != nil {
			failed = true
			sink.Fail(fmt.Errorf("failed to split element: %w", err))
		}
	}, func() {
		sink.Close()
	})
	return sink, nil
}

// Count subscribes to the source and returns a deferred total of fragments
// produced by splitting each element with the named strategy. Counting works
// by injecting a tallying hook in place of the caller callback, so each
// element is split from index zero and no fragments are retained. The
// deferred settles exactly once, with the total after the source completes or
// with the first element error.
func (s *Service) Count(ctx context.Context, source *stream.Stream[interface{}], name string, args ...interface{}) (*stream.Deferred[int64], error) {
	arguments, err := NormalizeArgs(args...)
	if err != nil {
		return nil, err
	}
	aSplitter, found, err := s.Resolve(name, arguments.Options)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, name)
	}
	deferred := stream.NewDeferred[int64]()
	var count int64
	failed := false
	source.Subscribe(func(element interface{}) {
		if failed {
			return
		}
		payload, err := aSplitter.Normalize(ctx, element)
		if err != nil {
			failed = true
			deferred.Reject(fmt.Errorf("failed to normalize element: %w", err))
			return
		}
		err = aSplitter.Split(ctx, payload, 0, func(aFragment *fragment.Fragment) error {
			count++
			return nil
		})
		if err != nil {
			failed = true
			deferred.Reject(fmt.Errorf("failed to split element: %w", err))
		}
	}, func() {
		deferred.Resolve(count)
	})
	return deferred, nil
}

// SplitValue splits a single in-memory element, returning its fragments. With
// an into sink the fragments are forwarded as they are produced and the sink
// is closed on completion unless autoClose is false.
func (s *Service) SplitValue(ctx context.Context, element interface{}, name string, args ...interface{}) (fragment.Fragments, error) {
	arguments, err := NormalizeArgs(args...)
	if err != nil {
		return nil, err
	}
	aSplitter, found, err := s.Resolve(name, arguments.Options)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, name)
	}
	autoClose := arguments.AutoClose == nil || *arguments.AutoClose
	payload, err := aSplitter.Normalize(ctx, element)
	if err != nil {
		err = fmt.Errorf("failed to normalize element: %w", err)
		if arguments.Into != nil && autoClose {
			arguments.Into.Fail(err)
		}
		return nil, err
	}
	var result fragment.Fragments
	err = aSplitter.Split(ctx, payload, 0, func(aFragment *fragment.Fragment) error {
		if arguments.Each != nil {
			arguments.Each(aFragment)
		}
		if arguments.Into != nil {
			arguments.Into.Emit(aFragment)
		}
		result = append(result, aFragment)
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed to split element: %w", err)
		if arguments.Into != nil && autoClose {
			arguments.Into.Fail(err)
		}
		return nil, err
	}
	if arguments.Into != nil && autoClose {
		arguments.Into.Close()
	}
	return result, nil
}

// CountValue splits a single in-memory element, returning only the fragment
// total.
func (s *Service) CountValue(ctx context.Context, element interface{}, name string, args ...interface{}) (int64, error) {
	arguments, err := NormalizeArgs(args...)
	if err != nil {
		return 0, err
	}
	aSplitter, found, err := s.Resolve(name, arguments.Options)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: %v", ErrUnknownStrategy, name)
	}
	payload, err := aSplitter.Normalize(ctx, element)
	if err != nil {
		return 0, fmt.Errorf("failed to normalize element: %w", err)
	}
	var count int64
	if err = aSplitter.Split(ctx, payload, 0, func(aFragment *fragment.Fragment) error {
		count++
		return nil
	}); err != nil {
		return 0, fmt.Errorf("failed to split element: %w", err)
	}
	return count, nil
}
