package splitly

import (
	"fmt"

	"github.com/viant/splitly/fragment"
	"github.com/viant/splitly/splitter"
	"github.com/viant/splitly/stream"
)

// EachFunc observes each fragment as it is produced
type EachFunc func(fragment *fragment.Fragment)

// Arguments holds the normalized trailing arguments of a split or count call
type Arguments struct {
	// Options passes through to the strategy, stripped of adapter keys
	Options splitter.Options
	// Each is invoked for every produced fragment
	Each EachFunc
	// Into redirects fragments to a caller supplied sink
	Into *stream.Stream[*fragment.Fragment]
	// AutoClose controls whether Into is closed on completion, default true
	AutoClose *bool
}

// NormalizeArgs validates up to two trailing arguments, an options map and a
// per fragment callback in that order. The keys each, into and autoClose are
// lifted out of the map into dedicated fields; when both an each option and a
// callback argument are present the callback wins.
func NormalizeArgs(args ...interface{}) (*Arguments, error) {
	result := &Arguments{Options: splitter.Options{}}
	switch len(args) {
	case 0:
	case 1:
		if options, err := asOptions(args[0]); err == nil {
			if err = result.applyOptions(options); err != nil {
				return nil, err
			}
		} else if each, eachErr := asEach(args[0]); eachErr == nil {
			result.Each = each
		} else {
			return nil, fmt.Errorf("%w: unsupported argument type %T", ErrInvalidArguments, args[0])
		}
	case 2:
		options, err := asOptions(args[0])
		if err != nil {
			return nil, err
		}
		if err = result.applyOptions(options); err != nil {
			return nil, err
		}
		each, err := asEach(args[1])
		if err != nil {
			return nil, err
		}
		result.Each = each
	default:
		return nil, fmt.Errorf("%w: expected at most 2 arguments, got %d", ErrInvalidArguments, len(args))
	}
	return result, nil
}

func (a *Arguments) applyOptions(options splitter.Options) error {
	for k, v := range options {
		switch k {
		case "each":
			each, err := asEach(v)
			if err != nil {
				return err
			}
			a.Each = each
		case "into":
			sink, ok := v.(*stream.Stream[*fragment.Fragment])
			if !ok {
				return fmt.Errorf("%w: into has to be a fragment stream, got %T", ErrInvalidArguments, v)
			}
			a.Into = sink
		case "autoClose":
			flag, ok := v.(bool)
			if !ok {
				return fmt.Errorf("%w: autoClose has to be a bool, got %T", ErrInvalidArguments, v)
			}
			a.AutoClose = &flag
		default:
			a.Options[k] = v
		}
	}
	return nil
}

func asOptions(value interface{}) (splitter.Options, error) {
	switch actual := value.(type) {
	case splitter.Options:
		return actual, nil
	case map[string]interface{}:
		return actual, nil
	}
	return nil, fmt.Errorf("%w: expected options map, got %T", ErrInvalidArguments, value)
}

func asEach(value interface{}) (EachFunc, error) {
	switch actual := value.(type) {
	case EachFunc:
		return actual, nil
	case func(*fragment.Fragment):
		return actual, nil
	}
	return nil, fmt.Errorf("%w: expected fragment callback, got %T", ErrInvalidArguments, value)
}
