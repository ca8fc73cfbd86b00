package splitly

import (
	"fmt"

	"github.com/viant/splitly/splitter"
)

// Resolve looks up a strategy by name and configures it with the supplied
// options. An unknown or qualified name is an expected outcome reported with
// ok false rather than an error; configuration failures are errors.
func (s *Service) Resolve(name string, options splitter.Options) (splitter.Splitter, bool, error) {
	factory, defaults, ok := s.lookup(name)
	if !ok {
		fmt.Printf("splitly: no such strategy: %v\n", name)
		return nil, false, nil
	}
	aSplitter, err := s.NewSplitter(factory, mergeOptions(defaults, options))
	if err != nil {
		return nil, true, err
	}
	return aSplitter, true, nil
}

// NewSplitter instantiates a strategy from an already known factory and
// configures it.
func (s *Service) NewSplitter(factory splitter.Factory, options splitter.Options) (splitter.Splitter, error) {
	aSplitter := factory()
	if err := aSplitter.Configure(options); err != nil {
		return nil, fmt.Errorf("failed to configure splitter: %w", err)
	}
	return aSplitter, nil
}

// mergeOptions overlays call options on top of profile defaults
func mergeOptions(defaults map[string]interface{}, options splitter.Options) splitter.Options {
	if len(defaults) == 0 {
		return options
	}
	result := splitter.Options{}
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range options {
		result[k] = v
	}
	return result
}
