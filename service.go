package splitly

import (
	"strings"

	"github.com/viant/splitly/splitter"
)

// Service resolves splitting strategies by name and adapts them to in-memory
// values and streams.
type Service struct {
	registry *splitter.Registry
	profiles map[string]ProfileConfig
	buffer   int
}

// Option customizes the service
type Option func(*Service)

// WithRegistry overrides the strategy registry
func WithRegistry(registry *splitter.Registry) Option {
	return func(s *Service) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithBuffer sets the fragment sink buffer size
func WithBuffer(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.buffer = size
		}
	}
}

// WithConfig applies configuration defaults and strategy profiles
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config == nil {
			return
		}
		if config.Buffer > 0 {
			s.buffer = config.Buffer
		}
		for name, profile := range config.Profiles {
			if s.profiles == nil {
				s.profiles = map[string]ProfileConfig{}
			}
			s.profiles[strings.ToLower(name)] = profile
		}
	}
}

// New creates a service with the built-in strategy registry
func New(options ...Option) *Service {
	result := &Service{registry: splitter.NewRegistry()}
	for _, option := range options {
		option(result)
	}
	return result
}

// Registry returns the strategy registry
func (s *Service) Registry() *splitter.Registry {
	return s.registry
}

// lookup resolves a strategy or profile name to a factory and base options.
// A profile resolves to its underlying strategy with the profile options as
// defaults.
func (s *Service) lookup(name string) (splitter.Factory, splitter.Options, bool) {
	if profile, ok := s.profiles[strings.ToLower(name)]; ok {
		if factory, found := s.registry.Lookup(profile.Strategy); found {
			return factory, profile.Options, true
		}
	}
	factory, ok := s.registry.Lookup(name)
	return factory, nil, ok
}
