package splitter

import (
	"context"

	"github.com/viant/splitly/fragment"
)

// EmitFunc receives fragments as a strategy produces them
type EmitFunc func(fragment *fragment.Fragment) error

// Splitter defines the interface for content splitting strategies
type Splitter interface {
	// Configure applies strategy options
	Configure(options Options) error

	// Normalize converts an inbound element into the strategy payload
	Normalize(ctx context.Context, element interface{}) ([]byte, error)

	// Split divides the payload into fragments, emitting them in order with
	// fragment indexes starting at start
	Split(ctx context.Context, payload []byte, start int, emit EmitFunc) error
}

// Factory creates a splitting strategy
type Factory func() Splitter
