package splitter

import (
	"context"
	"testing"

	"github.com/viant/splitly/fragment"
)

func TestRegistry_Lookup(t *testing.T) {
	registry := NewRegistry()

	testCases := []struct {
		name       string
		identifier string
		expectOK   bool
	}{
		{name: "Built-in strategy", identifier: "text", expectOK: true},
		{name: "Built-in strategy capitalized", identifier: "Fasta", expectOK: true},
		{name: "Unknown strategy", identifier: "foo", expectOK: false},
		{name: "Dot qualified identifier", identifier: "com.example.FastaSplitter", expectOK: false},
		{name: "Path qualified identifier", identifier: "example/fasta", expectOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := registry.Lookup(tc.identifier)
			if ok != tc.expectOK {
				t.Errorf("Expected Lookup(%q) ok=%v, got %v", tc.identifier, tc.expectOK, ok)
			}
		})
	}
}

type noopSplitter struct {
	loader
}

func (s *noopSplitter) Configure(options Options) error { return nil }

func (s *noopSplitter) Split(ctx context.Context, payload []byte, start int, emit EmitFunc) error {
	frag := fragment.New("noop", 0, payload)
	frag.Index = start
	return emit(frag)
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()
	registry.Register("Noop", func() Splitter { return &noopSplitter{} })

	factory, ok := registry.Lookup("noop")
	if !ok {
		t.Fatalf("Expected custom strategy to resolve")
	}
	splitter := factory()
	fragments := collectFragments(t, splitter, []byte("payload"), 3)
	if len(fragments) != 1 {
		t.Fatalf("Expected 1 fragment, got %d", len(fragments))
	}
	if fragments[0].Index != 3 {
		t.Errorf("Expected Index 3, got %d", fragments[0].Index)
	}

	names := registry.Names()
	found := false
	for _, name := range names {
		if name == "noop" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected Names to include noop, got %v", names)
	}
}
