package splitter

import (
	"context"
	"testing"

	"github.com/viant/splitly/fragment"
)

func collectFragments(t *testing.T, s Splitter, payload []byte, start int) fragment.Fragments {
	t.Helper()
	var result fragment.Fragments
	err := s.Split(context.Background(), payload, start, func(f *fragment.Fragment) error {
		result = append(result, f)
		return nil
	})
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	return result
}

func configure(t *testing.T, s Splitter, options Options) Splitter {
	t.Helper()
	if err := s.Configure(options); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	return s
}
