package splitter

import (
	"testing"

	"github.com/viant/splitly/fragment"
)

func TestSizeSplitter_Split(t *testing.T) {
	splitter := configure(t, NewSizeSplitter(), Options{"by": 4})
	fragments := collectFragments(t, splitter, []byte("0123456789"), 0)
	if len(fragments) != 3 {
		t.Fatalf("Expected 3 fragments, got %d", len(fragments))
	}
	if fragments[0].Text() != "0123" || fragments[2].Text() != "89" {
		t.Errorf("Unexpected chunking: %q, %q", fragments[0].Text(), fragments[2].Text())
	}
	for i, frag := range fragments {
		if frag.Kind != "binary" {
			t.Errorf("Fragment %d: expected Kind 'binary', got %s", i, frag.Kind)
		}
		if frag.Index != i {
			t.Errorf("Fragment %d: expected Index %d, got %d", i, i, frag.Index)
		}
	}
}

func TestSplitBySize_NewlinePreference(t *testing.T) {
	payload := []byte("line one\nline two\nline three\n")
	index := 0
	var ends []int
	err := splitBySize(payload, 0, len(payload), 12, "text", &index, func(f *fragment.Fragment) error {
		ends = append(ends, f.End)
		return nil
	})
	if err != nil {
		t.Fatalf("splitBySize failed: %v", err)
	}
	if len(ends) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(ends))
	}
	if ends[0] != 9 {
		t.Errorf("Expected first chunk to end after a newline at 9, got %d", ends[0])
	}
	if index != 3 {
		t.Errorf("Expected running index to advance to 3, got %d", index)
	}
}
