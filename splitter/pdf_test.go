package splitter

import (
	"strings"
	"testing"
)

func TestPDFSplitter_PrintableFallback(t *testing.T) {
	data := []byte("%PDF-1.4\nHello\nWorld\n%%EOF")
	splitter := configure(t, NewPDFSplitter(), Options{})
	fragments := collectFragments(t, splitter, data, 0)
	if len(fragments) != 1 {
		t.Fatalf("Expected 1 fragment, got %d", len(fragments))
	}
	if fragments[0].Kind != "pdf" {
		t.Errorf("Expected Kind 'pdf', got %s", fragments[0].Kind)
	}
	if !strings.Contains(fragments[0].Text(), "Hello") {
		t.Errorf("Expected printable text, got %q", fragments[0].Text())
	}
}

func TestPDFSplitter_EmptyPayload(t *testing.T) {
	splitter := configure(t, NewPDFSplitter(), Options{})
	fragments := collectFragments(t, splitter, nil, 0)
	if len(fragments) != 0 {
		t.Fatalf("Expected no fragments, got %d", len(fragments))
	}
}
