package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/viant/splitly"
)

func TestHandler_Split(t *testing.T) {
	h := &Handler{service: splitly.New()}

	out, err := h.split(context.Background(), &SplitInput{
		Content:  "a\nb\nc\nd\n",
		Strategy: "text",
		Options:  map[string]interface{}{"by": 2},
		WithText: true,
	})
	if err != nil {
		t.Fatalf("failed to split: %v", err)
	}
	if out.Count != 2 {
		t.Errorf("expected count 2, got %v", out.Count)
	}
	if len(out.Fragments) != 2 {
		t.Fatalf("expected 2 fragments, got %v", len(out.Fragments))
	}
	if out.Fragments[0].Text != "a\nb\n" {
		t.Errorf("expected a b lines, got %q", out.Fragments[0].Text)
	}
	if out.Truncated {
		t.Errorf("expected full listing")
	}
}

func TestHandler_Split_MaxFragments(t *testing.T) {
	h := &Handler{service: splitly.New()}

	out, err := h.split(context.Background(), &SplitInput{
		Content:      "a\nb\nc\n",
		Strategy:     "text",
		MaxFragments: 1,
	})
	if err != nil {
		t.Fatalf("failed to split: %v", err)
	}
	if out.Count != 3 {
		t.Errorf("expected count 3, got %v", out.Count)
	}
	if len(out.Fragments) != 1 {
		t.Errorf("expected 1 listed fragment, got %v", len(out.Fragments))
	}
	if !out.Truncated {
		t.Errorf("expected truncated listing")
	}
	if out.Fragments[0].Text != "" {
		t.Errorf("expected text omitted, got %q", out.Fragments[0].Text)
	}
}

func TestHandler_Split_Location(t *testing.T) {
	h := &Handler{service: splitly.New()}
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("x\ny\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	out, err := h.split(context.Background(), &SplitInput{Location: path, Strategy: "text"})
	if err != nil {
		t.Fatalf("failed to split: %v", err)
	}
	if out.Count != 2 {
		t.Errorf("expected count 2, got %v", out.Count)
	}
}

func TestHandler_Split_Validation(t *testing.T) {
	h := &Handler{service: splitly.New()}
	if _, err := h.split(context.Background(), &SplitInput{Content: "x"}); err == nil {
		t.Errorf("expected missing strategy error")
	}
	if _, err := h.split(context.Background(), &SplitInput{Strategy: "text"}); err == nil {
		t.Errorf("expected missing content error")
	}
	if _, err := h.split(context.Background(), &SplitInput{Content: "x", Strategy: "turtle"}); err == nil {
		t.Errorf("expected unknown strategy error")
	}
}

func TestHandler_Count(t *testing.T) {
	h := &Handler{service: splitly.New()}

	out, err := h.count(context.Background(), &CountInput{
		Content:  "a\nb\nc\n",
		Strategy: "text",
	})
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if out.Count != 3 {
		t.Errorf("expected count 3, got %v", out.Count)
	}
}

func TestHandler_Strategies(t *testing.T) {
	h := &Handler{service: splitly.New()}

	out, err := h.strategies(context.Background(), &StrategiesInput{})
	if err != nil {
		t.Fatalf("failed to list strategies: %v", err)
	}
	if len(out.Strategies) < 9 {
		t.Errorf("expected at least 9 strategies, got %v", out.Strategies)
	}
	seen := map[string]bool{}
	for _, name := range out.Strategies {
		seen[name] = true
	}
	for _, name := range []string{"text", "csv", "fasta", "pdf"} {
		if !seen[name] {
			t.Errorf("expected strategy %v registered", name)
		}
	}
}
