package splitter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/splitly/fragment"
)

// TextSplitter splits text content into line-count chunks
type TextSplitter struct {
	loader
	by int
}

// NewTextSplitter creates a new TextSplitter
func NewTextSplitter() *TextSplitter {
	return &TextSplitter{by: 1}
}

// Configure applies strategy options
func (s *TextSplitter) Configure(options Options) error {
	s.by = options.Int("by", s.by)
	if s.by <= 0 {
		return fmt.Errorf("invalid by option: %v", s.by)
	}
	return nil
}

// Split divides the payload into fragments of at most by lines
func (s *TextSplitter) Split(ctx context.Context, payload []byte, start int, emit EmitFunc) error {
	index := start
	for offset := 0; offset < len(payload); {
		end := offset
		for line := 0; line < s.by && end < len(payload); line++ {
			next := bytes.IndexByte(payload[end:], '\n')
			if next == -1 {
				end = len(payload)
				break
			}
			end += next + 1
		}
		frag := fragment.New("text", offset, payload[offset:end])
		frag.Index = index
		if err := emit(frag); err != nil {
			return err
		}
		index++
		offset = end
	}
	return nil
}
