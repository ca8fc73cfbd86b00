package splitter

import (
	"context"
	"fmt"

	"github.com/viant/splitly/fragment"
)

// SizeSplitter splits content purely by size into fixed byte chunks
type SizeSplitter struct {
	loader
	by int
}

// NewSizeSplitter creates a new SizeSplitter
func NewSizeSplitter() *SizeSplitter {
	return &SizeSplitter{by: 4096}
}

// Configure applies strategy options
func (s *SizeSplitter) Configure(options Options) error {
	s.by = options.Int("by", s.by)
	if s.by <= 0 {
		return fmt.Errorf("invalid by option: %v", s.by)
	}
	return nil
}

// Split divides the payload into size-bound fragments
func (s *SizeSplitter) Split(ctx context.Context, payload []byte, start int, emit EmitFunc) error {
	index := start
	for offset := 0; offset < len(payload); {
		end := offset + s.by
		if end > len(payload) {
			end = len(payload)
		}
		frag := fragment.New("binary", offset, payload[offset:end])
		frag.Index = index
		if err := emit(frag); err != nil {
			return err
		}
		index++
		offset = end
	}
	return nil
}

// splitBySize emits size-capped fragments over payload[from:to], breaking at
// newlines when one falls within the second half of the chunk
func splitBySize(payload []byte, from, to, limit int, kind string, index *int, emit EmitFunc) error {
	for offset := from; offset < to; {
		end := offset + limit
		if end > to {
			end = to
		}
		if end < to {
			for j := end; j > offset+limit/2; j-- {
				if payload[j-1] == '\n' {
					end = j
					break
				}
			}
		}
		frag := fragment.New(kind, offset, payload[offset:end])
		frag.Index = *index
		if err := emit(frag); err != nil {
			return err
		}
		*index++
		offset = end
	}
	return nil
}
