package splitter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/splitly/fragment"
)

// MarkdownSplitter splits markdown content into heading-bounded sections,
// capping each fragment at by bytes
type MarkdownSplitter struct {
	loader
	by int
}

// NewMarkdownSplitter creates a new MarkdownSplitter
func NewMarkdownSplitter() *MarkdownSplitter {
	return &MarkdownSplitter{by: 4096}
}

// Configure applies strategy options
func (s *MarkdownSplitter) Configure(options Options) error {
	s.by = options.Int("by", s.by)
	if s.by <= 0 {
		return fmt.Errorf("invalid by option: %v", s.by)
	}
	return nil
}

// Split divides the payload along heading boundaries, falling back to size
// cuts for oversized sections
func (s *MarkdownSplitter) Split(ctx context.Context, payload []byte, start int, emit EmitFunc) error {
	if len(payload) == 0 {
		return nil
	}
	index := start
	// Small content stays as a single fragment
	if len(payload) <= s.by {
		frag := fragment.New("markdown", 0, payload)
		frag.Index = index
		return emit(frag)
	}

	boundaries := headingBoundaries(payload)
	boundaries = append(boundaries, len(payload))

	from := 0
	for _, boundary := range boundaries {
		if boundary <= from {
			continue
		}
		if boundary-from > s.by {
			if err := splitBySize(payload, from, boundary, s.by, "markdown", &index, emit); err != nil {
				return err
			}
		} else {
			frag := fragment.New("markdown", from, payload[from:boundary])
			frag.Index = index
			if err := emit(frag); err != nil {
				return err
			}
			index++
		}
		from = boundary
	}
	return nil
}

// headingBoundaries returns offsets where a heading opens a new section
func headingBoundaries(payload []byte) []int {
	var boundaries []int
	lines := bytes.Split(payload, []byte{'\n'})
	offset := 0
	prevLen := -1
	for _, line := range lines {
		if offset > 0 {
			if isATXHeading(line) {
				boundaries = append(boundaries, offset)
			} else if prevLen > 0 && isSetextUnderline(line) {
				// The section starts at the heading text on the previous line
				if cut := offset - prevLen - 1; cut > 0 {
					boundaries = append(boundaries, cut)
				}
			}
		}
		prevLen = len(line)
		offset += len(line) + 1
	}
	return boundaries
}

// isATXHeading checks for a # style heading
func isATXHeading(line []byte) bool {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return false
	}
	return level == len(line) || line[level] == ' '
}

// isSetextUnderline checks for a === or --- heading underline
func isSetextUnderline(line []byte) bool {
	trimmed := bytes.TrimRight(line, " \t\r")
	if len(trimmed) < 3 {
		return false
	}
	marker := trimmed[0]
	if marker != '=' && marker != '-' {
		return false
	}
	for _, b := range trimmed {
		if b != marker {
			return false
		}
	}
	return true
}
