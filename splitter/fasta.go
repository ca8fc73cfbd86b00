package splitter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/splitly/fragment"
)

// FastaSplitter splits FASTA content into record-count chunks
type FastaSplitter struct {
	loader
	by int
}

// NewFastaSplitter creates a new FastaSplitter
func NewFastaSplitter() *FastaSplitter {
	return &FastaSplitter{by: 1}
}

// Configure applies strategy options
func (s *FastaSplitter) Configure(options Options) error {
	s.by = options.Int("by", s.by)
	if s.by <= 0 {
		return fmt.Errorf("invalid by option: %v", s.by)
	}
	return nil
}

// Split divides the payload into fragments of at most by sequence records
func (s *FastaSplitter) Split(ctx context.Context, payload []byte, start int, emit EmitFunc) error {
	if len(payload) == 0 {
		return nil
	}
	boundaries := fastaBoundaries(payload)
	if len(boundaries) == 0 {
		return fmt.Errorf("invalid fasta content: no sequence record found")
	}

	index := start
	for i := 0; i < len(boundaries); i += s.by {
		from := boundaries[i]
		to := len(payload)
		if i+s.by < len(boundaries) {
			to = boundaries[i+s.by]
		}
		frag := fragment.New("fasta", from, payload[from:to])
		frag.Index = index
		frag.Meta = map[string]string{"id": fastaID(payload[from:to])}
		if err := emit(frag); err != nil {
			return err
		}
		index++
	}
	return nil
}

// fastaBoundaries returns offsets of record markers found at line starts
func fastaBoundaries(payload []byte) []int {
	var boundaries []int
	if payload[0] == '>' {
		boundaries = append(boundaries, 0)
	}
	for i := 0; i < len(payload)-1; i++ {
		if payload[i] == '\n' && payload[i+1] == '>' {
			boundaries = append(boundaries, i+1)
		}
	}
	return boundaries
}

// fastaID extracts the identifier of the first record in a chunk
func fastaID(chunk []byte) string {
	line := chunk
	if end := bytes.IndexByte(chunk, '\n'); end != -1 {
		line = chunk[:end]
	}
	line = bytes.TrimPrefix(line, []byte{'>'})
	if end := bytes.IndexAny(line, " \t\r"); end != -1 {
		line = line[:end]
	}
	return string(line)
}
