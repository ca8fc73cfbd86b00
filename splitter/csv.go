package splitter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/viant/splitly/fragment"
)

// CsvSplitter splits CSV content into record-count chunks, optionally
// repeating the header row in each fragment
type CsvSplitter struct {
	loader
	by     int
	sep    string
	header bool
}

// NewCsvSplitter creates a new CsvSplitter
func NewCsvSplitter() *CsvSplitter {
	return &CsvSplitter{by: 1, sep: ","}
}

// Configure applies strategy options
func (s *CsvSplitter) Configure(options Options) error {
	s.by = options.Int("by", s.by)
	if s.by <= 0 {
		return fmt.Errorf("invalid by option: %v", s.by)
	}
	s.sep = options.String("sep", s.sep)
	if len(s.sep) != 1 {
		return fmt.Errorf("invalid sep option: %q", s.sep)
	}
	s.header = options.Bool("header", s.header)
	return nil
}

// Split divides the payload into fragments of at most by records
func (s *CsvSplitter) Split(ctx context.Context, payload []byte, start int, emit EmitFunc) error {
	if len(payload) == 0 {
		return nil
	}
	reader := csv.NewReader(bytes.NewReader(payload))
	reader.Comma = rune(s.sep[0])
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse csv: %w", err)
	}

	var header []string
	if s.header && len(records) > 0 {
		header = records[0]
		records = records[1:]
	}

	index := start
	var full bytes.Buffer
	for i := 0; i < len(records); i += s.by {
		to := i + s.by
		if to > len(records) {
			to = len(records)
		}
		chunk := bytes.NewBuffer(nil)
		writer := csv.NewWriter(chunk)
		writer.Comma = reader.Comma
		if header != nil {
			if err := writer.Write(header); err != nil {
				return fmt.Errorf("failed to write csv header: %w", err)
			}
		}
		if err := writer.WriteAll(records[i:to]); err != nil {
			return fmt.Errorf("failed to write csv records: %w", err)
		}

		offset := full.Len()
		full.Write(chunk.Bytes())
		frag := fragment.New("csv", offset, chunk.Bytes())
		frag.Index = index
		recordStart := i + 1
		if s.header {
			recordStart++
		}
		frag.Meta = map[string]string{
			"start_row": strconv.Itoa(recordStart),
			"end_row":   strconv.Itoa(recordStart + (to - i) - 1),
		}
		if err := emit(frag); err != nil {
			return err
		}
		index++
	}
	return nil
}
