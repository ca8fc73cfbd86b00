package splitter

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/structure"
)

// XLSSplitter splits legacy XLS workbooks into row-count chunks per sheet,
// repeating the header row in each fragment
type XLSSplitter struct {
	loader
	by int
}

// NewXLSSplitter creates a new XLSSplitter
func NewXLSSplitter() *XLSSplitter {
	return &XLSSplitter{by: 100}
}

// Configure applies strategy options
func (s *XLSSplitter) Configure(options Options) error {
	s.by = options.Int("by", s.by)
	if s.by <= 0 {
		return fmt.Errorf("invalid by option: %v", s.by)
	}
	return nil
}

// Split divides workbook sheets into fragments of at most by data rows
func (s *XLSSplitter) Split(ctx context.Context, payload []byte, start int, emit EmitFunc) error {
	if len(payload) == 0 {
		return nil
	}
	workbook, err := xls.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}

	index := start
	offset := 0
	for i := 0; i < workbook.GetNumberSheets(); i++ {
		sheet, err := workbook.GetSheet(i)
		if err != nil || sheet == nil {
			continue
		}
		rows := sheet.GetRows()
		if len(rows) == 0 {
			continue
		}
		header := xlsRowValues(rows[0].GetCols())
		headerLine := buildHeaderLine(sheet.GetName(), header)

		if len(rows) == 1 {
			if err := emitTableChunk(headerLine+"\n", "xls", sheet.GetName(), 1, 1, &offset, &index, emit); err != nil {
				return err
			}
			continue
		}

		for r := 1; r < len(rows); r += s.by {
			to := r + s.by
			if to > len(rows) {
				to = len(rows)
			}
			chunk := bytes.NewBuffer(nil)
			chunk.WriteString(headerLine)
			chunk.WriteByte('\n')
			for row := r; row < to; row++ {
				chunk.WriteString(buildRowLine(row+1, header, xlsRowValues(rows[row].GetCols())))
				chunk.WriteByte('\n')
			}
			if err := emitTableChunk(chunk.String(), "xls", sheet.GetName(), r+1, to, &offset, &index, emit); err != nil {
				return err
			}
		}
	}
	return nil
}

// xlsRowValues renders raw cell data into string values
func xlsRowValues(cols []structure.CellData) []string {
	out := make([]string, 0, len(cols))
	for _, col := range cols {
		value := col.GetString()
		if value == "" {
			if num := col.GetFloat64(); num != 0 {
				value = strconv.FormatFloat(num, 'f', -1, 64)
			} else if in := col.GetInt64(); in != 0 {
				value = strconv.FormatInt(in, 10)
			}
		}
		out = append(out, value)
	}
	return out
}

// buildRowLine renders a data row preceded by its 1-based row number
func buildRowLine(rowIdx int, header, row []string) string {
	maxCols := len(header)
	if len(row) > maxCols {
		maxCols = len(row)
	}
	var b strings.Builder
	b.WriteString("Row ")
	b.WriteString(strconv.Itoa(rowIdx))
	b.WriteString(": ")
	for col := 1; col <= maxCols; col++ {
		if col > 1 {
			b.WriteString("\t")
		}
		value := ""
		if col-1 < len(row) {
			value = row[col-1]
		}
		b.WriteString(value)
	}
	return b.String()
}
