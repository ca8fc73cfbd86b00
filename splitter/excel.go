package splitter

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/splitly/fragment"
	"github.com/xuri/excelize/v2"
)

// ExcelSplitter splits XLSX workbooks into row-count chunks per sheet,
// repeating the header row in each fragment
type ExcelSplitter struct {
	loader
	by int
}

// NewExcelSplitter creates a new ExcelSplitter
func NewExcelSplitter() *ExcelSplitter {
	return &ExcelSplitter{by: 100}
}

// Configure applies strategy options
func (s *ExcelSplitter) Configure(options Options) error {
	s.by = options.Int("by", s.by)
	if s.by <= 0 {
		return fmt.Errorf("invalid by option: %v", s.by)
	}
	return nil
}

// Split divides workbook sheets into fragments of at most by data rows
func (s *ExcelSplitter) Split(ctx context.Context, payload []byte, start int, emit EmitFunc) error {
	if len(payload) == 0 {
		return nil
	}
	workbook, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = workbook.Close() }()

	index := start
	offset := 0
	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		header := rows[0]
		headerLine := buildHeaderLine(sheet, header)

		if len(rows) == 1 {
			if err := emitTableChunk(headerLine+"\n", "excel", sheet, 1, 1, &offset, &index, emit); err != nil {
				return err
			}
			continue
		}

		for i := 1; i < len(rows); i += s.by {
			to := i + s.by
			if to > len(rows) {
				to = len(rows)
			}
			chunk := bytes.NewBuffer(nil)
			chunk.WriteString(headerLine)
			chunk.WriteByte('\n')
			for r := i; r < to; r++ {
				rowIdx := r + 1 // sheet rows are 1-based
				chunk.WriteString(buildExcelRowLine(workbook, sheet, rowIdx, header, rows[r]))
				chunk.WriteByte('\n')
			}
			if err := emitTableChunk(chunk.String(), "excel", sheet, i+1, to, &offset, &index, emit); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildHeaderLine renders a sheet header for repetition in each fragment
func buildHeaderLine(sheet string, header []string) string {
	var b strings.Builder
	b.WriteString("Sheet: ")
	b.WriteString(sheet)
	b.WriteString("\nHeader: ")
	for i, h := range header {
		if i > 0 {
			b.WriteString("\t")
		}
		b.WriteString(h)
	}
	return b.String()
}

// buildExcelRowLine renders a data row, annotating cells backed by formulas
func buildExcelRowLine(workbook *excelize.File, sheet string, rowIdx int, header, row []string) string {
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
		cellRef, _ := excelize.CoordinatesToCellName(col, rowIdx)
		formula, _ := workbook.GetCellFormula(sheet, cellRef)
		switch {
		case formula != "" && value != "":
			b.WriteString(value)
			b.WriteString(" (f=")
			b.WriteString(formula)
			b.WriteString(")")
		case formula != "":
			b.WriteString("f=")
			b.WriteString(formula)
		default:
			b.WriteString(value)
		}
	}
	return b.String()
}

// emitTableChunk emits a rendered sheet chunk as a fragment
func emitTableChunk(content, kind, sheet string, rowStart, rowEnd int, offset, index *int, emit EmitFunc) error {
	frag := fragment.New(kind, *offset, []byte(content))
	frag.Index = *index
	frag.Name = sheet
	frag.Meta = map[string]string{
		"sheet":     sheet,
		"start_row": strconv.Itoa(rowStart),
		"end_row":   strconv.Itoa(rowEnd),
	}
	if err := emit(frag); err != nil {
		return err
	}
	*offset += len(content)
	*index++
	return nil
}
