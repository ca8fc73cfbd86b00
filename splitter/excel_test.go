package splitter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExcelSplitter_Split(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"col1", "col2"}); err != nil {
		t.Fatalf("set header: %v", err)
	}
	for i := 2; i <= 8; i++ {
		row := []interface{}{"v" + string(rune('A'+i)), i}
		cell, _ := excelize.CoordinatesToCellName(1, i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	splitter := configure(t, NewExcelSplitter(), Options{"by": 3})
	fragments := collectFragments(t, splitter, buf.Bytes(), 0)
	// 7 data rows in chunks of 3
	if len(fragments) != 3 {
		t.Fatalf("Expected 3 fragments, got %d", len(fragments))
	}
	for i, frag := range fragments {
		text := frag.Text()
		if !strings.Contains(text, "Header: col1\tcol2") {
			t.Errorf("Fragment %d missing repeated header: %q", i, text)
		}
		if frag.Kind != "excel" {
			t.Errorf("Fragment %d: expected Kind 'excel', got %s", i, frag.Kind)
		}
		if frag.Meta["sheet"] != sheet {
			t.Errorf("Fragment %d: expected sheet %s, got %s", i, sheet, frag.Meta["sheet"])
		}
	}
	if fragments[0].Meta["start_row"] != "2" || fragments[0].Meta["end_row"] != "4" {
		t.Errorf("Unexpected first chunk rows: %s-%s", fragments[0].Meta["start_row"], fragments[0].Meta["end_row"])
	}
	if fragments[2].Meta["start_row"] != "8" || fragments[2].Meta["end_row"] != "8" {
		t.Errorf("Unexpected last chunk rows: %s-%s", fragments[2].Meta["start_row"], fragments[2].Meta["end_row"])
	}
	for i := 0; i < len(fragments)-1; i++ {
		if fragments[i].End != fragments[i+1].Start {
			t.Errorf("Fragment %d ends at %d but fragment %d starts at %d", i, fragments[i].End, i+1, fragments[i+1].Start)
		}
	}
}
