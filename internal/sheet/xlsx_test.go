package sheet

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func mkWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	first := f.GetSheetName(0)
	renamed := false
	for name, rows := range sheets {
		sheetName := name
		if !renamed {
			_ = f.SetSheetName(first, name)
			renamed = true
		} else {
			_, _ = f.NewSheet(name)
		}
		for r, row := range rows {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				_ = f.SetCellValue(sheetName, cell, v)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "rates.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestXLSXSourceFetchTable(t *testing.T) {
	path := mkWorkbook(t, map[string][][]any{
		"OCA SUC": {
			{"PROVINCIA", "PESO MIN", "PESO MAX", "PRECIO", "TÍTULO"},
			{"CABA", 0, 5, 1500, "OCA A SUCURSAL"},
		},
	})

	src, err := NewXLSXSource(path)
	if err != nil {
		t.Fatal(err)
	}

	rows, err := src.FetchTable(context.Background(), "OCA SUC")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows=%d", len(rows))
	}
	if rows[0][4] != "TÍTULO" || rows[1][0] != "CABA" {
		t.Fatalf("rows=%v", rows)
	}

	if _, err := src.FetchTable(context.Background(), "NO SUCH SHEET"); err == nil {
		t.Fatal("expected error for missing sheet")
	}
}

func TestXLSXSourceMissingFile(t *testing.T) {
	if _, err := NewXLSXSource(filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Fatal("expected error for missing workbook")
	}
}
