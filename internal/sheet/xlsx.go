package sheet

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads worksheets from a local workbook. It exists for offline
// development and as a fallback feed when no Google credentials are
// provisioned; sheet and column layout match the hosted spreadsheet.
type XLSXSource struct {
	path string
}

func NewXLSXSource(path string) (*XLSXSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("rates workbook: %w", err)
	}
	return &XLSXSource{path: path}, nil
}

// FetchTable reopens the workbook on every call so that an edited file is
// picked up by the next reload.
func (s *XLSXSource) FetchTable(ctx context.Context, name string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open rates workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return rows, nil
}
