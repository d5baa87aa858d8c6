package sheet

import "strings"

// Table is one loaded worksheet: the verbatim row set plus a header-to-column
// index resolved once at load. The first raw row is the header row; data rows
// may be ragged because the spreadsheet API trims trailing empty cells.
type Table struct {
	headers []string
	rows    [][]string
	cols    map[string]int
}

func NewTable(raw [][]string) *Table {
	t := &Table{cols: map[string]int{}}
	if len(raw) == 0 {
		return t
	}
	t.headers = raw[0]
	t.rows = raw[1:]
	for i, h := range t.headers {
		key := strings.ToUpper(strings.TrimSpace(h))
		if _, ok := t.cols[key]; !ok {
			t.cols[key] = i
		}
	}
	return t
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.rows) == 0
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Column resolves a column by header name, case-insensitive and trimmed.
func (t *Table) Column(name string) (int, bool) {
	if t == nil {
		return 0, false
	}
	idx, ok := t.cols[strings.ToUpper(strings.TrimSpace(name))]
	return idx, ok
}

// ColumnAny resolves the first of several candidate header names. Used for
// headers the spreadsheet authors spell inconsistently (TÍTULO vs TITULO).
func (t *Table) ColumnAny(names ...string) (int, bool) {
	for _, name := range names {
		if idx, ok := t.Column(name); ok {
			return idx, ok
		}
	}
	return 0, false
}

// Cell returns the value at a data row and column, or "" when the row is
// shorter than the requested column.
func (t *Table) Cell(row, col int) string {
	if t == nil || row < 0 || row >= len(t.rows) {
		return ""
	}
	r := t.rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}
