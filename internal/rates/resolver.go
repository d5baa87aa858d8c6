package rates

const (
	colPostalCode = "CP"
	colProvince   = "PROVINCIA"
)

// ResolveProvince returns the province recorded for a postal code, or ""
// when the postal-code sheet is missing, lacks the CP/PROVINCIA columns, or
// holds no row for that code. Matching is exact string equality: leading
// zeros and whitespace in the sheet are significant. The scan is linear; the
// table is a few thousand rows and lookups are rare next to the network I/O
// around them.
func (e *Engine) ResolveProvince(postalCode string) string {
	tbl := e.cache.Table(e.postalSheet)
	if tbl.Empty() {
		return ""
	}

	iCP, okCP := tbl.Column(colPostalCode)
	iProv, okProv := tbl.Column(colProvince)
	if !okCP || !okProv {
		return ""
	}

	for i := 0; i < tbl.Len(); i++ {
		if tbl.Cell(i, iCP) == postalCode {
			return tbl.Cell(i, iProv)
		}
	}
	return ""
}
