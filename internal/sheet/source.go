package sheet

import "context"

// Source fetches the full row set of one worksheet from the backing
// spreadsheet. The first returned row is the header row.
type Source interface {
	FetchTable(ctx context.Context, name string) ([][]string, error)
}
