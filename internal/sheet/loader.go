package sheet

import (
	"context"
	"fmt"
	"log"
)

// Loader populates the cache from a Source. Loading is best-effort per
// table: a sheet that fails to fetch is logged and skipped, and whatever the
// cache held for it before stays in place.
type Loader struct {
	cache       *Cache
	source      Source
	postalSheet string
	rateSheets  []string
}

func NewLoader(cache *Cache, source Source, postalSheet string, rateSheets []string) *Loader {
	return &Loader{cache: cache, source: source, postalSheet: postalSheet, rateSheets: rateSheets}
}

// LoadAll fetches the postal-code sheet and every configured rate sheet,
// replacing cache entries one table at a time. Calling it again with
// unchanged upstream data yields identical cache contents. The returned
// error summarizes partial failures; per-sheet details are logged.
func (l *Loader) LoadAll(ctx context.Context) error {
	names := make([]string, 0, 1+len(l.rateSheets))
	names = append(names, l.postalSheet)
	names = append(names, l.rateSheets...)

	failed := 0
	for _, name := range names {
		rows, err := l.source.FetchTable(ctx, name)
		if err != nil {
			log.Printf("sheet: load %q failed: %v", name, err)
			failed++
			continue
		}
		l.cache.Replace(name, rows)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sheets failed to load", failed, len(names))
	}
	return nil
}
