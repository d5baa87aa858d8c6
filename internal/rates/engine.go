package rates

import "mobapp/internal/sheet"

// Engine answers rate lookups against the sheet cache. It owns no state of
// its own beyond configuration; all table data lives in the injected cache.
type Engine struct {
	cache       *sheet.Cache
	variant     Variant
	postalSheet string
}

func NewEngine(cache *sheet.Cache, variant Variant, postalSheet string) *Engine {
	return &Engine{cache: cache, variant: variant, postalSheet: postalSheet}
}
