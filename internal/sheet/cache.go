package sheet

import (
	"sort"
	"sync"
)

// Cache holds the loaded tables, keyed by worksheet name. It starts empty and
// is only ever mutated by whole-table replacement, so concurrent readers see
// either the previous table or the new one, never a partial write.
type Cache struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

func NewCache() *Cache {
	return &Cache{tables: map[string]*Table{}}
}

// Replace swaps in a freshly built table for the given worksheet name.
func (c *Cache) Replace(name string, raw [][]string) {
	tbl := NewTable(raw)
	c.mu.Lock()
	c.tables[name] = tbl
	c.mu.Unlock()
}

// Table returns the cached table for a worksheet name, or nil if that sheet
// has not been loaded yet.
func (c *Cache) Table(name string) *Table {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tables[name]
}

// Names lists the loaded worksheet names, sorted.
func (c *Cache) Names() []string {
	c.mu.RLock()
	out := make([]string, 0, len(c.tables))
	for name := range c.tables {
		out = append(out, name)
	}
	c.mu.RUnlock()
	sort.Strings(out)
	return out
}
