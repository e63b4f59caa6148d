package driver

import (
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"nyanc/internal/source"
)

// astCache memoizes parses by FileID. Entries are written once and never
// replaced; singleflight makes racing first requests share one computation.
type astCache struct {
	mu     sync.RWMutex
	byFile map[source.FileID]Parsed
	flight singleflight.Group
}

func newASTCache() *astCache {
	return &astCache{byFile: make(map[source.FileID]Parsed)}
}

func (c *astCache) get(file source.FileID) (Parsed, bool) {
	c.mu.RLock()
	p, ok := c.byFile[file]
	c.mu.RUnlock()
	return p, ok
}

// do returns the cached entry for file or runs compute exactly once for it.
func (c *astCache) do(file source.FileID, compute func() Parsed) Parsed {
	key := strconv.FormatUint(uint64(file), 10)
	v, _, _ := c.flight.Do(key, func() (any, error) {
		// полёт мог завершиться между get и Do — перепроверяем под замком
		if p, ok := c.get(file); ok {
			return p, nil
		}
		p := compute()
		c.mu.Lock()
		c.byFile[file] = p
		c.mu.Unlock()
		return p, nil
	})
	p, ok := v.(Parsed)
	if !ok {
		panic("driver: ast cache holds a non-Parsed value")
	}
	return p
}

// len is the number of parsed files.
func (c *astCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byFile)
}

// files lists parsed file ids in ascending order.
func (c *astCache) files() []source.FileID {
	c.mu.RLock()
	out := make([]source.FileID, 0, len(c.byFile))
	for id := range c.byFile {
		out = append(out, id)
	}
	c.mu.RUnlock()
	slices.Sort(out)
	return out
}
