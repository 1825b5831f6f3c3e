package notebook

import (
	"sync"
	"time"

	"github.com/darkhorsekelly/notebook/content"
)

// ContentCache is an in-memory cache of the parsed content directory with TTL.
type ContentCache struct {
	mu      sync.RWMutex
	snap    *contentSnapshot
	fetched time.Time
	ttl     time.Duration
	dir     string
	prefix  string
}

type contentSnapshot struct {
	docs     []content.Document
	failures []content.LoadError
	entries  []content.Entry
}

// NewContentCache creates a ContentCache over the .mdx files in dir. Content
// paths are built as prefix + "/" + file name.
func NewContentCache(dir, prefix string, ttl time.Duration) *ContentCache {
	return &ContentCache{dir: dir, prefix: prefix, ttl: ttl}
}

func (c *ContentCache) valid() bool {
	return c.snap != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

func (c *ContentCache) load() error {
	if c.valid() {
		return nil
	}
	docs, failures, err := content.LoadDir(c.dir, c.prefix)
	if err != nil {
		return err
	}
	c.snap = &contentSnapshot{docs: docs, failures: failures, entries: content.Entries(docs)}
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached snapshot after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ContentCache) ensureLoaded() (*contentSnapshot, error) {
	c.mu.RLock()
	if c.valid() {
		snap := c.snap
		c.mu.RUnlock()
		return snap, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.snap, nil
}

// Documents returns every parsed document and the files that failed to parse.
func (c *ContentCache) Documents() ([]content.Document, []content.LoadError, error) {
	snap, err := c.ensureLoaded()
	if err != nil {
		return nil, nil, err
	}
	return snap.docs, snap.failures, nil
}

// Entries returns valid entries newest first, optionally filtered by tag ID.
func (c *ContentCache) Entries(tagID string) ([]content.Entry, error) {
	snap, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tagID == "" {
		return snap.entries, nil
	}
	var filtered []content.Entry
	for _, e := range snap.entries {
		if e.HasTag(tagID) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// Entry returns a single valid entry by slug.
func (c *ContentCache) Entry(slug string) (content.Entry, error) {
	snap, err := c.ensureLoaded()
	if err != nil {
		return content.Entry{}, err
	}
	for _, e := range snap.entries {
		if e.Slug == slug {
			return e, nil
		}
	}
	return content.Entry{}, ErrNotFound
}
