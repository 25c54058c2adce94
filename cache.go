package folio

import (
	"context"
	"sync"
	"time"
)

// DocumentCache is an in-memory TTL cache of raw documents in front of a
// DocumentLister. Resolved documents are never cached; only store reads are.
type DocumentCache struct {
	mu      sync.RWMutex
	docs    []RawDocument
	bySlug  map[string]int
	fetched time.Time
	ttl     time.Duration
	source  DocumentLister
}

// NewDocumentCache creates a DocumentCache backed by source.
func NewDocumentCache(source DocumentLister, ttl time.Duration) *DocumentCache {
	return &DocumentCache{source: source, ttl: ttl}
}

func (c *DocumentCache) valid() bool {
	return c.docs != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *DocumentCache) Invalidate() {
	c.mu.Lock()
	c.docs = nil
	c.bySlug = nil
	c.mu.Unlock()
}

func (c *DocumentCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	docs, err := c.source.List(ctx)
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []RawDocument{}
	}
	bySlug := make(map[string]int, len(docs))
	for i, d := range docs {
		bySlug[d.Slug] = i
	}
	c.docs = docs
	c.bySlug = bySlug
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached documents after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *DocumentCache) ensureLoaded(ctx context.Context) ([]RawDocument, map[string]int, error) {
	c.mu.RLock()
	if c.valid() {
		docs, bySlug := c.docs, c.bySlug
		c.mu.RUnlock()
		return docs, bySlug, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, err
	}
	return c.docs, c.bySlug, nil
}

// List returns the cached documents. Callers must not modify the slice.
func (c *DocumentCache) List(ctx context.Context) ([]RawDocument, error) {
	docs, _, err := c.ensureLoaded(ctx)
	return docs, err
}

// Fetch returns a single document by slug from the cache, or ErrNotFound.
func (c *DocumentCache) Fetch(ctx context.Context, slug string) (RawDocument, error) {
	docs, bySlug, err := c.ensureLoaded(ctx)
	if err != nil {
		return RawDocument{}, err
	}
	i, ok := bySlug[slug]
	if !ok {
		return RawDocument{}, ErrNotFound
	}
	return docs[i], nil
}
