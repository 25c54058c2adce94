package folio

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-memory document store used for file-backed content.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]RawDocument
}

// NewMemoryStore creates a store holding docs. Slugs must be unique.
func NewMemoryStore(docs ...RawDocument) (*MemoryStore, error) {
	s := &MemoryStore{docs: map[string]RawDocument{}}
	if err := s.Replace(docs); err != nil {
		return nil, err
	}
	return s, nil
}

// Replace swaps the stored set for docs. On a duplicate slug the store is left unchanged.
func (s *MemoryStore) Replace(docs []RawDocument) error {
	next := make(map[string]RawDocument, len(docs))
	for _, d := range docs {
		if _, dup := next[d.Slug]; dup {
			return fmt.Errorf("duplicate slug %q", d.Slug)
		}
		next[d.Slug] = d
	}
	s.mu.Lock()
	s.docs = next
	s.mu.Unlock()
	return nil
}

// Fetch returns the document stored under slug, or ErrNotFound.
func (s *MemoryStore) Fetch(ctx context.Context, slug string) (RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return RawDocument{}, err
	}
	s.mu.RLock()
	d, ok := s.docs[slug]
	s.mu.RUnlock()
	if !ok {
		return RawDocument{}, ErrNotFound
	}
	return d, nil
}

// List returns every document ordered by post number descending, then slug.
func (s *MemoryStore) List(ctx context.Context) ([]RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	docs := make([]RawDocument, 0, len(s.docs))
	for _, d := range s.docs {
		docs = append(docs, d)
	}
	s.mu.RUnlock()
	sortDocuments(docs)
	return docs, nil
}

func sortDocuments(docs []RawDocument) {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].PostNumber != docs[j].PostNumber {
			return docs[i].PostNumber > docs[j].PostNumber
		}
		return docs[i].Slug < docs[j].Slug
	})
}
