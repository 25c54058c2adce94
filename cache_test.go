package folio

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingLister struct {
	docs  []RawDocument
	calls int
	err   error
}

func (c *countingLister) List(ctx context.Context) ([]RawDocument, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.docs, nil
}

func TestDocumentCacheFetch(t *testing.T) {
	src := &countingLister{docs: []RawDocument{helloDoc}}
	c := NewDocumentCache(src, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		doc, err := c.Fetch(ctx, "hello")
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if doc.Title != "Hello World" {
			t.Errorf("Title = %q", doc.Title)
		}
	}
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}
	if _, err := c.Fetch(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDocumentCacheExpires(t *testing.T) {
	src := &countingLister{docs: []RawDocument{helloDoc}}
	c := NewDocumentCache(src, 20*time.Millisecond)
	ctx := context.Background()

	if _, err := c.List(ctx); err != nil {
		t.Fatal(err)
	}
	time.Sleep(40 * time.Millisecond)
	if _, err := c.List(ctx); err != nil {
		t.Fatal(err)
	}
	if src.calls != 2 {
		t.Errorf("source called %d times, want 2", src.calls)
	}
}

func TestDocumentCacheInvalidate(t *testing.T) {
	src := &countingLister{docs: []RawDocument{helloDoc}}
	c := NewDocumentCache(src, time.Hour)
	ctx := context.Background()

	if _, err := c.Fetch(ctx, "hello"); err != nil {
		t.Fatal(err)
	}
	src.docs = nil
	c.Invalidate()
	if _, err := c.Fetch(ctx, "hello"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after invalidate, got %v", err)
	}
	if src.calls != 2 {
		t.Errorf("source called %d times, want 2", src.calls)
	}
}

func TestDocumentCacheError(t *testing.T) {
	boom := errors.New("store down")
	c := NewDocumentCache(&countingLister{err: boom}, time.Minute)
	_, err := c.Fetch(context.Background(), "hello")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if IsNotFound(err) {
		t.Error("store failure must not be reported as not found")
	}
}
