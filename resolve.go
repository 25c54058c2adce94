package folio

import (
	"context"
	"errors"
	"fmt"
)

// DocumentStore looks up raw documents by slug. A miss must return an error
// matching ErrNotFound.
type DocumentStore interface {
	Fetch(ctx context.Context, slug string) (RawDocument, error)
}

// DocumentLister lists every stored document, newest post number first.
type DocumentLister interface {
	List(ctx context.Context) ([]RawDocument, error)
}

// Resolver turns slugs into display-ready documents.
type Resolver struct {
	Store DocumentStore
	Dates DateFormatter
}

// NewResolver creates a Resolver that formats dates with the default formatter.
func NewResolver(store DocumentStore) *Resolver {
	return &Resolver{Store: store, Dates: DefaultDateFormatter}
}

// Resolve fetches slug from the store and derives its display fields.
// A miss yields a *NotFoundError; any other store failure is returned wrapped
// and is fatal for this resolution.
func (r *Resolver) Resolve(ctx context.Context, slug string) (Document, error) {
	raw, err := r.Store.Fetch(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Document{}, newNotFoundError(slug)
		}
		return Document{}, fmt.Errorf("resolve %q: %w", slug, err)
	}
	return r.build(raw)
}

// ResolveAll resolves every document the lister returns, keeping its order.
// Malformed documents are left out of docs and reported in skipped; only a
// listing failure is returned as an error.
func (r *Resolver) ResolveAll(ctx context.Context, lister DocumentLister) (docs []Document, skipped []*MalformedDocumentError, err error) {
	raws, err := lister.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list documents: %w", err)
	}
	docs = make([]Document, 0, len(raws))
	for _, raw := range raws {
		doc, err := r.build(raw)
		if err != nil {
			var md *MalformedDocumentError
			if errors.As(err, &md) {
				skipped = append(skipped, md)
				continue
			}
			return nil, nil, err
		}
		docs = append(docs, doc)
	}
	return docs, skipped, nil
}

func (r *Resolver) build(raw RawDocument) (Document, error) {
	if raw.Title == "" {
		return Document{}, &MalformedDocumentError{Slug: raw.Slug, Field: "title"}
	}
	return Document{
		Slug:         raw.Slug,
		Title:        raw.Title,
		Description:  raw.Description,
		HTMLMetadata: raw.HTMLMetadata,
		Image:        raw.Image,
		Tags:         raw.Tags,
		Date:         raw.Date,
		CreatedAt:    raw.CreatedAt,
		PostNumber:   raw.PostNumber,
		Body:         raw.Body,
		TagList:      ParseTags(raw.Tags),
		DisplayDate:  DateSourceOf(raw).Display(r.Dates),
	}, nil
}
