package folio

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"
)

var helloDoc = RawDocument{
	Slug:        "hello",
	Title:       "Hello World",
	Description: "A greeting",
	Tags:        "intro;demo",
	CreatedAt:   "2022-01-01",
	Image:       "hello.jpg",
	Body:        "# Hello\n\nWorld.",
}

type failingStore struct{ err error }

func (f failingStore) Fetch(ctx context.Context, slug string) (RawDocument, error) {
	return RawDocument{}, f.err
}

func (f failingStore) List(ctx context.Context) ([]RawDocument, error) {
	return nil, f.err
}

func newTestResolver(t *testing.T, docs ...RawDocument) *Resolver {
	t.Helper()
	store, err := NewMemoryStore(docs...)
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	return NewResolver(store)
}

func TestResolve(t *testing.T) {
	r := newTestResolver(t, helloDoc)

	doc, err := r.Resolve(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if doc.Title != "Hello World" {
		t.Errorf("Title = %q, want %q", doc.Title, "Hello World")
	}
	if doc.Description != "A greeting" {
		t.Errorf("Description = %q", doc.Description)
	}
	if !reflect.DeepEqual(doc.TagList, []string{"intro", "demo"}) {
		t.Errorf("TagList = %q, want [intro demo]", doc.TagList)
	}
	if doc.DisplayDate != "January 1, 2022" {
		t.Errorf("DisplayDate = %q, want %q", doc.DisplayDate, "January 1, 2022")
	}
	if doc.Body != helloDoc.Body {
		t.Errorf("Body = %q", doc.Body)
	}
	if doc.Link() != "/posts/hello" {
		t.Errorf("Link = %q", doc.Link())
	}
}

func TestResolvePreformattedDate(t *testing.T) {
	raw := helloDoc
	raw.Date = "Sometime in 2021"
	r := newTestResolver(t, raw)

	doc, err := r.Resolve(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if doc.DisplayDate != "Sometime in 2021" {
		t.Errorf("DisplayDate = %q, want verbatim date", doc.DisplayDate)
	}
}

func TestResolveInvalidDateIsNotFatal(t *testing.T) {
	raw := helloDoc
	raw.CreatedAt = "yesterday"
	r := newTestResolver(t, raw)

	doc, err := r.Resolve(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if doc.DisplayDate != InvalidDate {
		t.Errorf("DisplayDate = %q, want %q", doc.DisplayDate, InvalidDate)
	}
}

func TestResolveNoTags(t *testing.T) {
	raw := helloDoc
	raw.Tags = ""
	r := newTestResolver(t, raw)

	doc, err := r.Resolve(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if doc.TagList == nil || len(doc.TagList) != 0 {
		t.Errorf("TagList = %#v, want empty non-nil", doc.TagList)
	}
}

func TestResolveNotFound(t *testing.T) {
	r := newTestResolver(t, helloDoc)

	for _, slug := range []string{"missing-slug", "", "Hello"} {
		_, err := r.Resolve(context.Background(), slug)
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("Resolve(%q) err = %v, want *NotFoundError", slug, err)
		}
		if nf.Status != http.StatusNotFound {
			t.Errorf("Status = %d, want 404", nf.Status)
		}
		if nf.Message != "page not found" {
			t.Errorf("Message = %q", nf.Message)
		}
		if nf.Slug != slug {
			t.Errorf("Slug = %q, want %q", nf.Slug, slug)
		}
		if !IsNotFound(err) {
			t.Error("IsNotFound should be true")
		}
	}
}

func TestResolveStoreFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	r := NewResolver(failingStore{err: boom})

	_, err := r.Resolve(context.Background(), "hello")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
	if IsNotFound(err) {
		t.Error("store failure must not look like not found")
	}
}

func TestResolveMalformed(t *testing.T) {
	raw := helloDoc
	raw.Title = ""
	r := newTestResolver(t, raw)

	_, err := r.Resolve(context.Background(), "hello")
	var me *MalformedDocumentError
	if !errors.As(err, &me) {
		t.Fatalf("err = %v, want *MalformedDocumentError", err)
	}
	if me.Field != "title" {
		t.Errorf("Field = %q", me.Field)
	}
}

func TestResolveCancelledContext(t *testing.T) {
	r := newTestResolver(t, helloDoc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "hello")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestResolveDoesNotMutateStore(t *testing.T) {
	store, err := NewMemoryStore(helloDoc)
	if err != nil {
		t.Fatal(err)
	}
	r := NewResolver(store)

	doc, err := r.Resolve(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	doc.TagList[0] = "changed"
	doc.Title = "changed"

	raw, err := store.Fetch(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(raw, helloDoc) {
		t.Errorf("stored document changed: %+v", raw)
	}
	again, err := r.Resolve(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if again.TagList[0] != "intro" || again.Title != "Hello World" {
		t.Errorf("second resolution saw mutation: %+v", again)
	}
}

func TestResolveAll(t *testing.T) {
	second := RawDocument{Slug: "second", Title: "Second", Date: "Today", PostNumber: 2}
	first := helloDoc
	first.PostNumber = 1
	store, err := NewMemoryStore(first, second)
	if err != nil {
		t.Fatal(err)
	}
	r := NewResolver(store)

	docs, skipped, err := r.ResolveAll(context.Background(), store)
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v, want none", skipped)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].Slug != "second" || docs[1].Slug != "hello" {
		t.Errorf("order = %s, %s; want second, hello", docs[0].Slug, docs[1].Slug)
	}
	if docs[1].DisplayDate != "January 1, 2022" {
		t.Errorf("DisplayDate = %q", docs[1].DisplayDate)
	}
}

func TestResolveAllListFailure(t *testing.T) {
	boom := errors.New("unreachable")
	r := NewResolver(failingStore{err: boom})
	if _, _, err := r.ResolveAll(context.Background(), failingStore{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestResolveAllSkipsMalformed(t *testing.T) {
	draft := RawDocument{Slug: "draft", CreatedAt: "2022-01-02", PostNumber: 5}
	store, err := NewMemoryStore(helloDoc, draft)
	if err != nil {
		t.Fatal(err)
	}
	r := NewResolver(store)

	docs, skipped, err := r.ResolveAll(context.Background(), store)
	if err != nil {
		t.Fatalf("ResolveAll failed: %v", err)
	}
	if len(docs) != 1 || docs[0].Slug != "hello" {
		t.Fatalf("docs = %+v, want only hello", docs)
	}
	if len(skipped) != 1 || skipped[0].Slug != "draft" || skipped[0].Field != "title" {
		t.Errorf("skipped = %v, want draft missing title", skipped)
	}

	// The malformed document still fails its own resolution.
	var md *MalformedDocumentError
	if _, err := r.Resolve(context.Background(), "draft"); !errors.As(err, &md) {
		t.Errorf("Resolve(draft) err = %v, want *MalformedDocumentError", err)
	}
}

func TestDocumentLinkEscapesSlug(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"hello", "/posts/hello"},
		{"a b", "/posts/a%20b"},
		{"x/y", "/posts/x%2Fy"},
		{"q?1", "/posts/q%3F1"},
	}
	for _, tt := range tests {
		if got := (Document{Slug: tt.slug}).Link(); got != tt.want {
			t.Errorf("Link(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}
