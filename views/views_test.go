package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func TestEntryHTML(t *testing.T) {
	tests := []struct {
		entry folio.MetaEntry
		want  string
	}{
		{folio.MetaEntry{Element: "meta", Attr: "charset", Value: "utf-8"}, `<meta charset="utf-8">`},
		{folio.MetaEntry{Element: "meta", Attr: "name", Key: "description", Value: ""}, `<meta name="description" content="">`},
		{folio.MetaEntry{Element: "meta", Attr: "property", Key: "og:title", Value: `Tom & "Jerry"`}, `<meta property="og:title" content="Tom &amp; &#34;Jerry&#34;">`},
		{folio.MetaEntry{Element: "link", Attr: "rel", Key: "icon", Value: "/favicon.ico", Type: "image/x-icon"}, `<link rel="icon" type="image/x-icon" href="/favicon.ico">`},
		{folio.MetaEntry{Element: "link", Attr: "rel", Key: "canonical", Value: "https://a.test/posts/x"}, `<link rel="canonical" href="https://a.test/posts/x">`},
	}
	for _, tt := range tests {
		if got := entryHTML(tt.entry); got != tt.want {
			t.Errorf("entryHTML(%+v) = %q, want %q", tt.entry, got, tt.want)
		}
	}
}

func TestHeadKeepsEntryOrder(t *testing.T) {
	doc := folio.Document{Slug: "hello", Title: "Hello", Image: "a.png"}
	meta := folio.Synthesize(doc, "https://example.test")
	out := render(t, Head(meta, ""))

	last := -1
	for _, e := range meta.Entries {
		i := strings.Index(out, entryHTML(e))
		if i < 0 {
			t.Fatalf("missing entry %q", entryHTML(e))
		}
		if i < last {
			t.Errorf("entry %q out of order", e.Key)
		}
		last = i
	}
}

func TestTagsRenderAsChips(t *testing.T) {
	got := tagsHTML([]string{"go", "", "<b>"})
	want := `<ul class="tags"><li class="tag">go</li><li class="tag"></li><li class="tag">&lt;b&gt;</li></ul>`
	if got != want {
		t.Errorf("tagsHTML = %q, want %q", got, want)
	}
	if tagsHTML([]string{}) != "" {
		t.Error("no tags should render nothing")
	}
}

func TestPostEscapesTitle(t *testing.T) {
	doc := folio.Document{Slug: "x", Title: "<script>x</script>", TagList: []string{}}
	cfg := folio.SiteConfig{Name: "Blog", URL: "https://example.test"}
	out := render(t, Post(doc, nil, folio.Synthesize(doc, cfg.URL), cfg))
	if strings.Contains(out, "<script>x</script>") {
		t.Error("title was not escaped")
	}
}

func TestNotFoundPage(t *testing.T) {
	out := render(t, NotFound(&folio.NotFoundError{Slug: "x", Status: 404, Message: folio.NotFoundMessage}, folio.SiteConfig{Name: "Blog"}))
	if !strings.Contains(out, "<h1>404</h1>") || !strings.Contains(out, "page not found") {
		t.Errorf("unexpected not found page: %s", out)
	}
	want := folio.NewSynthesizer(folio.SiteConfig{Name: "Blog"}).Synthesize(folio.Document{Title: folio.NotFoundMessage}).Title
	if !strings.Contains(out, "<title>"+want+"</title>") {
		t.Errorf("not found page title does not match post title format %q: %s", want, out)
	}
	if !strings.Contains(out, `<meta name="viewport"`) {
		t.Error("not found page missing viewport")
	}
}

func TestImageSrc(t *testing.T) {
	if got := imageSrc("hello.jpg"); got != "/hello.jpg" {
		t.Errorf("imageSrc = %q", got)
	}
	if got := imageSrc("https://cdn.test/a.png"); got != "https://cdn.test/a.png" {
		t.Errorf("imageSrc = %q", got)
	}
}
