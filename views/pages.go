// Package views provides the default templ components for a folio site.
package views

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
	"github.com/eringen/folio/markdown"
)

// Default returns the built-in page components.
func Default() folio.ViewFuncs {
	return folio.ViewFuncs{
		Index:       Index,
		Post:        Post,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}

func layout(head, body templ.Component, cfg folio.SiteConfig) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en">`); err != nil {
			return err
		}
		if err := head.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<body><header><a href="/" class="site-name">`+templ.EscapeString(cfg.Name)+`</a></header><main>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// Index renders the list of post previews.
func Index(docs []folio.Document, meta folio.MetadataBlock, cfg folio.SiteConfig) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="posts">`); err != nil {
			return err
		}
		for _, d := range docs {
			if _, err := io.WriteString(w, previewHTML(d)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
	return layout(Head(meta, folio.WebsiteJSONLD(cfg)), body, cfg)
}

// Post renders a single document with its tags and related posts.
func Post(doc folio.Document, related []folio.Document, meta folio.MetadataBlock, cfg folio.SiteConfig) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<article class="post" data-post-number="` + strconv.Itoa(doc.PostNumber) + `">` +
			`<h1>` + templ.EscapeString(doc.Title) + `</h1>` +
			`<time>` + templ.EscapeString(doc.DisplayDate) + `</time>` +
			tagsHTML(doc.TagList)
		if doc.Image != "" {
			head += `<img class="cover" src="` + templ.EscapeString(imageSrc(doc.Image)) + `" alt="` + templ.EscapeString(doc.Title) + `">`
		}
		head += `<div class="content">`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := markdown.Markdown(doc.Body).Render(ctx, w); err != nil {
			return err
		}
		tail := `</div></article>`
		if len(related) > 0 {
			tail += `<aside class="related"><h2>Related</h2>`
			for _, r := range related {
				tail += previewHTML(r)
			}
			tail += `</aside>`
		}
		_, err := io.WriteString(w, tail)
		return err
	})
	return layout(Head(meta, folio.BlogPostingJSONLD(doc, cfg)), body, cfg)
}

// NotFound renders the page shown for an unresolvable slug.
func NotFound(nf *folio.NotFoundError, cfg folio.SiteConfig) templ.Component {
	msg := folio.NotFoundMessage
	status := http.StatusNotFound
	if nf != nil {
		msg, status = nf.Message, nf.Status
	}
	meta := folio.NewSynthesizer(cfg).ErrorMetadata(msg)
	body := text(`<section class="error"><h1>` + strconv.Itoa(status) + `</h1><p>` + templ.EscapeString(msg) + `</p><a href="/">Back home</a></section>`)
	return layout(Head(meta, ""), body, cfg)
}

// ServerError renders the generic error page.
func ServerError(cfg folio.SiteConfig) templ.Component {
	meta := folio.NewSynthesizer(cfg).ErrorMetadata("something went wrong")
	body := text(`<section class="error"><h1>500</h1><p>something went wrong</p><a href="/">Back home</a></section>`)
	return layout(Head(meta, ""), body, cfg)
}

func previewHTML(d folio.Document) string {
	s := `<div class="preview"><a href="` + templ.EscapeString(d.Link()) + `"><h2>` + templ.EscapeString(d.Title) + `</h2></a>` +
		`<time>` + templ.EscapeString(d.DisplayDate) + `</time>`
	if d.Description != "" {
		s += `<p>` + templ.EscapeString(d.Description) + `</p>`
	}
	return s + tagsHTML(d.TagList) + `</div>`
}

// tagsHTML renders each tag as its own chip, empty tags included.
func tagsHTML(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	s := `<ul class="tags">`
	for _, t := range tags {
		s += `<li class="tag">` + templ.EscapeString(t) + `</li>`
	}
	return s + `</ul>`
}

func imageSrc(image string) string {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return "/" + strings.TrimLeft(image, "/")
}

