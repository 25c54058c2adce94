package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
)

// Head renders the page title, every metadata entry in order, and an
// optional JSON-LD block.
func Head(meta folio.MetadataBlock, jsonLD string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<head>")
		for _, e := range meta.Entries {
			b.WriteString(entryHTML(e))
		}
		b.WriteString("<title>")
		b.WriteString(templ.EscapeString(meta.Title))
		b.WriteString("</title>")
		if jsonLD != "" {
			b.WriteString(`<script type="application/ld+json">`)
			b.WriteString(jsonLD)
			b.WriteString("</script>")
		}
		b.WriteString(`<link rel="stylesheet" href="/public/styles.css">`)
		b.WriteString("</head>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func entryHTML(e folio.MetaEntry) string {
	switch {
	case e.Attr == "charset":
		return `<meta charset="` + templ.EscapeString(e.Value) + `">`
	case e.Element == "link":
		s := `<link rel="` + templ.EscapeString(e.Key) + `"`
		if e.Type != "" {
			s += ` type="` + templ.EscapeString(e.Type) + `"`
		}
		return s + ` href="` + templ.EscapeString(e.Value) + `">`
	default:
		return `<meta ` + e.Attr + `="` + templ.EscapeString(e.Key) + `" content="` + templ.EscapeString(e.Value) + `">`
	}
}
