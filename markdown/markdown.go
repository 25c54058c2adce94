// Package markdown renders post bodies to sanitized HTML as templ components.
package markdown

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	engine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span", "div")
	return p
}

// Markdown returns a templ.Component that renders md as sanitized HTML.
func Markdown(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := Render([]byte(md))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	})
}

// Render converts md to HTML and strips anything the sanitizer policy does
// not allow. Raw HTML in posts is permitted before sanitizing.
func Render(md []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(md, &buf); err != nil {
		return nil, err
	}
	return policy.SanitizeBytes(buf.Bytes()), nil
}
