package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderBasics(t *testing.T) {
	tests := []struct {
		input    string
		contains string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"`code`", "<code>code</code>"},
		{"# Title", `<h1 id="title">Title</h1>`},
		{"- one\n- two", "<li>one</li>"},
		{"[link](https://example.com)", `href="https://example.com"`},
		{"| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
	}
	for _, tt := range tests {
		got, err := Render([]byte(tt.input))
		if err != nil {
			t.Fatalf("Render(%q) error: %v", tt.input, err)
		}
		if !strings.Contains(string(got), tt.contains) {
			t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, tt.contains)
		}
	}
}

func TestRenderStripsScripts(t *testing.T) {
	got, err := Render([]byte("hello <script>alert(1)</script>"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(got), "<script>") {
		t.Errorf("script tag not removed: %q", got)
	}
}

func TestRenderStripsEventHandlers(t *testing.T) {
	got, err := Render([]byte(`<img src="/a.png" onerror="alert(1)">`))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(got), "onerror") {
		t.Errorf("event handler not removed: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("Hello *world*").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<em>world</em>") {
		t.Errorf("got %q", buf.String())
	}
}
