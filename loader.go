package folio

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// frontMatter mirrors the recognized front matter fields of a post.
type frontMatter struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	HTMLMetadata string `yaml:"htmlMetadata"`
	Image        string `yaml:"image"`
	Tags         string `yaml:"tags"`
	Date         string `yaml:"date"`
	CreatedAt    string `yaml:"createdAt"`
	PostNumber   int    `yaml:"postNumber"`
}

var yamlFrontMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// ParseDocument splits source into front matter and markdown body.
func ParseDocument(slug string, source []byte) (RawDocument, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &fm, yamlFrontMatter)
	if err != nil {
		return RawDocument{}, fmt.Errorf("parse front matter of %q: %w", slug, err)
	}
	return RawDocument{
		Slug:         slug,
		Title:        fm.Title,
		Description:  fm.Description,
		HTMLMetadata: fm.HTMLMetadata,
		Image:        fm.Image,
		Tags:         fm.Tags,
		Date:         fm.Date,
		CreatedAt:    fm.CreatedAt,
		PostNumber:   fm.PostNumber,
		Body:         strings.TrimLeft(string(body), "\n"),
	}, nil
}

// SlugFromPath derives a document slug from its storage path,
// e.g. "2023/Hello World.md" -> "2023-hello-world".
func SlugFromPath(p string) string {
	return Slugify(strings.TrimSuffix(p, path.Ext(p)))
}

// LoadDocuments reads every *.md file under fsys. Files and directories whose
// names start with "_" or "." are skipped.
func LoadDocuments(ctx context.Context, fsys fs.FS) ([]RawDocument, error) {
	var docs []RawDocument
	seen := map[string]string{}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := d.Name()
		if p != "." && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || path.Ext(name) != ".md" {
			return nil
		}
		slug := SlugFromPath(p)
		if slug == "" {
			return fmt.Errorf("content %s: empty slug", p)
		}
		if prev, dup := seen[slug]; dup {
			return fmt.Errorf("content %s: slug %q already used by %s", p, slug, prev)
		}
		seen[slug] = p

		source, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		doc, err := ParseDocument(slug, source)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortDocuments(docs)
	return docs, nil
}
