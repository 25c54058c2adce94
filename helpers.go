package folio

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Slugify converts a title or storage path to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// joinURL appends p to base with exactly one slash between them.
func joinURL(base, p string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// RelatedDocuments returns documents that share at least one tag with current.
// Tags are compared exactly as written.
func RelatedDocuments(current Document, docs []Document) []Document {
	tagSet := make(map[string]struct{}, len(current.TagList))
	for _, t := range current.TagList {
		if t != "" {
			tagSet[t] = struct{}{}
		}
	}
	var related []Document
	for _, d := range docs {
		if d.Slug == current.Slug {
			continue
		}
		for _, t := range d.TagList {
			if _, ok := tagSet[t]; ok {
				related = append(related, d)
				break
			}
		}
	}
	return related
}

// WebsiteJSONLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJSONLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      joinURL(cfg.URL, ""),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
