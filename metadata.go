package folio

import (
	"encoding/json"
	"strings"
)

const (
	postsPath          = "/posts/"
	twitterCardType    = "summary_large_image"
	viewportContent    = "width=device-width, initial-scale=1"
	defaultFaviconPath = "/favicon.ico"
	titleSeparator     = " | "
)

// Synthesizer builds head metadata for pages of one site.
type Synthesizer struct {
	SiteName    string // prefixed to page titles
	BaseURL     string
	FaviconPath string // default "/favicon.ico"
}

// NewSynthesizer creates a Synthesizer from the site configuration.
func NewSynthesizer(cfg SiteConfig) Synthesizer {
	return Synthesizer{SiteName: cfg.Name, BaseURL: cfg.URL}
}

// Synthesize builds the metadata block for doc under baseURL using the
// default site name.
func Synthesize(doc Document, baseURL string) MetadataBlock {
	return Synthesizer{SiteName: defaultSiteName, BaseURL: baseURL}.Synthesize(doc)
}

// Synthesize builds the metadata block for a post page.
//
// Description entries are always emitted and fall back from HTMLMetadata to
// Description to "". Image entries are only emitted when the document has an
// image.
func (s Synthesizer) Synthesize(doc Document) MetadataBlock {
	return MetadataBlock{
		Title:   s.pageTitle(doc.Title),
		Entries: s.entries(doc.Title, metaDescription(doc), s.imageURL(doc.Image), joinURL(s.BaseURL, postsPath+doc.Slug)),
	}
}

// SiteMetadata builds the metadata block for the index page.
func (s Synthesizer) SiteMetadata(description, image string) MetadataBlock {
	title := s.SiteName
	if title == "" {
		title = defaultSiteName
	}
	return MetadataBlock{
		Title:   title,
		Entries: s.entries(title, description, s.imageURL(image), joinURL(s.BaseURL, "")),
	}
}

// ErrorMetadata builds the minimal head for an error page titled title.
func (s Synthesizer) ErrorMetadata(title string) MetadataBlock {
	return MetadataBlock{
		Title: s.pageTitle(title),
		Entries: []MetaEntry{
			{Element: "meta", Attr: "charset", Value: "utf-8"},
			{Element: "meta", Attr: "name", Key: "viewport", Value: viewportContent},
		},
	}
}

func (s Synthesizer) pageTitle(title string) string {
	name := s.SiteName
	if name == "" {
		name = defaultSiteName
	}
	return name + titleSeparator + title
}

func (s Synthesizer) entries(title, description, image, pageURL string) []MetaEntry {
	favicon := s.FaviconPath
	if favicon == "" {
		favicon = defaultFaviconPath
	}

	out := make([]MetaEntry, 0, 13)
	out = append(out,
		MetaEntry{Element: "meta", Attr: "charset", Value: "utf-8"},
		MetaEntry{Element: "meta", Attr: "name", Key: "viewport", Value: viewportContent},
		MetaEntry{Element: "meta", Attr: "name", Key: "description", Value: description},
		MetaEntry{Element: "meta", Attr: "property", Key: "og:title", Value: title},
		MetaEntry{Element: "meta", Attr: "property", Key: "og:description", Value: description},
	)
	if image != "" {
		out = append(out, MetaEntry{Element: "meta", Attr: "property", Key: "og:image", Value: image})
	}
	out = append(out,
		MetaEntry{Element: "meta", Attr: "name", Key: "twitter:card", Value: twitterCardType},
		MetaEntry{Element: "meta", Attr: "name", Key: "twitter:url", Value: pageURL},
		MetaEntry{Element: "meta", Attr: "name", Key: "twitter:title", Value: title},
		MetaEntry{Element: "meta", Attr: "name", Key: "twitter:description", Value: description},
	)
	if image != "" {
		out = append(out, MetaEntry{Element: "meta", Attr: "name", Key: "twitter:image", Value: image})
	}
	out = append(out,
		MetaEntry{Element: "link", Attr: "rel", Key: "icon", Value: favicon, Type: "image/x-icon"},
		MetaEntry{Element: "link", Attr: "rel", Key: "canonical", Value: pageURL},
	)
	return out
}

func (s Synthesizer) imageURL(image string) string {
	if image == "" {
		return ""
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return joinURL(s.BaseURL, image)
}

func metaDescription(doc Document) string {
	if doc.HTMLMetadata != "" {
		return doc.HTMLMetadata
	}
	return doc.Description
}

// BlogPostingJSONLD returns a Schema.org BlogPosting JSON-LD string for doc.
func BlogPostingJSONLD(doc Document, cfg SiteConfig) string {
	postURL := joinURL(cfg.URL, doc.Link())
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    doc.Title,
		"description": metaDescription(doc),
		"url":         postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if t, ok := publishedTime(doc); ok {
		data["datePublished"] = t.Format("2006-01-02")
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if doc.Image != "" {
		data["image"] = Synthesizer{BaseURL: cfg.URL}.imageURL(doc.Image)
	}
	if len(doc.TagList) > 0 {
		data["keywords"] = strings.Join(doc.TagList, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
