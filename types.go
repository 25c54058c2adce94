package folio

// RawDocument is a post as it is stored: front matter fields plus the markdown body.
type RawDocument struct {
	Slug         string
	Title        string
	Description  string
	HTMLMetadata string // sharing-surface override for Description
	Image        string // path relative to the site URL, or an absolute URL
	Tags         string // ";"-delimited
	Date         string // pre-formatted display date, used verbatim
	CreatedAt    string // raw timestamp, formatted on resolution
	PostNumber   int
	Body         string
}

// Document is the resolved, display-ready view of a RawDocument.
// It is built per request and never cached.
type Document struct {
	Slug         string
	Title        string
	Description  string
	HTMLMetadata string
	Image        string
	Tags         string
	Date         string
	CreatedAt    string
	PostNumber   int
	Body         string

	TagList     []string // never nil
	DisplayDate string
}

// Link returns the site-relative path of the document with the slug
// path-escaped.
func (d Document) Link() string {
	return postsPath + PathEscape(d.Slug)
}

// MetaEntry is a single element of the page head.
type MetaEntry struct {
	Element string // "meta" or "link"
	Attr    string // attribute naming the entry: charset, name, property or rel
	Key     string // value of Attr; empty for charset
	Value   string // content (meta) or href (link)
	Type    string // optional type attribute for links
}

// MetadataBlock is the ordered set of head entries for one page.
type MetadataBlock struct {
	Title   string
	Entries []MetaEntry
}

// Lookup returns the value of the first entry with the given key.
func (m MetadataBlock) Lookup(key string) (string, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}
