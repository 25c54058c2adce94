package folio

import "strings"

// TagDelimiter separates tags in the raw front matter field.
const TagDelimiter = ";"

// ParseTags splits a ";"-delimited tag string into display tags.
// Segments are kept as written: no trimming, no de-duplication, and a stray
// delimiter yields an empty tag. An empty input yields an empty, non-nil slice.
func ParseTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, TagDelimiter)
}
