package folio

import (
	"strconv"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// InvalidDate is returned in place of a display date that cannot be parsed.
const InvalidDate = "Invalid Date"

// DefaultDateLayout renders dates as "March 18, 2023".
const DefaultDateLayout = "January 2, 2006"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	DefaultDateLayout,
}

// DateFormatter renders timestamps as long-form, locale-specific dates.
type DateFormatter struct {
	Locale monday.Locale
	Layout string
}

// DefaultDateFormatter formats dates in US English.
var DefaultDateFormatter = DateFormatter{Locale: monday.LocaleEnUS, Layout: DefaultDateLayout}

// NewDateFormatter returns a formatter for locale (e.g. "en_US", "de_DE").
// An empty locale falls back to en_US.
func NewDateFormatter(locale string) DateFormatter {
	f := DefaultDateFormatter
	if locale != "" {
		f.Locale = monday.Locale(locale)
	}
	return f
}

// Format parses raw and renders it. Unparseable input yields InvalidDate.
func (f DateFormatter) Format(raw string) string {
	t, ok := parseDate(raw)
	if !ok {
		return InvalidDate
	}
	return f.FormatTime(t)
}

// FormatTime renders t in UTC so the result does not depend on the host zone.
func (f DateFormatter) FormatTime(t time.Time) string {
	layout := f.Layout
	if layout == "" {
		layout = DefaultDateLayout
	}
	locale := f.Locale
	if locale == "" {
		locale = monday.LocaleEnUS
	}
	return monday.Format(t.UTC(), layout, locale)
}

// FormatDate renders raw with the default formatter, e.g. "2023-03-18" -> "March 18, 2023".
func FormatDate(raw string) string {
	return DefaultDateFormatter.Format(raw)
}

// parseDate accepts the date shapes found in front matter and Unix
// millisecond timestamps.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	// Four digits or fewer is a year, anything longer a Unix millisecond timestamp.
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if len(raw) <= 4 && ms >= 0 {
			return time.Date(int(ms), time.January, 1, 0, 0, 0, 0, time.UTC), true
		}
		return time.UnixMilli(ms).UTC(), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateKind tells the resolver how a document's display date is produced.
type DateKind int

const (
	// DatePreformatted dates are shown exactly as written.
	DatePreformatted DateKind = iota
	// DateNeedsFormatting dates are raw timestamps passed through a DateFormatter.
	DateNeedsFormatting
)

// DateSource is the date value a document carries together with its kind.
type DateSource struct {
	Kind  DateKind
	Value string
}

// DateSourceOf picks the date representation of doc. A pre-formatted date
// wins over createdAt.
func DateSourceOf(doc RawDocument) DateSource {
	if doc.Date != "" {
		return DateSource{Kind: DatePreformatted, Value: doc.Date}
	}
	return DateSource{Kind: DateNeedsFormatting, Value: doc.CreatedAt}
}

// Display returns the display string for the source.
func (s DateSource) Display(f DateFormatter) string {
	if s.Kind == DatePreformatted {
		return s.Value
	}
	return f.Format(s.Value)
}

// publishedTime returns the best machine-readable timestamp for doc, used by
// feeds and structured data.
func publishedTime(doc Document) (time.Time, bool) {
	if t, ok := parseDate(doc.CreatedAt); ok {
		return t, true
	}
	return parseDate(doc.Date)
}
