package folio

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned by document stores when a slug has no document.
var ErrNotFound = errors.New("document not found")

// NotFoundMessage is shown to readers when a slug does not resolve.
const NotFoundMessage = "page not found"

// NotFoundError reports a slug with no matching document. It is rendered as a
// page-level 404, never as a partial page.
type NotFoundError struct {
	Slug    string
	Status  int
	Message string
}

func newNotFoundError(slug string) *NotFoundError {
	return &NotFoundError{Slug: slug, Status: http.StatusNotFound, Message: NotFoundMessage}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", e.Message, e.Slug)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// MalformedDocumentError reports a stored document missing a required field.
type MalformedDocumentError struct {
	Slug  string
	Field string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("document %q: missing required field %q", e.Slug, e.Field)
}

// IsNotFound reports whether err is a not-found condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
