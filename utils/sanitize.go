package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips HTML markup and returns the remaining plain text. The
// policy escapes the text it keeps, so entities are decoded again: the
// result is stored as typed and rendered as text, never as HTML.
func Sanitize(input string) string {
	return html.UnescapeString(sanitizer.Sanitize(input))
}

// CleanText trims and sanitizes a required text field.
func CleanText(input string) string {
	return strings.TrimSpace(Sanitize(strings.TrimSpace(input)))
}

// CleanOptional sanitizes an optional text field. Blank input becomes nil.
func CleanOptional(input *string) *string {
	if input == nil {
		return nil
	}
	s := CleanText(*input)
	if s == "" {
		return nil
	}
	return &s
}
