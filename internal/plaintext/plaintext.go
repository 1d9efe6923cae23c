// Package plaintext normalizes rich-text entry content for word counting
// and search.
package plaintext

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripper = bluemonday.StripTagsPolicy()

// Strip removes markup from rich-text content and unescapes HTML
// entities, returning plain text.
func Strip(content string) string {
	return html.UnescapeString(stripper.Sanitize(content))
}

// WordCount returns the number of whitespace-separated words in the
// plain-text rendering of content.
func WordCount(content string) int {
	return len(strings.Fields(Strip(content)))
}
