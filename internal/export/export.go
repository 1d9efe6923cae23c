// Package export renders a read-only entry snapshot as a paginated
// plain-text document.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/plaintext"
)

// Defaults for Render options left at their zero value.
const (
	DefaultWrapWidth      = 80
	DefaultEntriesPerPage = 5
)

// Options controls document layout and ordering.
type Options struct {
	// NewestFirst sorts sections by entry date descending. When false
	// the snapshot's stored order is kept.
	NewestFirst bool
	// WrapWidth is the column the content is word-wrapped at.
	WrapWidth uint
	// EntriesPerPage bounds how many sections share a page.
	EntriesPerPage int
}

// Page is one page of the rendered document.
type Page struct {
	Number int    `json:"number"`
	Body   string `json:"body"`
}

// Document is the rendered journal export.
type Document struct {
	Title string `json:"title"`
	Pages []Page `json:"pages"`
}

// Render builds the document: one section per entry with mood indicator,
// formatted date, and word-wrapped plain-text content.
func Render(entries []models.JournalEntry, opts Options) Document {
	if opts.WrapWidth == 0 {
		opts.WrapWidth = DefaultWrapWidth
	}
	if opts.EntriesPerPage <= 0 {
		opts.EntriesPerPage = DefaultEntriesPerPage
	}

	ordered := make([]models.JournalEntry, len(entries))
	copy(ordered, entries)
	if opts.NewestFirst {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Date.After(ordered[j].Date)
		})
	}

	doc := Document{Title: "My Journal"}
	for start := 0; start < len(ordered); start += opts.EntriesPerPage {
		end := start + opts.EntriesPerPage
		if end > len(ordered) {
			end = len(ordered)
		}
		sections := make([]string, 0, end-start)
		for _, e := range ordered[start:end] {
			sections = append(sections, section(e, opts.WrapWidth))
		}
		doc.Pages = append(doc.Pages, Page{
			Number: len(doc.Pages) + 1,
			Body:   strings.Join(sections, "\n\n"),
		})
	}
	return doc
}

func section(e models.JournalEntry, width uint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", e.Mood.Emoji(), e.Date.Format("Monday, Jan 2, 2006"))
	fmt.Fprintf(&b, "%s\n", e.Title)
	b.WriteString(strings.Repeat("-", len(e.Title)))
	b.WriteString("\n")
	b.WriteString(wordwrap.WrapString(plaintext.Strip(e.Content), width))
	if e.IsGratitudeEntry && len(e.GratitudeItems) > 0 {
		b.WriteString("\n\nGrateful for:\n")
		for _, item := range e.GratitudeItems {
			fmt.Fprintf(&b, "  * %s\n", item)
		}
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, "\nTags: %s", strings.Join(e.Tags, ", "))
	}
	return b.String()
}
