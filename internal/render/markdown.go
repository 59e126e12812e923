// Package render serializes a pattern catalog, or a filtered subset of
// one, into documentation documents. Rendering is pure and deterministic:
// identical input always yields byte-identical output, which the
// round-trip tests rely on.
//
// The Markdown layout is fixed: the document title, one H2 section per
// category in canonical category order, one H3 per entry in insertion
// order, the summary as the body paragraph, then Applicability, Known
// uses, Notes and Related as bulleted sublists in that order. Empty
// categories and empty sublists are omitted.
package render

import (
	"bytes"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/patternbook/patternbook/internal/types"
)

// DefaultTitle is the document title used when Options.Title is empty.
const DefaultTitle = "Pattern Catalog"

// Options control document-level rendering knobs.
type Options struct {
	// Title overrides the top-level document heading.
	Title string
	// Categories restricts output to the given categories. Nil means all.
	Categories []types.Category
}

var titleCaser = cases.Title(language.English)

// sectionHeading builds the H2 text for a category ("Creational
// Patterns"). Casing is normalized so filters supplied in any case
// produce identical documents.
func sectionHeading(cat types.Category) string {
	return titleCaser.String(strings.ToLower(string(cat)) + " patterns")
}

// Markdown renders entries grouped by category into a Markdown document.
// Entries must be supplied in catalog insertion order; grouping preserves
// that order within each category section.
func Markdown(entries []*types.PatternEntry, opts Options) []byte {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	var buf bytes.Buffer
	buf.WriteString("# " + title + "\n")

	for _, cat := range selectedCategories(opts) {
		section := filterCategory(entries, cat)
		if len(section) == 0 {
			continue
		}

		buf.WriteString("\n## " + sectionHeading(cat) + "\n")
		for _, entry := range section {
			writeEntry(&buf, entry)
		}
	}

	return buf.Bytes()
}

func writeEntry(buf *bytes.Buffer, entry *types.PatternEntry) {
	buf.WriteString("\n### " + entry.Name + "\n")
	buf.WriteString("\n" + entry.Summary + "\n")

	writeList(buf, "Applicability", entry.Applicability)
	writeList(buf, "Known uses", entry.KnownUses)
	writeList(buf, "Notes", entry.Notes)
	writeList(buf, "Related", entry.Related)
}

func writeList(buf *bytes.Buffer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	buf.WriteString("\n**" + label + ":**\n\n")
	for _, item := range items {
		buf.WriteString("- " + item + "\n")
	}
}

func selectedCategories(opts Options) []types.Category {
	if len(opts.Categories) == 0 {
		return types.Categories
	}
	// Preserve canonical order regardless of how the filter was given.
	selected := make([]types.Category, 0, len(opts.Categories))
	for _, cat := range types.Categories {
		for _, want := range opts.Categories {
			if cat == want {
				selected = append(selected, cat)
				break
			}
		}
	}
	return selected
}

func filterCategory(entries []*types.PatternEntry, cat types.Category) []*types.PatternEntry {
	var section []*types.PatternEntry
	for _, entry := range entries {
		if entry.Category == cat {
			section = append(section, entry)
		}
	}
	return section
}
