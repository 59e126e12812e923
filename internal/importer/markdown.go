package importer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/patternbook/patternbook/internal/catalog"
	"github.com/patternbook/patternbook/internal/errors"
	"github.com/patternbook/patternbook/internal/types"
)

// LoadMarkdown parses a document in the renderer's Markdown layout back
// into a catalog. Rendering a catalog and re-importing the output yields
// the same (name, category, summary) tuples; the sublists survive the
// round trip too.
//
// Only the renderer's structure is recognized: H2 category sections, H3
// entry headings, a summary paragraph, and the fixed bold-labelled
// bulleted sublists. Anything else in the document is prose and ignored.
func LoadMarkdown(r io.Reader) (*Result, error) {
	return LoadMarkdownInto(catalog.New(), r)
}

// LoadMarkdownInto is LoadMarkdown targeting an existing catalog.
func LoadMarkdownInto(c *catalog.Catalog, r io.Reader) (*Result, error) {
	result := &Result{Catalog: c}
	parser := markdownParser{result: result}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parser.line(lineNo, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading markdown document: %w", err)
	}
	parser.flush()
	return result, nil
}

// markdownParser is a line-oriented state machine over the renderer's
// output format.
type markdownParser struct {
	result *Result

	category    types.Category
	categoryOK  bool
	categoryRaw string

	current     *types.PatternEntry
	currentLine int
	list        *[]string
}

func (p *markdownParser) line(n int, raw string) {
	line := strings.TrimRight(raw, " \t")

	switch {
	case strings.HasPrefix(line, "### "):
		p.flush()
		p.current = &types.PatternEntry{
			Name:     strings.TrimSpace(strings.TrimPrefix(line, "### ")),
			Category: p.category,
		}
		p.currentLine = n
		p.list = nil

	case strings.HasPrefix(line, "## "):
		p.flush()
		heading := strings.TrimSpace(strings.TrimPrefix(line, "## "))
		p.categoryRaw = heading
		p.category, p.categoryOK = parseSectionHeading(heading)

	case strings.HasPrefix(line, "# "):
		p.flush()

	case strings.HasPrefix(line, "**") && strings.HasSuffix(line, ":**"):
		label := strings.TrimSuffix(strings.TrimPrefix(line, "**"), ":**")
		p.list = p.listTarget(label)

	case strings.HasPrefix(line, "- "):
		if p.current != nil && p.list != nil {
			*p.list = append(*p.list, strings.TrimPrefix(line, "- "))
		}

	case strings.TrimSpace(line) == "":
		// Paragraph break; list assignment persists until the next label.

	default:
		// Body text: the first paragraph after the entry heading is the
		// summary. Continuation lines of that paragraph are joined.
		if p.current == nil || p.list != nil {
			return
		}
		text := strings.TrimSpace(line)
		if p.current.Summary == "" {
			p.current.Summary = text
		} else {
			p.current.Summary += " " + text
		}
	}
}

func (p *markdownParser) listTarget(label string) *[]string {
	if p.current == nil {
		return nil
	}
	switch label {
	case "Applicability":
		return &p.current.Applicability
	case "Known uses":
		return &p.current.KnownUses
	case "Notes":
		return &p.current.Notes
	case "Related":
		return &p.current.Related
	}
	return nil
}

// flush finalizes the in-progress entry, carrying category problems as
// per-record violations so one bad section heading rejects only its own
// entries.
func (p *markdownParser) flush() {
	if p.current == nil {
		return
	}
	entry := p.current
	location := fmt.Sprintf("line %d (%s)", p.currentLine, entry.Name)
	p.current = nil
	p.list = nil

	if !p.categoryOK {
		p.result.Violations = append(p.result.Violations, errors.Violation{
			Location: location,
			Err:      errors.ErrInvalidCategory(entry.Name, p.categoryRaw),
		})
		return
	}
	p.result.addEntry(location, entry)
}

// parseSectionHeading resolves an H2 heading like "Creational Patterns"
// back to its category, tolerating case drift introduced by hand edits.
func parseSectionHeading(heading string) (types.Category, bool) {
	name := heading
	if idx := strings.LastIndex(strings.ToLower(name), " patterns"); idx >= 0 && idx == len(name)-len(" patterns") {
		name = name[:idx]
	}
	return types.ParseCategory(strings.TrimSpace(name))
}
