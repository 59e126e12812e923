package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/patternbook/patternbook/internal/types"
)

// htmlPage mirrors the Markdown layout for the serve command's index
// page: category sections in canonical order, entries in insertion
// order, sublists in the fixed Applicability / Known uses / Notes /
// Related order.
const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Sections}}<section>
<h2>{{.Heading}}</h2>
{{range .Entries}}<article id="{{.Name}}">
<h3>{{.Name}}</h3>
<p>{{.Summary}}</p>
{{template "list" dict "Label" "Applicability" "Items" .Applicability}}{{template "list" dict "Label" "Known uses" "Items" .KnownUses}}{{template "list" dict "Label" "Notes" "Items" .Notes}}{{template "list" dict "Label" "Related" "Items" .Related}}</article>
{{end}}</section>
{{end}}</body>
</html>
{{define "list"}}{{if .Items}}<h4>{{.Label}}</h4>
<ul>
{{range .Items}}<li>{{.}}</li>
{{end}}</ul>
{{end}}{{end}}`

type htmlSection struct {
	Heading string
	Entries []*types.PatternEntry
}

type htmlDocument struct {
	Title    string
	Sections []htmlSection
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"dict": func(pairs ...interface{}) (map[string]interface{}, error) {
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("dict needs key/value pairs, got %d args", len(pairs))
		}
		m := make(map[string]interface{}, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
}).Parse(htmlPage))

// HTML renders entries into a standalone HTML document with the same
// section structure as Markdown. Output is deterministic for identical
// input.
func HTML(entries []*types.PatternEntry, opts Options) ([]byte, error) {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	doc := htmlDocument{Title: title}
	for _, cat := range selectedCategories(opts) {
		section := filterCategory(entries, cat)
		if len(section) == 0 {
			continue
		}
		doc.Sections = append(doc.Sections, htmlSection{
			Heading: sectionHeading(cat),
			Entries: section,
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("rendering HTML document: %w", err)
	}
	return buf.Bytes(), nil
}
