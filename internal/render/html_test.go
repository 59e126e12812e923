package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/patternbook/patternbook/internal/types"
)

// collectText gathers the text content of every element with the given
// tag, in document order.
func collectText(t *testing.T, doc []byte, tag string) []string {
	t.Helper()
	root, err := html.Parse(bytes.NewReader(doc))
	require.NoError(t, err)

	var texts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			var sb strings.Builder
			var text func(*html.Node)
			text = func(c *html.Node) {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
				for child := c.FirstChild; child != nil; child = child.NextSibling {
					text(child)
				}
			}
			text(n)
			texts = append(texts, strings.TrimSpace(sb.String()))
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return texts
}

func TestHTMLDocumentStructure(t *testing.T) {
	doc, err := HTML(sampleEntries(), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Pattern Catalog"}, collectText(t, doc, "h1"))
	assert.Equal(t, []string{"Creational Patterns", "Behavioral Patterns"}, collectText(t, doc, "h2"))
	assert.Equal(t, []string{"Builder", "Observer"}, collectText(t, doc, "h3"))
	assert.Equal(t, []string{"Applicability", "Related"}, collectText(t, doc, "h4"))
	assert.Equal(t, []string{"one", "two", "Observer"}, collectText(t, doc, "li"))
}

func TestHTMLEscapesContent(t *testing.T) {
	entries := []*types.PatternEntry{
		{
			Name:     "Proxy",
			Category: types.CategoryStructural,
			Summary:  "Controls access to <b>another</b> object.",
		},
	}
	doc, err := HTML(entries, Options{})
	require.NoError(t, err)

	assert.NotContains(t, string(doc), "<b>another</b>")
	paragraphs := collectText(t, doc, "p")
	require.Len(t, paragraphs, 1)
	assert.Equal(t, "Controls access to <b>another</b> object.", paragraphs[0])
}

func TestHTMLCustomTitle(t *testing.T) {
	doc, err := HTML(nil, Options{Title: "Team Handbook"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Team Handbook"}, collectText(t, doc, "title"))
	assert.Equal(t, []string{"Team Handbook"}, collectText(t, doc, "h1"))
	assert.Empty(t, collectText(t, doc, "h2"))
}

func TestHTMLDeterministic(t *testing.T) {
	entries := sampleEntries()
	first, err := HTML(entries, Options{})
	require.NoError(t, err)
	second, err := HTML(entries, Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
