package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternbook/patternbook/internal/types"
)

func sampleEntries() []*types.PatternEntry {
	return []*types.PatternEntry{
		{
			Name:          "Builder",
			Category:      types.CategoryCreational,
			Summary:       "Separates construction from representation.",
			Applicability: []string{"one", "two"},
			Related:       []string{"Observer"},
		},
		{
			Name:     "Observer",
			Category: types.CategoryBehavioral,
			Summary:  "Notifies dependents.",
		},
	}
}

func TestMarkdownDocument(t *testing.T) {
	got := Markdown(sampleEntries(), Options{})

	expected := "# Pattern Catalog\n" +
		"\n## Creational Patterns\n" +
		"\n### Builder\n" +
		"\nSeparates construction from representation.\n" +
		"\n**Applicability:**\n\n" +
		"- one\n" +
		"- two\n" +
		"\n**Related:**\n\n" +
		"- Observer\n" +
		"\n## Behavioral Patterns\n" +
		"\n### Observer\n" +
		"\nNotifies dependents.\n"

	assert.Equal(t, expected, string(got))
}

func TestMarkdownDeterministic(t *testing.T) {
	entries := sampleEntries()
	first := Markdown(entries, Options{})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Markdown(entries, Options{}))
	}
}

func TestMarkdownCustomTitle(t *testing.T) {
	got := Markdown(nil, Options{Title: "Team Handbook"})
	assert.Equal(t, "# Team Handbook\n", string(got))
}

func TestMarkdownOmitsEmptyCategories(t *testing.T) {
	entries := []*types.PatternEntry{
		{Name: "Adapter", Category: types.CategoryStructural, Summary: "Bridges interfaces."},
	}
	got := string(Markdown(entries, Options{}))

	assert.Contains(t, got, "## Structural Patterns")
	assert.NotContains(t, got, "## Creational Patterns")
	assert.NotContains(t, got, "## Behavioral Patterns")
	assert.NotContains(t, got, "## Other Patterns")
}

func TestMarkdownCategoryFilter(t *testing.T) {
	got := string(Markdown(sampleEntries(), Options{
		Categories: []types.Category{types.CategoryBehavioral},
	}))

	assert.Contains(t, got, "### Observer")
	assert.NotContains(t, got, "### Builder")
}

func TestMarkdownFilterKeepsCanonicalOrder(t *testing.T) {
	// Filter order must not affect section order.
	reversed := Markdown(sampleEntries(), Options{
		Categories: []types.Category{types.CategoryBehavioral, types.CategoryCreational},
	})
	canonical := Markdown(sampleEntries(), Options{
		Categories: []types.Category{types.CategoryCreational, types.CategoryBehavioral},
	})
	require.Equal(t, canonical, reversed)
}

func TestSectionHeading(t *testing.T) {
	assert.Equal(t, "Creational Patterns", sectionHeading(types.CategoryCreational))
	assert.Equal(t, "Other Patterns", sectionHeading(types.CategoryOther))
}
