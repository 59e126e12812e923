package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternbook/patternbook/internal/catalog"
	"github.com/patternbook/patternbook/internal/types"
)

func seededCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	entries := []*types.PatternEntry{
		{Name: "Builder", Category: types.CategoryCreational, Summary: "Separates construction from representation."},
		{Name: "Adapter", Category: types.CategoryStructural, Summary: "Converts one interface into another."},
		{Name: "Observer", Category: types.CategoryBehavioral, Summary: "Notifies dependents of state changes."},
		{Name: "Abstract Factory", Category: types.CategoryCreational, Summary: "Creates families of related objects."},
	}
	for _, e := range entries {
		require.NoError(t, cat.Add(e))
	}
	return cat
}

func TestByName(t *testing.T) {
	q := New(seededCatalog(t))

	entry, ok := q.ByName("Builder")
	require.True(t, ok)
	assert.Equal(t, "Builder", entry.Name)
	assert.Equal(t, types.CategoryCreational, entry.Category)
}

func TestByNameCaseSensitive(t *testing.T) {
	q := New(seededCatalog(t))

	_, ok := q.ByName("builder")
	assert.False(t, ok, "lookup should be case-sensitive")

	_, ok = q.ByName("Missing")
	assert.False(t, ok)
}

func TestByCategory(t *testing.T) {
	q := New(seededCatalog(t))

	creational := q.ByCategory(types.CategoryCreational)
	require.Len(t, creational, 2)
	assert.Equal(t, "Builder", creational[0].Name)
	assert.Equal(t, "Abstract Factory", creational[1].Name)
}

func TestByCategoryEmpty(t *testing.T) {
	q := New(seededCatalog(t))

	other := q.ByCategory(types.CategoryOther)
	assert.NotNil(t, other)
	assert.Empty(t, other)
}

func TestAllInsertionOrder(t *testing.T) {
	q := New(seededCatalog(t))

	all := q.All()
	require.Len(t, all, 4)
	names := make([]string, len(all))
	for i, e := range all {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"Builder", "Adapter", "Observer", "Abstract Factory"}, names)
}

func TestSearch(t *testing.T) {
	q := New(seededCatalog(t))

	tests := []struct {
		name      string
		substring string
		expected  []string
	}{
		{
			name:      "matches name case-insensitively",
			substring: "BUILD",
			expected:  []string{"Builder"},
		},
		{
			name:      "matches summary",
			substring: "interface",
			expected:  []string{"Adapter"},
		},
		{
			name:      "multiple matches keep insertion order",
			substring: "o",
			expected:  []string{"Builder", "Adapter", "Observer", "Abstract Factory"},
		},
		{
			name:      "empty substring matches everything",
			substring: "",
			expected:  []string{"Builder", "Adapter", "Observer", "Abstract Factory"},
		},
		{
			name:      "no match yields empty non-nil slice",
			substring: "flyweight",
			expected:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := q.Search(tt.substring)
			require.NotNil(t, results)
			names := make([]string, 0, len(results))
			for _, e := range results {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestSearchSeq(t *testing.T) {
	q := New(seededCatalog(t))

	var names []string
	for entry := range q.SearchSeq("creates") {
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{"Abstract Factory"}, names)

	// Sequence is restartable and honors early stop.
	count := 0
	for range q.SearchSeq("") {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestQueryReturnsCopies(t *testing.T) {
	cat := seededCatalog(t)
	q := New(cat)

	entry, ok := q.ByName("Observer")
	require.True(t, ok)
	entry.Summary = "mutated"

	fresh, ok := q.ByName("Observer")
	require.True(t, ok)
	assert.Equal(t, "Notifies dependents of state changes.", fresh.Summary)
}
