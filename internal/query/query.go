// Package query provides read-only lookups over a pattern catalog. A
// Query never mutates the catalog it wraps; it acquires only the shared
// read lock through the catalog's accessors.
package query

import (
	"iter"
	"strings"

	"github.com/patternbook/patternbook/internal/catalog"
	"github.com/patternbook/patternbook/internal/types"
)

// Query is a read-only view over a catalog.
type Query struct {
	catalog *catalog.Catalog
}

// New creates a query layer over the given catalog.
func New(c *catalog.Catalog) *Query {
	return &Query{catalog: c}
}

// ByName retrieves an entry by exact, case-sensitive name.
func (q *Query) ByName(name string) (*types.PatternEntry, bool) {
	return q.catalog.Get(name)
}

// ByCategory returns the entries of one category in the order they were
// added to the catalog. A category with no entries yields an empty slice.
func (q *Query) ByCategory(cat types.Category) []*types.PatternEntry {
	return q.catalog.Category(cat)
}

// All returns every entry in catalog insertion order.
func (q *Query) All() []*types.PatternEntry {
	return q.catalog.All()
}

// Search returns entries whose name or summary contains the substring,
// case-insensitively, in catalog insertion order. The empty substring
// matches every entry.
func (q *Query) Search(substring string) []*types.PatternEntry {
	needle := strings.ToLower(substring)
	matched := make([]*types.PatternEntry, 0)
	for _, entry := range q.catalog.All() {
		if matchesEntry(entry, needle) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// SearchSeq is the streaming form of Search: a finite, restartable
// sequence over a snapshot taken when iteration starts.
func (q *Query) SearchSeq(substring string) iter.Seq[*types.PatternEntry] {
	needle := strings.ToLower(substring)
	return func(yield func(*types.PatternEntry) bool) {
		for _, entry := range q.catalog.All() {
			if !matchesEntry(entry, needle) {
				continue
			}
			if !yield(entry) {
				return
			}
		}
	}
}

func matchesEntry(entry *types.PatternEntry, lowerNeedle string) bool {
	if lowerNeedle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(entry.Name), lowerNeedle) ||
		strings.Contains(strings.ToLower(entry.Summary), lowerNeedle)
}
