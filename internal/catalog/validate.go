package catalog

import (
	"iter"

	"github.com/patternbook/patternbook/internal/errors"
	"github.com/patternbook/patternbook/internal/types"
)

// ValidateEntry checks a single entry's shape: non-empty name, non-empty
// summary, category within the fixed enumeration. It does not resolve
// Related references; that needs the whole catalog and happens in
// ValidateAll.
func ValidateEntry(entry *types.PatternEntry) error {
	if entry.Name == "" {
		return errors.ErrEmptyField(entry.Name, "name")
	}
	if entry.Summary == "" {
		return errors.ErrEmptyField(entry.Name, "summary")
	}
	if !entry.Category.Valid() {
		return errors.ErrInvalidCategory(entry.Name, string(entry.Category))
	}
	return nil
}

// ValidateAll walks the catalog and yields one (entryName, violation)
// pair per problem found: dangling Related references and field-level
// drift. Duplicate names cannot occur here since Add enforces uniqueness.
//
// The returned sequence is lazy, finite and restartable; each range
// re-validates against a fresh snapshot, so a violation fixed between two
// passes disappears from the second.
func (c *Catalog) ValidateAll() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, entry := range c.All() {
			if err := ValidateEntry(entry); err != nil {
				if !yield(entry.Name, err) {
					return
				}
			}
			for _, target := range entry.Related {
				if c.has(target) {
					continue
				}
				if !yield(entry.Name, errors.ErrDanglingReference(entry.Name, target)) {
					return
				}
			}
		}
	}
}

// Violations drains ValidateAll into a collector, keyed by entry name.
// Convenience for the validate command's aggregate report.
func (c *Catalog) Violations() *errors.ViolationCollector {
	collector := errors.NewViolationCollector()
	for name, err := range c.ValidateAll() {
		var ce *errors.CatalogError
		if e, ok := err.(*errors.CatalogError); ok {
			ce = e
		} else {
			ce = &errors.CatalogError{Message: err.Error()}
		}
		collector.Add(name, ce)
	}
	return collector
}

func (c *Catalog) has(name string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	_, ok := c.entries[name]
	return ok
}
