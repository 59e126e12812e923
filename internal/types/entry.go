// Package types provides common type definitions used throughout the
// patternbook CLI. This package contains shared types to avoid circular
// dependencies between packages.
package types

import "time"

// PatternEntry is one design pattern or paradigm record in the catalog.
// Name, Category and Summary are fixed at construction; Applicability,
// KnownUses and Notes are append-only and amended through the catalog.
type PatternEntry struct {
	// Name is the unique, human-readable identifier (e.g., "Builder")
	Name string `yaml:"name" json:"name"`
	// Category classifies the pattern (Creational, Structural, Behavioral, Other)
	Category Category `yaml:"category" json:"category"`
	// Summary is a short one-sentence description; required, non-empty
	Summary string `yaml:"summary" json:"summary"`
	// Applicability lists free-text use cases, in the order they were recorded
	Applicability []string `yaml:"applicability,omitempty" json:"applicability,omitempty"`
	// KnownUses lists domains where the pattern appears in the wild
	KnownUses []string `yaml:"known_uses,omitempty" json:"known_uses,omitempty"`
	// Notes holds free-text clarifying remarks
	Notes []string `yaml:"notes,omitempty" json:"notes,omitempty"`
	// Related names other catalog entries this pattern relates to.
	// These are weak references: resolved by name at validation time,
	// never ownership links.
	Related []string `yaml:"related,omitempty" json:"related,omitempty"`
}

// Clone returns a deep copy of the entry so that callers holding a
// snapshot cannot mutate catalog-owned state.
func (e *PatternEntry) Clone() *PatternEntry {
	if e == nil {
		return nil
	}
	dup := *e
	dup.Applicability = append([]string(nil), e.Applicability...)
	dup.KnownUses = append([]string(nil), e.KnownUses...)
	dup.Notes = append([]string(nil), e.Notes...)
	dup.Related = append([]string(nil), e.Related...)
	return &dup
}

// Category is the fixed classification of a pattern entry.
type Category string

const (
	CategoryCreational Category = "Creational"
	CategoryStructural Category = "Structural"
	CategoryBehavioral Category = "Behavioral"
	CategoryOther      Category = "Other"
)

// Categories lists all valid categories in their canonical document order.
// The renderer and validators rely on this ordering being stable.
var Categories = []Category{
	CategoryCreational,
	CategoryStructural,
	CategoryBehavioral,
	CategoryOther,
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCreational, CategoryStructural, CategoryBehavioral, CategoryOther:
		return true
	}
	return false
}

// String returns the canonical name of the category.
func (c Category) String() string {
	return string(c)
}

// ParseCategory resolves a category name case-insensitively. It returns
// false for names outside the fixed enumeration; unknown categories are
// never coerced to CategoryOther.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if equalFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// equalFold is an ASCII-only case-insensitive comparison. Category names
// are ASCII, so this avoids pulling unicode tables into the hot path.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// EventType represents the type of catalog change event.
type EventType string

const (
	EventTypeAdded   EventType = "added"
	EventTypeAmended EventType = "amended"
	EventTypeRemoved EventType = "removed"
)

// CatalogEvent represents a change in the pattern catalog, used for
// real-time notifications to watchers like the serve command's live
// reload socket.
type CatalogEvent struct {
	// Type indicates the kind of change (added, amended, removed)
	Type EventType
	// Entry contains the affected entry (a copy; may be nil for removals)
	Entry *PatternEntry
	// Timestamp records when the event occurred for ordering and filtering
	Timestamp time.Time
}
