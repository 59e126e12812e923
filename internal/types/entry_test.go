package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
		ok       bool
	}{
		{"Creational", CategoryCreational, true},
		{"creational", CategoryCreational, true},
		{"BEHAVIORAL", CategoryBehavioral, true},
		{"Structural", CategoryStructural, true},
		{"other", CategoryOther, true},
		{"", "", false},
		{"Functional", "", false},
		{"Creational ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cat, ok := ParseCategory(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, cat)
			}
		})
	}
}

func TestCategoryValid(t *testing.T) {
	for _, cat := range Categories {
		assert.True(t, cat.Valid(), "category %s should be valid", cat)
	}
	assert.False(t, Category("Functional").Valid())
	assert.False(t, Category("").Valid())
}

func TestPatternEntryClone(t *testing.T) {
	entry := &PatternEntry{
		Name:          "Builder",
		Category:      CategoryCreational,
		Summary:       "Separates construction from representation.",
		Applicability: []string{"multi-step construction"},
		Related:       []string{"Abstract Factory"},
	}

	clone := entry.Clone()
	assert.Equal(t, entry, clone)

	// Mutating the clone must not leak into the original
	clone.Applicability = append(clone.Applicability, "extra")
	clone.Related[0] = "Prototype"
	assert.Equal(t, []string{"multi-step construction"}, entry.Applicability)
	assert.Equal(t, []string{"Abstract Factory"}, entry.Related)
}

func TestPatternEntryCloneNil(t *testing.T) {
	var entry *PatternEntry
	assert.Nil(t, entry.Clone())
}
