package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternbook/patternbook/internal/catalog"
	"github.com/patternbook/patternbook/internal/errors"
	"github.com/patternbook/patternbook/internal/types"
)

const sampleYAML = `title: Team Patterns
patterns:
  - name: Builder
    category: creational
    summary: Separates construction from representation.
    applicability:
      - complex object graphs
    related:
      - Abstract Factory
  - name: Observer
    category: behavioral
    summary: Notifies dependents of state changes.
`

func TestLoadYAML(t *testing.T) {
	result, err := LoadYAML(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Added)
	assert.Empty(t, result.Violations)

	builder, ok := result.Catalog.Get("Builder")
	require.True(t, ok)
	assert.Equal(t, types.CategoryCreational, builder.Category)
	assert.Equal(t, []string{"complex object graphs"}, builder.Applicability)
	assert.Equal(t, []string{"Abstract Factory"}, builder.Related)
}

func TestLoadYAMLPartialSuccess(t *testing.T) {
	doc := `patterns:
  - name: Builder
    category: creational
    summary: Fine.
  - name: Mystery
    category: quantum
    summary: Unknown category.
  - name: Builder
    category: creational
    summary: Second copy.
  - name: ""
    category: behavioral
    summary: Nameless.
`
	result, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Catalog.Count())
	require.Len(t, result.Violations, 3)

	assert.Equal(t, "patterns[1] (Mystery)", result.Violations[0].Location)
	assert.True(t, errors.IsKind(result.Violations[0].Err, errors.KindInvalidCategory))

	assert.Equal(t, "patterns[2] (Builder)", result.Violations[1].Location)
	assert.True(t, errors.IsDuplicateName(result.Violations[1].Err))

	assert.Equal(t, "patterns[3]", result.Violations[2].Location)
	assert.True(t, errors.IsKind(result.Violations[2].Err, errors.KindEmptyField))

	// The first Builder record survives untouched.
	kept, ok := result.Catalog.Get("Builder")
	require.True(t, ok)
	assert.Equal(t, "Fine.", kept.Summary)
}

func TestLoadYAMLEmptyCategory(t *testing.T) {
	doc := `patterns:
  - name: Drifter
    summary: No category at all.
`
	result, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Zero(t, result.Added)
	require.Len(t, result.Violations, 1)
	assert.True(t, errors.IsKind(result.Violations[0].Err, errors.KindEmptyField))
}

func TestLoadYAMLSyntaxError(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("patterns: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding catalog document")
}

func TestLoadYAMLUnknownField(t *testing.T) {
	doc := `patterns:
  - name: Builder
    category: creational
    summary: Fine.
    severity: high
`
	_, err := LoadYAML(strings.NewReader(doc))
	require.Error(t, err)
}

func TestLoadYAMLEmptyDocument(t *testing.T) {
	result, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, result.Added)
	assert.Zero(t, result.Catalog.Count())
}

func TestLoadFileInto(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "base.yaml")
	require.NoError(t, os.WriteFile(first, []byte(sampleYAML), 0o644))

	second := filepath.Join(dir, "extra.yml")
	extra := `patterns:
  - name: Adapter
    category: structural
    summary: Converts one interface into another.
  - name: Builder
    category: creational
    summary: Clashes with the base file.
`
	require.NoError(t, os.WriteFile(second, []byte(extra), 0o644))

	cat := catalog.New()
	result, err := LoadFileInto(cat, first)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)

	result, err = LoadFileInto(cat, second)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	require.Len(t, result.Violations, 1)
	assert.True(t, errors.IsDuplicateName(result.Violations[0].Err))

	assert.Equal(t, 3, cat.Count())
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported catalog format")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestYAMLRoundTrip(t *testing.T) {
	result, err := LoadYAML(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	out, err := MarshalYAML("Team Patterns", result.Catalog.All())
	require.NoError(t, err)

	reloaded, err := LoadYAML(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Empty(t, reloaded.Violations)
	assert.Equal(t, result.Catalog.All(), reloaded.Catalog.All())
}
