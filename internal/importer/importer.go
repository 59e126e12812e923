// Package importer loads pattern catalogs from structured documents:
// YAML catalog files and the renderer's own Markdown output. Malformed
// records are rejected individually with a collected violation list while
// valid records are still added (partial success).
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/patternbook/patternbook/internal/catalog"
	"github.com/patternbook/patternbook/internal/errors"
	"github.com/patternbook/patternbook/internal/types"
)

// Result is the outcome of a catalog load: the populated catalog, the
// number of records accepted, and the per-record violations for those
// rejected. Violations never abort the whole load.
type Result struct {
	Catalog    *catalog.Catalog
	Added      int
	Violations []errors.Violation
}

// document is the YAML catalog file shape.
type document struct {
	Title    string   `yaml:"title"`
	Patterns []record `yaml:"patterns"`
}

// record is one raw pattern record before validation. Category stays a
// plain string here so unknown categories surface as InvalidCategory
// violations instead of decode failures.
type record struct {
	Name          string   `yaml:"name"`
	Category      string   `yaml:"category"`
	Summary       string   `yaml:"summary"`
	Applicability []string `yaml:"applicability,omitempty"`
	KnownUses     []string `yaml:"known_uses,omitempty"`
	Notes         []string `yaml:"notes,omitempty"`
	Related       []string `yaml:"related,omitempty"`
}

// LoadFile loads a catalog from path, dispatching on the file extension:
// .yaml/.yml for YAML catalogs, .md/.markdown for rendered documents.
func LoadFile(path string) (*Result, error) {
	return LoadFileInto(catalog.New(), path)
}

// LoadFileInto loads path into an existing catalog, so multiple source
// files can be merged. Names clashing across files surface as
// DuplicateName violations against the later file.
func LoadFileInto(c *catalog.Catalog, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAMLInto(c, f)
	case ".md", ".markdown":
		return LoadMarkdownInto(c, f)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", filepath.Ext(path))
	}
}

// LoadYAML loads a catalog from a YAML document. A syntax error in the
// document itself fails the whole load; individual record problems are
// collected and the remaining records still added.
func LoadYAML(r io.Reader) (*Result, error) {
	return LoadYAMLInto(catalog.New(), r)
}

// LoadYAMLInto is LoadYAML targeting an existing catalog.
func LoadYAMLInto(c *catalog.Catalog, r io.Reader) (*Result, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding catalog document: %w", err)
	}

	result := &Result{Catalog: c}
	for i, rec := range doc.Patterns {
		location := recordLocation(i, rec.Name)
		entry, cerr := rec.toEntry()
		if cerr != nil {
			result.Violations = append(result.Violations, errors.Violation{Location: location, Err: cerr})
			continue
		}
		result.addEntry(location, entry)
	}
	return result, nil
}

// toEntry converts a raw record into a PatternEntry, rejecting unknown
// categories. Field-level emptiness is left to catalog.Add so both load
// paths share one validation.
func (rec record) toEntry() (*types.PatternEntry, *errors.CatalogError) {
	cat, ok := types.ParseCategory(rec.Category)
	if !ok {
		if rec.Category == "" {
			return nil, errors.ErrEmptyField(rec.Name, "category")
		}
		return nil, errors.ErrInvalidCategory(rec.Name, rec.Category)
	}
	return &types.PatternEntry{
		Name:          rec.Name,
		Category:      cat,
		Summary:       rec.Summary,
		Applicability: rec.Applicability,
		KnownUses:     rec.KnownUses,
		Notes:         rec.Notes,
		Related:       rec.Related,
	}, nil
}

// addEntry attempts the catalog insertion, converting mutation errors
// (duplicate names, field validation) into collected violations.
func (r *Result) addEntry(location string, entry *types.PatternEntry) {
	if err := r.Catalog.Add(entry); err != nil {
		ce, ok := err.(*errors.CatalogError)
		if !ok {
			ce = &errors.CatalogError{Message: err.Error()}
		}
		r.Violations = append(r.Violations, errors.Violation{Location: location, Err: ce})
		return
	}
	r.Added++
}

func recordLocation(index int, name string) string {
	if name == "" {
		return fmt.Sprintf("patterns[%d]", index)
	}
	return fmt.Sprintf("patterns[%d] (%s)", index, name)
}

// MarshalYAML serializes entries back into the YAML catalog file format,
// suitable for re-loading with LoadYAML.
func MarshalYAML(title string, entries []*types.PatternEntry) ([]byte, error) {
	doc := document{Title: title}
	for _, entry := range entries {
		doc.Patterns = append(doc.Patterns, record{
			Name:          entry.Name,
			Category:      string(entry.Category),
			Summary:       entry.Summary,
			Applicability: entry.Applicability,
			KnownUses:     entry.KnownUses,
			Notes:         entry.Notes,
			Related:       entry.Related,
		})
	}
	return yaml.Marshal(&doc)
}
