package cmd

import (
	"fmt"
	"os"

	"github.com/patternbook/patternbook/internal/catalog"
	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/errors"
	"github.com/patternbook/patternbook/internal/importer"
)

// loadCatalog loads every configured catalog source into one catalog.
// Missing files are warnings, not failures, so a fresh project can run
// list/render before its first source exists. Per-record violations are
// returned for reporting; in strict mode the caller turns them into a
// failure.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, []errors.Violation, error) {
	cat := catalog.New()
	var violations []errors.Violation

	for _, source := range cfg.Catalog.Sources {
		if _, err := os.Stat(source); os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: catalog source %s does not exist\n", source)
			continue
		}

		result, err := importer.LoadFileInto(cat, source)
		if err != nil {
			return nil, nil, fmt.Errorf("loading %s: %w", source, err)
		}
		for _, v := range result.Violations {
			violations = append(violations, errors.Violation{
				Location: source + ": " + v.Location,
				Err:      v.Err,
			})
		}
	}

	return cat, violations, nil
}

// reportViolations prints collected violations to stderr and returns an
// error when strict mode escalates them.
func reportViolations(violations []errors.Violation, strict bool) error {
	for _, v := range violations {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", v.String())
	}
	if strict && len(violations) > 0 {
		return fmt.Errorf("%d record(s) rejected in strict mode", len(violations))
	}
	return nil
}
