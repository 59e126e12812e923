package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/patternbook/patternbook/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the catalog's fields and cross-references",
	Long: `Validate every catalog entry: required fields, category membership
and related-pattern references. Dangling references (entries naming a
pattern that is no longer in the catalog) are reported per referencing
entry, never silently pruned.

Load-time problems (malformed records, duplicates across source files)
are reported alongside the catalog-level violations. The command exits
non-zero when anything is wrong, making it suitable for CI.

Examples:
  patternbook validate
  patternbook validate --catalog patterns.yaml --catalog extra.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cat, loadViolations, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	problems := 0
	for _, v := range loadViolations {
		fmt.Fprintf(os.Stderr, "load: %s\n", v.String())
		problems++
	}

	for name, verr := range cat.ValidateAll() {
		fmt.Fprintf(os.Stderr, "catalog: %s: %v\n", name, verr)
		problems++
	}

	if problems > 0 {
		return fmt.Errorf("validation failed: %d problem(s)", problems)
	}

	fmt.Printf("Catalog valid: %d entries, no violations.\n", cat.Count())
	return nil
}
