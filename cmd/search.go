package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/query"
)

var searchCmd = &cobra.Command{
	Use:     "search [substring]",
	Aliases: []string{"f"},
	Short:   "Search entries by name or summary",
	Long: `Search the catalog for entries whose name or summary contains the
given substring, case-insensitively. Results keep catalog insertion
order. With no argument, every entry matches.

Examples:
  patternbook search builder
  patternbook search "construction"
  patternbook search            # everything, in insertion order`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cat, violations, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	if err := reportViolations(violations, cfg.Catalog.Strict); err != nil {
		return err
	}

	substring := ""
	if len(args) == 1 {
		substring = args[0]
	}

	matches := query.New(cat).Search(substring)
	if len(matches) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "NAME\tCATEGORY\tSUMMARY")
	for _, entry := range matches {
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Name, entry.Category, entry.Summary)
	}
	fmt.Fprintf(w, "\n%d match(es)\n", len(matches))
	return nil
}
