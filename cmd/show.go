package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/query"
	"github.com/patternbook/patternbook/internal/types"
)

var showCmd = &cobra.Command{
	Use:     "show <name>",
	Aliases: []string{"g"},
	Short:   "Show one catalog entry in full",
	Long: `Show a single pattern entry with all of its fields: summary,
applicability, known uses, notes and related patterns.

The name match is exact and case-sensitive.

Examples:
  patternbook show Builder
  patternbook show Builder -f json
  patternbook show "Abstract Factory" -f yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var showFlags *StandardFlags

func init() {
	rootCmd.AddCommand(showCmd)
	showFlags = AddStandardFlags(showCmd, "output")
}

func runShow(cmd *cobra.Command, args []string) error {
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

	entry, ok := query.New(cat).ByName(args[0])
	if !ok {
		return fmt.Errorf("pattern not found: %s", args[0])
	}

	switch strings.ToLower(showFlags.Format) {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entry)
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		defer encoder.Close()
		return encoder.Encode(entry)
	default:
		printEntry(entry)
		return nil
	}
}

func printEntry(entry *types.PatternEntry) {
	fmt.Printf("%s (%s)\n", entry.Name, entry.Category)
	fmt.Printf("  %s\n", entry.Summary)
	printEntryList("Applicability", entry.Applicability)
	printEntryList("Known uses", entry.KnownUses)
	printEntryList("Notes", entry.Notes)
	printEntryList("Related", entry.Related)
}

func printEntryList(label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("  %s:\n", label)
	for _, item := range items {
		fmt.Printf("    - %s\n", item)
	}
}
