package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/query"
	"github.com/patternbook/patternbook/internal/types"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List all catalog entries",
	Long: `List all pattern entries in the catalog with their metadata.
Shows entry names, categories and summaries, and optionally the
applicability and related-pattern details.

Examples:
  patternbook list                 # List all entries in table format
  patternbook list -f json         # Output as JSON (short flag)
  patternbook list -f yaml         # Output as YAML
  patternbook list -c Creational   # Only one category
  patternbook list -r              # Include related-pattern names`,
	RunE: runList,
}

var (
	listFlags       *StandardFlags
	listCategory    string
	listWithRelated bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listFlags = AddStandardFlags(listCmd, "output")

	listCmd.Flags().
		StringVarP(&listCategory, "category", "c", "", "Restrict to one category (Creational|Structural|Behavioral|Other)")
	listCmd.Flags().
		BoolVarP(&listWithRelated, "with-related", "r", false, "Include related-pattern names")
}

func runList(cmd *cobra.Command, args []string) error {
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

	q := query.New(cat)
	var entries []*types.PatternEntry
	if listCategory != "" {
		category, ok := types.ParseCategory(listCategory)
		if !ok {
			return fmt.Errorf("unknown category: %s", listCategory)
		}
		entries = q.ByCategory(category)
	} else {
		entries = q.All()
	}

	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	if err := listFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if err := ValidateFormatWithSuggestion(listFlags.Format, []string{"table", "json", "yaml"}); err != nil {
		return err
	}

	switch strings.ToLower(listFlags.Format) {
	case "json":
		return outputListJSON(entries)
	case "yaml":
		return outputListYAML(entries)
	default:
		return outputListTable(entries)
	}
}

func listItem(entry *types.PatternEntry) map[string]interface{} {
	item := map[string]interface{}{
		"name":     entry.Name,
		"category": entry.Category.String(),
		"summary":  entry.Summary,
	}
	if listWithRelated {
		item["related"] = entry.Related
	}
	return item
}

func outputListJSON(entries []*types.PatternEntry) error {
	output := make([]map[string]interface{}, len(entries))
	for i, entry := range entries {
		output[i] = listItem(entry)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func outputListYAML(entries []*types.PatternEntry) error {
	output := make([]map[string]interface{}, len(entries))
	for i, entry := range entries {
		output[i] = listItem(entry)
	}

	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(output)
}

func outputListTable(entries []*types.PatternEntry) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	header := "NAME\tCATEGORY\tSUMMARY"
	if listWithRelated {
		header += "\tRELATED"
	}
	fmt.Fprintln(w, header)

	separator := strings.Repeat("-", 4) + "\t" + strings.Repeat("-", 8) + "\t" + strings.Repeat("-", 7)
	if listWithRelated {
		separator += "\t" + strings.Repeat("-", 7)
	}
	fmt.Fprintln(w, separator)

	for _, entry := range entries {
		row := fmt.Sprintf("%s\t%s\t%s", entry.Name, entry.Category, entry.Summary)
		if listWithRelated {
			row += "\t" + strings.Join(entry.Related, ", ")
		}
		fmt.Fprintln(w, row)
	}

	fmt.Fprintf(w, "\nTotal: %d entries\n", len(entries))
	return nil
}
