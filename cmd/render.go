package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/importer"
	"github.com/patternbook/patternbook/internal/query"
	"github.com/patternbook/patternbook/internal/render"
	"github.com/patternbook/patternbook/internal/types"
)

var renderCmd = &cobra.Command{
	Use:     "render",
	Aliases: []string{"r"},
	Short:   "Render the catalog to a documentation document",
	Long: `Render the catalog into a deterministic documentation document:
category sections in fixed order, entries in insertion order, and the
entry sublists in a fixed layout. Identical catalog state always
produces byte-identical output, so the result diffs cleanly against a
committed corpus.

Markdown output can be re-imported with the same tool, round-tripping
every entry.

Examples:
  patternbook render                      # Markdown to the configured output
  patternbook render -o -                 # Markdown to stdout
  patternbook render --format html -o out.html
  patternbook render --format yaml -o patterns.yaml
  patternbook render --category Creational -o -`,
	RunE: runRender,
}

var (
	renderOutput   string
	renderFormat   string
	renderCategory string
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file ('-' for stdout; default from config)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "Output format (markdown|html|yaml; default from config)")
	renderCmd.Flags().StringVarP(&renderCategory, "category", "c", "", "Restrict to one category")
}

func runRender(cmd *cobra.Command, args []string) error {
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

	opts := render.Options{Title: cfg.Render.Title}
	if renderCategory != "" {
		category, ok := types.ParseCategory(renderCategory)
		if !ok {
			return fmt.Errorf("unknown category: %s", renderCategory)
		}
		opts.Categories = []types.Category{category}
	}

	entries := query.New(cat).All()

	format := renderFormat
	if format == "" {
		format = cfg.Render.Format
	}

	var doc []byte
	switch strings.ToLower(format) {
	case "markdown", "md":
		doc = render.Markdown(entries, opts)
	case "html":
		doc, err = render.HTML(entries, opts)
		if err != nil {
			return err
		}
	case "yaml":
		doc, err = importer.MarshalYAML(opts.Title, entries)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported render format: %s", format)
	}

	output := renderOutput
	if output == "" {
		output = cfg.Render.Output
	}
	if output == "-" {
		_, err = os.Stdout.Write(doc)
		return err
	}

	if err := os.WriteFile(output, doc, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Printf("Rendered %d entries to %s\n", len(entries), output)
	return nil
}
