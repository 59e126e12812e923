package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"i"},
	Short:   "Scaffold a starter catalog",
	Long: `Create a starter catalog file and a .patternbook.yml configuration
in the current directory. Existing files are never overwritten unless
--force is given.

Examples:
  patternbook init
  patternbook init --force`,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
}

const starterCatalog = `title: Pattern Catalog
patterns:
  - name: Builder
    category: Creational
    summary: Separates the construction of a complex object from its representation.
    applicability:
      - Building objects whose construction takes multiple ordered steps.
    known_uses:
      - Configuration object assembly
    related:
      - Abstract Factory
  - name: Abstract Factory
    category: Creational
    summary: Provides an interface for creating families of related objects without naming their concrete classes.
    related:
      - Builder
  - name: Observer
    category: Behavioral
    summary: Defines a one-to-many dependency so dependents are notified when the subject changes state.
    known_uses:
      - Event buses and UI data binding
`

const starterConfig = `catalog:
  sources:
    - patterns.yaml

render:
  output: design-patterns.md
  format: markdown
  title: Pattern Catalog

server:
  port: 8120
  host: localhost

watch:
  debounce_millis: 300

log:
  level: info
  format: text
`

func runInit(cmd *cobra.Command, args []string) error {
	files := []struct {
		name    string
		content string
	}{
		{"patterns.yaml", starterCatalog},
		{".patternbook.yml", starterConfig},
	}

	for _, f := range files {
		name, content := f.name, f.content
		if _, err := os.Stat(name); err == nil && !initForce {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", name)
			continue
		}
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		fmt.Printf("Created %s\n", name)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  patternbook list          # see the starter entries")
	fmt.Println("  patternbook render -o -   # render the catalog to stdout")
	fmt.Println("  patternbook serve         # browse with live reload")
	return nil
}
