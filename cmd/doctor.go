package cmd

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/patternbook/patternbook/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose catalog and configuration problems",
	Long: `Diagnose the working directory's patternbook setup. The doctor
command checks:

- Configuration file presence and YAML well-formedness
- Catalog source files: existence, format, per-record validity
- Cross-reference health across all sources
- Server port availability for the serve command

Examples:
  patternbook doctor                # Full diagnosis
  patternbook doctor --format json  # Output as JSON for tooling`,
	RunE: runDoctor,
}

var doctorFormat string

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().StringVar(&doctorFormat, "format", "text", "Output format (text, json)")
}

// DiagnosticResult represents the result of a diagnostic check
type DiagnosticResult struct {
	Name    string `json:"name" yaml:"name"`
	Status  string `json:"status" yaml:"status"` // "ok", "warning", "error"
	Message string `json:"message" yaml:"message"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	var results []DiagnosticResult

	results = append(results, checkConfigFile())

	cfg, err := config.Load()
	if err != nil {
		results = append(results, DiagnosticResult{
			Name:    "configuration",
			Status:  "error",
			Message: err.Error(),
		})
		return printDiagnostics(results)
	}
	results = append(results, DiagnosticResult{
		Name:    "configuration",
		Status:  "ok",
		Message: "configuration loads and validates",
	})

	results = append(results, checkSources(cfg)...)
	results = append(results, checkPort(cfg))

	return printDiagnostics(results)
}

// checkConfigFile verifies the config file parses as YAML at all, before
// viper's unmarshalling gets a chance to paper over structure problems.
func checkConfigFile() DiagnosticResult {
	const name = "config file"

	data, err := os.ReadFile(".patternbook.yml")
	if os.IsNotExist(err) {
		return DiagnosticResult{Name: name, Status: "warning", Message: ".patternbook.yml not found, using defaults (run 'patternbook init')"}
	}
	if err != nil {
		return DiagnosticResult{Name: name, Status: "error", Message: err.Error()}
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return DiagnosticResult{Name: name, Status: "error", Message: fmt.Sprintf("not valid YAML: %v", err)}
	}
	return DiagnosticResult{Name: name, Status: "ok", Message: ".patternbook.yml is well-formed"}
}

func checkSources(cfg *config.Config) []DiagnosticResult {
	var results []DiagnosticResult

	cat, violations, err := loadCatalog(cfg)
	if err != nil {
		return append(results, DiagnosticResult{
			Name:    "catalog sources",
			Status:  "error",
			Message: err.Error(),
		})
	}

	for _, source := range cfg.Catalog.Sources {
		if _, statErr := os.Stat(source); os.IsNotExist(statErr) {
			results = append(results, DiagnosticResult{
				Name:    "source " + source,
				Status:  "warning",
				Message: "file does not exist",
			})
		} else {
			results = append(results, DiagnosticResult{
				Name:    "source " + source,
				Status:  "ok",
				Message: "readable",
			})
		}
	}

	if len(violations) > 0 {
		results = append(results, DiagnosticResult{
			Name:    "records",
			Status:  "warning",
			Message: fmt.Sprintf("%d record(s) rejected during load", len(violations)),
		})
	} else {
		results = append(results, DiagnosticResult{
			Name:    "records",
			Status:  "ok",
			Message: fmt.Sprintf("%d entries loaded", cat.Count()),
		})
	}

	dangling := 0
	for range cat.ValidateAll() {
		dangling++
	}
	if dangling > 0 {
		results = append(results, DiagnosticResult{
			Name:    "cross-references",
			Status:  "warning",
			Message: fmt.Sprintf("%d violation(s), run 'patternbook validate' for details", dangling),
		})
	} else {
		results = append(results, DiagnosticResult{
			Name:    "cross-references",
			Status:  "ok",
			Message: "all related-pattern references resolve",
		})
	}

	return results
}

func checkPort(cfg *config.Config) DiagnosticResult {
	name := fmt.Sprintf("port %d", cfg.Server.Port)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
	if err == nil {
		conn.Close()
		return DiagnosticResult{Name: name, Status: "warning", Message: "already in use; serve will fail or pick another port"}
	}
	return DiagnosticResult{Name: name, Status: "ok", Message: "available"}
}

func printDiagnostics(results []DiagnosticResult) error {
	if doctorFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			marker := "✓"
			switch r.Status {
			case "warning":
				marker = "!"
			case "error":
				marker = "✗"
			}
			fmt.Printf("%s %-24s %s\n", marker, r.Name, r.Message)
		}
	}

	for _, r := range results {
		if r.Status == "error" {
			return fmt.Errorf("doctor found errors")
		}
	}
	return nil
}
