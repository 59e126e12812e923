package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/patternbook/patternbook/internal/version"
)

var (
	versionFormat   string
	versionDetailed bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for patternbook including the semantic
version, git commit hash, Go version and target platform.

Examples:
  patternbook version               # Show short version
  patternbook version --detailed    # Show detailed version info
  patternbook version --format json # Output as JSON`,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "Output format (text, json)")
	versionCmd.Flags().BoolVarP(&versionDetailed, "detailed", "d", false, "Show detailed build information")
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	if versionFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(version.GetBuildInfo())
	}

	if versionDetailed {
		fmt.Println(version.GetDetailedVersion())
		return nil
	}

	fmt.Printf("patternbook %s\n", version.GetShortVersion())
	return nil
}
