// Package cmd provides the command-line interface for patternbook with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --catalog, etc.) - highest priority
//	2. PATTERNBOOK_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (PATTERNBOOK_SERVER_PORT, etc.)
//	4. Configuration files (.patternbook.yml) - lowest priority
//
// Environment Variables:
//
//	PATTERNBOOK_CONFIG_FILE: Path to custom configuration file
//	PATTERNBOOK_SERVER_PORT: Override server port
//	PATTERNBOOK_CATALOG_SOURCES: Override catalog source files
//	And more following the PATTERNBOOK_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "patternbook",
	Short: "A catalog toolchain for software design patterns",
	Long: `Patternbook maintains a validated catalog of software design patterns:
load pattern records from YAML or Markdown, query them, and render them
back into deterministic documentation.

Key Features:
  • Catalog loading with per-record validation and partial success
  • Name, category and substring queries
  • Deterministic Markdown and HTML rendering
  • Dangling cross-reference detection
  • Live-reloading documentation server

Quick Start:
  patternbook init                Scaffold a starter catalog file
  patternbook list                List all catalog entries
  patternbook validate            Check cross-references and fields
  patternbook render              Write the documentation document
  patternbook serve               Serve the catalog with live reload

Command Aliases (for faster typing):
  list (l), show (g), search (f), render (r), serve (s), watch (w)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .patternbook.yml, can also use PATTERNBOOK_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringSlice("catalog", nil, "catalog source file(s), repeatable")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("catalog.sources", rootCmd.PersistentFlags().Lookup("catalog"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. PATTERNBOOK_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .patternbook.yml in current directory
//
// The function also enables automatic environment variable binding for
// all configuration values with the PATTERNBOOK_ prefix
// (e.g., PATTERNBOOK_SERVER_PORT=8120).
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("PATTERNBOOK_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".patternbook")
	}

	viper.SetEnvPrefix("PATTERNBOOK")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or malformed config file degrades to defaults without failing
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
