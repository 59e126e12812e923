// Package config provides configuration management for patternbook using
// Viper for flexible configuration loading from files, environment
// variables, and command-line flags.
//
// The configuration system supports YAML files, environment variable
// overrides with the PATTERNBOOK_ prefix, validation, and path-safety
// checks. It manages catalog source files, render output settings, the
// serve command's HTTP options, and watch behavior.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Render  RenderConfig  `yaml:"render"`
	Server  ServerConfig  `yaml:"server"`
	Watch   WatchConfig   `yaml:"watch"`
	Log     LogConfig     `yaml:"log"`
}

type CatalogConfig struct {
	// Sources lists catalog files loaded at startup, in order.
	Sources []string `yaml:"sources"`
	// Strict aborts commands when a load reports any violation.
	Strict bool `yaml:"strict"`
}

type RenderConfig struct {
	Output string `yaml:"output"`
	Format string `yaml:"format"`
	Title  string `yaml:"title"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type WatchConfig struct {
	// DebounceMillis is the quiet period before a file change triggers a
	// reload.
	DebounceMillis int `yaml:"debounce_millis"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Handle sources set via viper (workaround for viper slice handling)
	if viper.IsSet("catalog.sources") && len(config.Catalog.Sources) == 0 {
		sources := viper.GetStringSlice("catalog.sources")
		if len(sources) > 0 {
			config.Catalog.Sources = sources
		}
	}
	if len(config.Catalog.Sources) == 0 {
		config.Catalog.Sources = []string{"patterns.yaml"}
	}

	if viper.IsSet("catalog.strict") {
		config.Catalog.Strict = viper.GetBool("catalog.strict")
	}

	// Render defaults
	if config.Render.Output == "" {
		config.Render.Output = "design-patterns.md"
	}
	if config.Render.Format == "" {
		config.Render.Format = "markdown"
	}

	// Server defaults
	if config.Server.Port == 0 {
		config.Server.Port = 8120
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}
	if viper.IsSet("server.allowed_origins") && len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")
	}

	// Handle debounce set via viper (underscored key does not unmarshal)
	if viper.IsSet("watch.debounce_millis") {
		config.Watch.DebounceMillis = viper.GetInt("watch.debounce_millis")
	}

	// Watch defaults
	if config.Watch.DebounceMillis <= 0 {
		config.Watch.DebounceMillis = 300
	}

	// Log defaults
	if config.Log.Level == "" {
		config.Log.Level = viper.GetString("log-level")
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for safety and correctness
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := validateCatalogConfig(&config.Catalog); err != nil {
		return fmt.Errorf("catalog config: %w", err)
	}
	if err := validateRenderConfig(&config.Render); err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	return nil
}

// validateServerConfig validates server configuration values
func validateServerConfig(config *ServerConfig) error {
	// Allow 0 for system-assigned ports in testing
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}

	if config.Host != "" {
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
		for _, char := range dangerousChars {
			if strings.Contains(config.Host, char) {
				return fmt.Errorf("host contains dangerous character: %s", char)
			}
		}
	}

	return nil
}

// validateCatalogConfig validates catalog source paths
func validateCatalogConfig(config *CatalogConfig) error {
	for _, path := range config.Sources {
		if err := validatePath(path); err != nil {
			return fmt.Errorf("invalid catalog source '%s': %w", path, err)
		}
	}
	return nil
}

// validateRenderConfig validates render settings
func validateRenderConfig(config *RenderConfig) error {
	switch config.Format {
	case "markdown", "md", "html", "yaml":
	default:
		return fmt.Errorf("unknown render format: %s", config.Format)
	}
	if config.Output != "" {
		if err := validatePath(config.Output); err != nil {
			return fmt.Errorf("invalid render output '%s': %w", config.Output, err)
		}
	}
	return nil
}

// validatePath validates a file path for safety
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
