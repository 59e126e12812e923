package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name            string
		setup           func()
		expectError     bool
		expectedSources []string
	}{
		{
			name: "successful load with defaults",
			setup: func() {
				viper.Reset()
			},
			expectError:     false,
			expectedSources: []string{"patterns.yaml"},
		},
		{
			name: "successful load with custom sources",
			setup: func() {
				viper.Reset()
				viper.Set("catalog.sources", []string{"base.yaml", "extra.md"})
			},
			expectError:     false,
			expectedSources: []string{"base.yaml", "extra.md"},
		},
		{
			name: "strict mode from config",
			setup: func() {
				viper.Reset()
				viper.Set("catalog.strict", true)
			},
			expectError:     false,
			expectedSources: []string{"patterns.yaml"},
		},
		{
			name: "invalid port",
			setup: func() {
				viper.Reset()
				viper.Set("server.port", 70000)
			},
			expectError: true,
		},
		{
			name: "unknown render format",
			setup: func() {
				viper.Reset()
				viper.Set("render.format", "pdf")
			},
			expectError: true,
		},
		{
			name: "source path traversal",
			setup: func() {
				viper.Reset()
				viper.Set("catalog.sources", []string{"../../etc/passwd"})
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer viper.Reset()

			config, err := Load()
			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, config)
			assert.Equal(t, tt.expectedSources, config.Catalog.Sources)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"patterns.yaml"}, config.Catalog.Sources)
	assert.False(t, config.Catalog.Strict)
	assert.Equal(t, "design-patterns.md", config.Render.Output)
	assert.Equal(t, "markdown", config.Render.Format)
	assert.Equal(t, 8120, config.Server.Port)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 300, config.Watch.DebounceMillis)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
}

func TestLoadDebounceOverride(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("watch.debounce_millis", 750)

	config, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 750, config.Watch.DebounceMillis)
}

func TestLoadAllowedOrigins(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("server.allowed_origins", []string{"example.com:8120"})

	config, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com:8120"}, config.Server.AllowedOrigins)
}

func TestValidateServerConfig(t *testing.T) {
	tests := []struct {
		name        string
		config      ServerConfig
		expectError bool
	}{
		{name: "valid", config: ServerConfig{Port: 8120, Host: "localhost"}},
		{name: "zero port allowed", config: ServerConfig{Port: 0, Host: "localhost"}},
		{name: "negative port", config: ServerConfig{Port: -1}, expectError: true},
		{name: "port too large", config: ServerConfig{Port: 65536}, expectError: true},
		{name: "host with shell metacharacter", config: ServerConfig{Port: 8120, Host: "localhost;rm"}, expectError: true},
		{name: "empty host allowed", config: ServerConfig{Port: 8120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateServerConfig(&tt.config)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		expectError bool
	}{
		{name: "plain file", path: "patterns.yaml"},
		{name: "nested path", path: "docs/patterns.yaml"},
		{name: "empty", path: "", expectError: true},
		{name: "traversal", path: "../secrets.yaml", expectError: true},
		{name: "command injection", path: "patterns.yaml; rm -rf /", expectError: true},
		{name: "dot segments that clean away", path: "./docs/../patterns.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePath(tt.path)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRenderConfig(t *testing.T) {
	for _, format := range []string{"markdown", "md", "html", "yaml"} {
		assert.NoError(t, validateRenderConfig(&RenderConfig{Format: format, Output: "out.md"}))
	}
	assert.Error(t, validateRenderConfig(&RenderConfig{Format: "docx"}))
}
