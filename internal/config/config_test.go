package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at empty temp dirs and
// clears ambient environment overrides, so each test sees only what it
// writes itself. Viper is a process-wide singleton and must be reset too.
func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("REPOSWEEP_TOKEN", "")
	t.Setenv("REPOSWEEP_URL", "")

	cwd := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(cwd))
	t.Cleanup(func() { os.Chdir(old) })

	return cwd
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderGitHub, cfg.Forge.Provider)
	assert.Equal(t, DefaultGitHubAPI, cfg.Forge.URL)
	assert.Empty(t, cfg.Forge.Token)
	assert.Equal(t, 100, cfg.Forge.PerPage)
	assert.Equal(t, time.Second, cfg.Sweep.Delay)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Logging.File)
	assert.NotEmpty(t, cfg.State.File)
}

func TestLoadConfig(t *testing.T) {
	t.Run("no config file falls back to defaults", func(t *testing.T) {
		isolate(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, DefaultGitHubAPI, cfg.Forge.URL)
		assert.Empty(t, cfg.Forge.Token)
		assert.Equal(t, 100, cfg.Forge.PerPage)
	})

	t.Run("reads settings from config.yaml", func(t *testing.T) {
		cwd := isolate(t)

		yaml := `forge:
  url: https://git.example.com/api/v1
  per_page: 42
sweep:
  delay: 2s
logging:
  level: DEBUG
`
		require.NoError(t, os.WriteFile(filepath.Join(cwd, "config.yaml"), []byte(yaml), 0644))

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "https://git.example.com/api/v1", cfg.Forge.URL)
		assert.Equal(t, 42, cfg.Forge.PerPage)
		assert.Equal(t, 2*time.Second, cfg.Sweep.Delay)
		assert.Equal(t, "DEBUG", cfg.Logging.Level)
		// Unspecified keys keep their defaults
		assert.NotEmpty(t, cfg.Logging.File)
	})

	t.Run("environment supplies the token", func(t *testing.T) {
		isolate(t)
		t.Setenv("REPOSWEEP_TOKEN", "ghp_from_env")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "ghp_from_env", cfg.Forge.Token)
	})

	t.Run("environment overrides the base URL", func(t *testing.T) {
		isolate(t)
		t.Setenv("REPOSWEEP_URL", "https://ghe.internal/api/v3")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "https://ghe.internal/api/v3", cfg.Forge.URL)
	})
}

func TestLoadConfig_PerPageClamp(t *testing.T) {
	tests := []struct {
		name    string
		perPage string
		want    int
	}{
		{"over provider maximum", "500", 100},
		{"zero", "0", 100},
		{"negative", "-5", 100},
		{"within range", "50", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cwd := isolate(t)

			yaml := "forge:\n  per_page: " + tt.perPage + "\n"
			require.NoError(t, os.WriteFile(filepath.Join(cwd, "config.yaml"), []byte(yaml), 0644))

			cfg, err := LoadConfig()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Forge.PerPage)
		})
	}
}

func TestConfig_IsConfigured(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		token string
		want  bool
	}{
		{"url and token", "https://api.github.com", "ghp_abc", true},
		{"missing token", "https://api.github.com", "", false},
		{"missing url", "", "ghp_abc", false},
		{"neither", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Forge.URL = tt.url
			cfg.Forge.Token = tt.token
			assert.Equal(t, tt.want, cfg.IsConfigured())
		})
	}
}
