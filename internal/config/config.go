package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// ProviderType identifies the repository hosting backend
type ProviderType string

const (
	ProviderGitHub ProviderType = "github"
)

// DefaultGitHubAPI is the base URL used when none is configured
const DefaultGitHubAPI = "https://api.github.com"

// Config holds all application configuration
type Config struct {
	Forge   ForgeConfig   `mapstructure:"forge"`
	Sweep   SweepConfig   `mapstructure:"sweep"`
	Logging LoggingConfig `mapstructure:"logging"`
	State   StateConfig   `mapstructure:"state"`
}

// ForgeConfig holds repository host configuration
type ForgeConfig struct {
	Provider ProviderType `mapstructure:"provider"` // API dialect, "github" covers GitHub, GHE, Gitea, Forgejo
	URL      string       `mapstructure:"url"`      // API base URL
	Token    string       `mapstructure:"token"`    // Access token; usually supplied via REPOSWEEP_TOKEN instead
	PerPage  int          `mapstructure:"per_page"` // Listing page size, capped at the provider maximum
}

// SweepConfig holds deletion batch configuration
type SweepConfig struct {
	Delay time.Duration `mapstructure:"delay"` // Courtesy pause between successful deletions
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// StateConfig holds UI state persistence configuration
type StateConfig struct {
	File string `mapstructure:"file"` // bbolt database for filter and sort preferences
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Forge: ForgeConfig{
			Provider: ProviderGitHub,
			URL:      DefaultGitHubAPI,
			Token:    "",
			PerPage:  100,
		},
		Sweep: SweepConfig{
			Delay: time.Second,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		State: StateConfig{
			File: defaultStatePath(),
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reposweep", "reposweep.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reposweep", "reposweep.log")
	}
}

// defaultStatePath returns the default UI state database path for the current OS
func defaultStatePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "reposweep", "state.db")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reposweep", "state.db")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reposweep")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reposweep")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("REPOSWEEP")
	viper.AutomaticEnv()
	viper.BindEnv("forge.token", "REPOSWEEP_TOKEN")
	viper.BindEnv("forge.url", "REPOSWEEP_URL")

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.Forge.PerPage <= 0 || cfg.Forge.PerPage > 100 {
		cfg.Forge.PerPage = 100
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file. The token is
// deliberately not written here; persisting it is a separate, explicit
// choice via SaveToken.
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("forge.provider", string(cfg.Forge.Provider))
	viper.Set("forge.url", cfg.Forge.URL)
	viper.Set("forge.per_page", cfg.Forge.PerPage)

	viper.Set("sweep.delay", cfg.Sweep.Delay.String())

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	viper.Set("state.file", cfg.State.File)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveToken persists the access token in the configuration file
func SaveToken(token string) error {
	viper.Set("forge.token", token)

	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ClearForgeConfig removes the host URL and credentials while preserving
// other settings, used when a stored token is rejected and setup reruns
func ClearForgeConfig() error {
	viper.Set("forge.url", "")
	viper.Set("forge.token", "")

	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the host URL and token are set
func (c *Config) IsConfigured() bool {
	return c.Forge.URL != "" && c.Forge.Token != ""
}
