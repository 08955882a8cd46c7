package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds remote catalog service configuration
type CatalogConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	ImageBaseURL    string        `mapstructure:"image_base_url"`    // Poster size
	BackdropBaseURL string        `mapstructure:"backdrop_base_url"` // Original size
	WebBaseURL      string        `mapstructure:"web_base_url"`      // Public item pages
	APIKey          string        `mapstructure:"api_key"`
	Language        string        `mapstructure:"language"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	MaxRetries      int           `mapstructure:"max_retries"`
	BreakerFailures int           `mapstructure:"breaker_failures"` // Consecutive failures before the breaker opens
}

// StorageConfig holds local annotation storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // Empty = memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme           string `mapstructure:"theme"`
	ScrollThreshold int    `mapstructure:"scroll_threshold"` // Rows from the end that trigger the next page
	Browser         string `mapstructure:"browser"`          // Command that opens web pages, empty for system default
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:         "https://api.themoviedb.org/3",
			ImageBaseURL:    "https://image.tmdb.org/t/p/w500",
			BackdropBaseURL: "https://image.tmdb.org/t/p/original",
			WebBaseURL:      "https://www.themoviedb.org",
			Language:        "cs",
			RequestTimeout:  15 * time.Second,
			MaxRetries:      2,
			BreakerFailures: 5,
		},
		Storage: StorageConfig{
			Path: defaultStoragePath(),
		},
		UI: UIConfig{
			Theme:           "default",
			ScrollThreshold: 3,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the per-user data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel")
	}
}

func defaultLogPath() string {
	return filepath.Join(defaultDataPath(), "reel.log")
}

func defaultStoragePath() string {
	return filepath.Join(defaultDataPath(), "reel.db")
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides (REEL_CATALOG_API_KEY, ...)
	viper.SetEnvPrefix("REEL")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	bindEnvKeys()

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

	return cfg, nil
}

// bindEnvKeys registers nested keys so AutomaticEnv can see them during Unmarshal
// even when no config file mentions them.
func bindEnvKeys() {
	for _, key := range []string{
		"catalog.base_url", "catalog.image_base_url", "catalog.backdrop_base_url",
		"catalog.web_base_url", "catalog.api_key", "catalog.language",
		"catalog.request_timeout", "catalog.max_retries", "catalog.breaker_failures",
		"storage.path", "ui.theme", "ui.scroll_threshold", "ui.browser", "logging.file", "logging.level",
	} {
		_ = viper.BindEnv(key)
	}
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("catalog.base_url", cfg.Catalog.BaseURL)
	viper.Set("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	viper.Set("catalog.backdrop_base_url", cfg.Catalog.BackdropBaseURL)
	viper.Set("catalog.web_base_url", cfg.Catalog.WebBaseURL)
	viper.Set("catalog.api_key", cfg.Catalog.APIKey)
	viper.Set("catalog.language", cfg.Catalog.Language)
	viper.Set("catalog.request_timeout", cfg.Catalog.RequestTimeout.String())
	viper.Set("catalog.max_retries", cfg.Catalog.MaxRetries)
	viper.Set("catalog.breaker_failures", cfg.Catalog.BreakerFailures)

	viper.Set("storage.path", cfg.Storage.Path)

	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("ui.scroll_threshold", cfg.UI.ScrollThreshold)
	viper.Set("ui.browser", cfg.UI.Browser)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ClearCredentials removes the stored API key while preserving other settings
func ClearCredentials() error {
	viper.Set("catalog.api_key", "")

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

// IsConfigured returns true if a catalog API key is set
func (c *Config) IsConfigured() bool {
	return c.Catalog.APIKey != ""
}
