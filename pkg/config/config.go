// Package config provides environment-based configuration for the dashboard.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the dashboard service.
type Config struct {
	// Log database connection. Both fields are required: the URL names the
	// endpoint, the key is the access credential injected as the password.
	LogDBURL  string
	LogDBKey  string
	LogDBUser string

	// Server configuration
	HTTPHost string
	HTTPPort int

	// Fetch behavior
	FetchTTL    time.Duration
	FetchLimit  int
	DefaultDays int
	MaxDays     int

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration

	// Presentation defaults, optionally overridden by a YAML settings file.
	Settings Settings
}

// Settings holds presentation defaults loaded from DASHBOARD_SETTINGS (YAML).
type Settings struct {
	PageTitle     string `yaml:"page_title"`
	SuccessColor  string `yaml:"success_color"`
	ErrorColor    string `yaml:"error_color"`
	CriticalColor string `yaml:"critical_color"`
}

// DefaultSettings returns the built-in presentation defaults.
func DefaultSettings() Settings {
	return Settings{
		PageTitle:     "Task Logs Dashboard",
		SuccessColor:  "#00cc96",
		ErrorColor:    "#ef553b",
		CriticalColor: "#ab63fa",
	}
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		LogDBURL:        getEnv("LOGDB_URL", ""),
		LogDBKey:        getEnv("LOGDB_KEY", ""),
		LogDBUser:       getEnv("LOGDB_USER", "readonly"),
		HTTPHost:        getEnv("HTTP_HOST", "0.0.0.0"),
		HTTPPort:        getIntEnv("HTTP_PORT", 8080),
		FetchTTL:        getDurationEnv("FETCH_TTL", 60*time.Second),
		FetchLimit:      getIntEnv("FETCH_LIMIT", 1000),
		DefaultDays:     getIntEnv("DEFAULT_DAYS", 7),
		MaxDays:         getIntEnv("MAX_DAYS", 30),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
		Settings:        DefaultSettings(),
	}

	if path := os.Getenv("DASHBOARD_SETTINGS"); path != "" {
		if err := loadSettings(path, &cfg.Settings); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.LogDBURL == "" {
		return fmt.Errorf("LOGDB_URL is required")
	}
	if c.LogDBKey == "" {
		return fmt.Errorf("LOGDB_KEY is required")
	}
	if _, err := url.Parse(c.LogDBURL); err != nil {
		return fmt.Errorf("LOGDB_URL is not a valid URL: %w", err)
	}
	if c.DefaultDays < 1 || c.DefaultDays > c.MaxDays {
		return fmt.Errorf("DEFAULT_DAYS must be in [1, %d]", c.MaxDays)
	}
	return nil
}

// DSN builds the database connection string with the credential applied.
// The credential always wins over any password embedded in the URL.
func (c *Config) DSN() string {
	u, err := url.Parse(c.LogDBURL)
	if err != nil {
		return c.LogDBURL
	}
	user := c.LogDBUser
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, c.LogDBKey)
	return u.String()
}

// LoadWithDefaults loads configuration with defaults for development.
// It does not validate required fields, useful for testing.
func LoadWithDefaults() *Config {
	return &Config{
		LogDBURL:        getEnv("LOGDB_URL", "postgres://localhost:5432/tasklogs?sslmode=disable"),
		LogDBKey:        getEnv("LOGDB_KEY", "development-key"),
		LogDBUser:       getEnv("LOGDB_USER", "readonly"),
		HTTPHost:        getEnv("HTTP_HOST", "0.0.0.0"),
		HTTPPort:        getIntEnv("HTTP_PORT", 8080),
		FetchTTL:        getDurationEnv("FETCH_TTL", 60*time.Second),
		FetchLimit:      getIntEnv("FETCH_LIMIT", 1000),
		DefaultDays:     getIntEnv("DEFAULT_DAYS", 7),
		MaxDays:         getIntEnv("MAX_DAYS", 30),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
		Settings:        DefaultSettings(),
	}
}

func loadSettings(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parsing settings file: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
