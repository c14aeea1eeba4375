package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/username/invoicegen/internal/calendar"
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Log      LogConfig      `mapstructure:"log"`
}

// CalendarConfig represents bank holiday calendar configuration
type CalendarConfig struct {
	Division     string `mapstructure:"division"`
	SourceURL    string `mapstructure:"source_url"`
	FallbackFile string `mapstructure:"fallback_file"` // local copy of bank-holidays.json, optional
	CacheTTL     string `mapstructure:"cache_ttl"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file, environment and defaults.
// A missing config file is not an error unless configPath names it explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("calendar.division", string(calendar.DefaultDivision))
	v.SetDefault("calendar.source_url", calendar.DefaultSourceURL)
	v.SetDefault("calendar.fallback_file", "")
	v.SetDefault("calendar.cache_ttl", "24h")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "warn")

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("invoicegen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.invoicegen")
		v.AddConfigPath("/etc/invoicegen")
	}

	// Read environment variables, e.g. INVOICEGEN_CALENDAR_DIVISION
	v.SetEnvPrefix("invoicegen")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := calendar.ParseDivision(c.Calendar.Division); err != nil {
		return fmt.Errorf("calendar.division: %w", err)
	}

	if c.Calendar.SourceURL == "" {
		return fmt.Errorf("calendar.source_url is required")
	}
	u, err := url.Parse(c.Calendar.SourceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("calendar.source_url must be an http(s) URL, got '%s'", c.Calendar.SourceURL)
	}

	if c.Calendar.CacheTTL != "" {
		ttl, err := time.ParseDuration(c.Calendar.CacheTTL)
		if err != nil || ttl <= 0 {
			return fmt.Errorf("calendar.cache_ttl must be a positive duration, got '%s'", c.Calendar.CacheTTL)
		}
	}

	return nil
}

// GetCacheTTL returns cache TTL duration
func (c *CalendarConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Calendar.FallbackFile = os.ExpandEnv(c.Calendar.FallbackFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
