package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/parser"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the gmpcheck CLI
type Config struct {
	NoDatePolicy    string       `yaml:"no_date_policy"`
	HeaderScanRows  int          `yaml:"header_scan_rows"`
	Workers         int          `yaml:"workers"`
	AutoDetectRoles bool         `yaml:"auto_detect_roles"`
	Log             LogConfig    `yaml:"log"`
	Output          OutputConfig `yaml:"output"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"
)

// Default returns a Config with defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads a .env file if present, reads the config file and then
// applies GMPCHECK_* environment overrides.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("GMPCHECK_NO_DATE_POLICY"); v != "" {
		cfg.NoDatePolicy = v
	}
	if v := os.Getenv("GMPCHECK_HEADER_SCAN_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HeaderScanRows = n
		}
	}
	if v := os.Getenv("GMPCHECK_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("GMPCHECK_AUTO_DETECT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AutoDetectRoles = b
		}
	}
	if v := os.Getenv("GMPCHECK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GMPCHECK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.NoDatePolicy == "" {
		c.NoDatePolicy = "unknown"
	}
	if c.HeaderScanRows == 0 {
		c.HeaderScanRows = parser.DefaultHeaderScanRows
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatTable
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	c.NoDatePolicy = strings.ToLower(c.NoDatePolicy)
	switch c.NoDatePolicy {
	case "unknown", "active":
	default:
		return fmt.Errorf("invalid no_date_policy: %s (must be unknown or active)", c.NoDatePolicy)
	}
	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf("invalid output format: %s (must be table, json, csv, or xlsx)", c.Output.Format)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Log.Format)
	}
	if c.HeaderScanRows < 0 || c.Workers < 0 {
		return fmt.Errorf("header_scan_rows and workers must not be negative")
	}
	// The header search never looks past the first rows
	if c.HeaderScanRows > parser.MaxHeaderScanRows {
		c.HeaderScanRows = parser.MaxHeaderScanRows
	}
	return nil
}
