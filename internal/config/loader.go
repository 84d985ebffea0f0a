package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"snnd/internal/algoconfig"
)

// Defaults applied by WithDefaults when fields are unset.
const (
	DefaultAddr       = ":8080"
	DefaultApplyDelay = 750 * time.Millisecond
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

// CORSConfig enables cross-origin requests for browser clients.
type CORSConfig struct {
	Enabled        bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods" yaml:"allowed_methods" toml:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers" yaml:"allowed_headers" toml:"allowed_headers"`
}

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr      string `json:"addr" yaml:"addr" toml:"addr"`
	AssetsDir string `json:"assets_dir" yaml:"assets_dir" toml:"assets_dir"`
	// ShaderChoice exposes the compute/fragment shader options; nil means true.
	ShaderChoice *bool `json:"shader_choice" yaml:"shader_choice" toml:"shader_choice"`
	// ApplyDelay is the simulated backend's reconfiguration latency, e.g. "750ms".
	ApplyDelay string `json:"apply_delay" yaml:"apply_delay" toml:"apply_delay"`
	// ApplyTimeout bounds one backend apply; empty means no limit.
	ApplyTimeout     string                 `json:"apply_timeout" yaml:"apply_timeout" toml:"apply_timeout"`
	LogLevel         string                 `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat        string                 `json:"log_format" yaml:"log_format" toml:"log_format"`
	JournalPath      string                 `json:"journal_path" yaml:"journal_path" toml:"journal_path"`
	MaxBodyBytes     int64                  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	SelectRatePerSec float64                `json:"select_rate_per_sec" yaml:"select_rate_per_sec" toml:"select_rate_per_sec"`
	SelectBurst      int                    `json:"select_burst" yaml:"select_burst" toml:"select_burst"`
	CORS             CORSConfig             `json:"cors" yaml:"cors" toml:"cors"`
	Labels           algoconfig.LabelTables `json:"labels" yaml:"labels" toml:"labels"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// WithDefaults returns a copy with unset fields filled in.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ApplyDelay == "" {
		c.ApplyDelay = DefaultApplyDelay.String()
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
	c.Labels = c.Labels.WithDefaults()
	return c
}

// ShaderChoiceEnabled reports whether shader options are exposed.
func (c Config) ShaderChoiceEnabled() bool { return c.ShaderChoice == nil || *c.ShaderChoice }

// ApplyDelayDuration parses ApplyDelay; empty means zero.
func (c Config) ApplyDelayDuration() (time.Duration, error) { return parseDuration("apply_delay", c.ApplyDelay) }

// ApplyTimeoutDuration parses ApplyTimeout; empty means zero.
func (c Config) ApplyTimeoutDuration() (time.Duration, error) {
	return parseDuration("apply_timeout", c.ApplyTimeout)
}

// Validate checks values Load cannot reject on its own.
func (c Config) Validate() error {
	if _, err := c.ApplyDelayDuration(); err != nil {
		return err
	}
	if _, err := c.ApplyTimeoutDuration(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "console", "json":
	default:
		return fmt.Errorf("log_format: unsupported value %q", c.LogFormat)
	}
	if c.SelectRatePerSec < 0 {
		return fmt.Errorf("select_rate_per_sec: must not be negative")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("max_body_bytes: must not be negative")
	}
	return nil
}

func parseDuration(field, v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", field)
	}
	return d, nil
}
