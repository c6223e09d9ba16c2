package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/linkfix/internal/foundation/errors"
)

const (
	// DefaultRoot is the documentation directory scanned when nothing else is configured.
	DefaultRoot = "docs"
	// DefaultConfigFile is picked up from the working directory when no --config is given.
	DefaultConfigFile = "linkfix.yaml"
)

// Config represents the application configuration.
type Config struct {
	Root     string        `yaml:"root"`
	Decoding DecodingMode  `yaml:"decoding"`
	Logging  LoggingConfig `yaml:"logging"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// LoggingConfig controls the slog handler installed by the CLI.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig controls the optional Prometheus textfile export.
type MetricsConfig struct {
	// Textfile is written after each run when set (node_exporter textfile collector format).
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns a configuration with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from configPath. An empty path falls back to
// DefaultConfigFile when present and to built-in defaults otherwise.
// Environment variables (optionally from .env) override file values.
func Load(configPath string) (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	switch {
	case configPath != "":
		if err := cfg.readFile(configPath, true); err != nil {
			return nil, err
		}
	default:
		if err := cfg.readFile(DefaultConfigFile, false); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		if os.IsNotExist(err) {
			return errors.ConfigError("configuration file not found").WithContext("path", path).Build()
		}
		return errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvRoot); v != "" {
		c.Root = v
	}
	if v := os.Getenv(EnvDecoding); v != "" {
		c.Decoding = DecodingMode(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = LogLevel(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = LogFormat(v)
	}
	if v := os.Getenv(EnvMetricsTextfile); v != "" {
		c.Metrics.Textfile = v
	}
}

func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if c.Decoding == "" {
		c.Decoding = DecodingPreserve
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}

// Validate normalizes enum fields and rejects values that cannot be normalized.
func (c *Config) Validate() error {
	mode, err := ParseDecodingMode(string(c.Decoding))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid decoding mode").Fatal().Build()
	}
	c.Decoding = mode

	level, err := ParseLogLevel(string(c.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid log level").Fatal().Build()
	}
	c.Logging.Level = level

	format, err := ParseLogFormat(string(c.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid log format").Fatal().Build()
	}
	c.Logging.Format = format

	if strings.TrimSpace(c.Root) == "" {
		return errors.ValidationError("root directory must not be empty").Build()
	}
	return nil
}

// String renders the effective configuration for debug logging.
func (c *Config) String() string {
	return fmt.Sprintf("root=%s decoding=%s log_level=%s log_format=%s metrics_textfile=%q",
		c.Root, c.Decoding, c.Logging.Level, c.Logging.Format, c.Metrics.Textfile)
}
