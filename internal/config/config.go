package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/vango-dev/reactive/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "reactive.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "REACTIVE_"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log format.
	DefaultLogFormat = "text"

	// DefaultMetricsAddr is the default metrics listen address.
	DefaultMetricsAddr = ":9464"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "reactive"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "reactive"
)

// Config represents reactive.json.
type Config struct {
	// Log configures the CLI logger.
	Log LogConfig `json:"log" envPrefix:"LOG_"`

	// Metrics configures the Prometheus observer and endpoint.
	Metrics MetricsConfig `json:"metrics" envPrefix:"METRICS_"`

	// Tracing configures the OpenTelemetry observer and exporter.
	Tracing TracingConfig `json:"tracing" envPrefix:"TRACING_"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" env:"LEVEL"`

	// Format is text or json.
	Format string `json:"format,omitempty" env:"FORMAT"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled attaches the Prometheus observer.
	Enabled bool `json:"enabled,omitempty" env:"ENABLED"`

	// Addr is the listen address for /metrics when serving.
	Addr string `json:"addr,omitempty" env:"ADDR"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty" env:"NAMESPACE"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	// Enabled attaches the tracing observer.
	Enabled bool `json:"enabled,omitempty" env:"ENABLED"`

	// Endpoint is the OTLP/HTTP collector host:port. Empty keeps the
	// global (no-op unless configured) tracer provider.
	Endpoint string `json:"endpoint,omitempty" env:"ENDPOINT"`

	// TracerName is the tracer name.
	TracerName string `json:"tracerName,omitempty" env:"NAME"`

	// Insecure disables TLS to the collector.
	Insecure bool `json:"insecure,omitempty" env:"INSECURE"`
}

// New returns a config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads reactive.json from dir and applies environment overrides.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOrDefault is Load, except that a missing file yields the defaults
// (still with environment overrides applied).
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if err == nil {
		return cfg, nil
	}
	if !Exists(dir) {
		cfg = New()
		if err := cfg.ApplyEnv(); err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}
	return nil, err
}

// LoadFile reads the config at path and applies environment overrides.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C001").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path))
		}
		return nil, errors.New("C002").Wrap(err).WithDetail(err.Error())
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C002").
			Wrap(err).
			WithLocationFromError(path, err).
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays REACTIVE_* environment variables. Unset variables
// leave the current values alone.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.New("C003").Wrap(err).WithDetail(err.Error())
	}
	c.applyDefaults()
	return nil
}

// Save writes the config back to the path it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the config as indented JSON to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("C002").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C002").Wrap(err).WithDetail(err.Error())
	}

	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from or saved to.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills empty fields with default values.
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = DefaultMetricsAddr
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("C004").
			WithDetailf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("C004").
			WithDetailf("log.format %q is not one of text, json", c.Log.Format)
	}
	if c.Tracing.Endpoint != "" && strings.Contains(c.Tracing.Endpoint, "://") {
		return errors.New("C004").
			WithDetailf("tracing.endpoint %q must be host:port without a scheme", c.Tracing.Endpoint).
			WithSuggestion("Set insecure: true instead of using http://")
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Exists reports whether dir contains reactive.json.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
