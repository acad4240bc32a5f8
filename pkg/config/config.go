package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/offlinefirst/keytap/pkg/keys"
)

const DefaultFileName = "keytap.yaml"

// Config captures the user-adjustable knobs for capture sessions.
type Config struct {
	Listen  ListenConfig  `yaml:"listen" toml:"listen"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`

	// Source indicates where the configuration originated (defaults or a file path).
	Source string `yaml:"-" toml:"-"`
}

// ListenConfig selects the event source and how it registers for input.
type ListenConfig struct {
	Source          string   `yaml:"source" toml:"source"`
	Layout          string   `yaml:"layout" toml:"layout"`
	InputSink       bool     `yaml:"input_sink" toml:"input_sink"`
	NoLegacy        bool     `yaml:"no_legacy" toml:"no_legacy"`
	Devices         []string `yaml:"devices" toml:"devices"`
	DurationSeconds int      `yaml:"duration_seconds" toml:"duration_seconds"`
}

// OutputConfig controls where and how records are written.
type OutputConfig struct {
	// Path is the record sink; "-" or empty means stdout.
	Path      string `yaml:"path" toml:"path"`
	Format    string `yaml:"format" toml:"format"`
	QueueSize int    `yaml:"queue_size" toml:"queue_size"`
}

// LoggingConfig defines log verbosity and formatting.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

var (
	validSources       = []string{"auto", "rawinput", "evdev", "synthetic"}
	validOutputFormats = []string{"auto", "json", "console"}
)

// Default returns the baseline configuration used when no overrides are supplied.
func Default() Config {
	return Config{
		Listen: ListenConfig{
			Source:    "auto",
			Layout:    string(keys.LayoutEnUS),
			InputSink: true,
			NoLegacy:  true,
		},
		Output: OutputConfig{
			Path:      "-",
			Format:    "auto",
			QueueSize: 256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Source: "<defaults>",
	}
}

// Load reads configuration from disk if present, otherwise returning defaults.
// When path is empty, the loader attempts to read ./keytap.yaml but tolerates a
// missing file. Files ending in .toml are decoded as TOML, everything else as
// YAML; unknown keys are errors in both.
func Load(path string) (Config, error) {
	cfg := Default()

	candidate := strings.TrimSpace(path)
	explicit := candidate != ""
	if !explicit {
		candidate = DefaultFileName
	}

	file, err := os.Open(candidate)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if explicit {
				return cfg, fmt.Errorf("config file %q not found", candidate)
			}
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config file %q: %w", candidate, err)
	}
	defer file.Close()

	if err := decode(candidate, file, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %q: %w", candidate, err)
	}
	cfg.Source = candidate
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func decode(path string, r io.Reader, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg)
	default:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
}

// Validate ensures essential configuration values are present and sensible.
func (c Config) Validate() error {
	if !contains(validSources, c.Listen.Source) {
		return fmt.Errorf("listen.source must be one of %s, got %q", strings.Join(validSources, ", "), c.Listen.Source)
	}
	if _, err := keys.NewStaticLayout(keys.LayoutID(c.Listen.Layout)); err != nil {
		return fmt.Errorf("listen.layout %q: %w", c.Listen.Layout, err)
	}
	if c.Listen.DurationSeconds < 0 {
		return errors.New("listen.duration_seconds must not be negative")
	}
	for _, d := range c.Listen.Devices {
		if strings.TrimSpace(d) == "" {
			return errors.New("listen.devices must not contain empty paths")
		}
	}

	if !contains(validOutputFormats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %s, got %q", strings.Join(validOutputFormats, ", "), c.Output.Format)
	}
	if c.Output.QueueSize <= 0 {
		return errors.New("output.queue_size must be positive")
	}

	if _, err := NormalizeLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := NormalizeFormat(c.Logging.Format); err != nil {
		return err
	}

	return nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func (c *Config) normalize() {
	defaults := Default()

	c.Listen.Source = strings.ToLower(strings.TrimSpace(c.Listen.Source))
	if c.Listen.Source == "" {
		c.Listen.Source = defaults.Listen.Source
	}
	c.Listen.Layout = strings.TrimSpace(c.Listen.Layout)
	if c.Listen.Layout == "" {
		c.Listen.Layout = defaults.Listen.Layout
	}

	c.Output.Path = strings.TrimSpace(c.Output.Path)
	if c.Output.Path == "" {
		c.Output.Path = defaults.Output.Path
	}
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaults.Output.Format
	}
	if c.Output.QueueSize == 0 {
		c.Output.QueueSize = defaults.Output.QueueSize
	}

	if level, err := NormalizeLogLevel(c.Logging.Level); err == nil {
		c.Logging.Level = level
	}
	if format, err := NormalizeFormat(c.Logging.Format); err == nil {
		c.Logging.Format = format
	}
}

// NormalizeLogLevel validates and lowercases known logging levels.
func NormalizeLogLevel(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return "info", nil
	case "debug":
		return "debug", nil
	case "warn", "warning":
		return "warn", nil
	case "error":
		return "error", nil
	default:
		return "", fmt.Errorf("unsupported log level %q", level)
	}
}

// NormalizeFormat validates and canonicalizes logging format identifiers.
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return "json", nil
	case "console", "text":
		return "console", nil
	default:
		return "", fmt.Errorf("unsupported log format %q", format)
	}
}
