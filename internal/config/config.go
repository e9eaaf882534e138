// Package config loads siteimport.yaml.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/siteimport/internal/foundation/errors"
)

// CurrentVersion is the configuration format version written by Init.
const CurrentVersion = "1"

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "siteimport.yaml"

// Config represents the importer configuration.
type Config struct {
	Version string        `yaml:"version"`
	Logging LoggingConfig `yaml:"logging"`
	Import  ImportConfig  `yaml:"import"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Journal JournalConfig `yaml:"journal"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// ImportConfig holds the run options.
type ImportConfig struct {
	Provider       string `yaml:"provider"`
	Source         string `yaml:"source,omitempty"` // Export file handed to the provider
	Dest           string `yaml:"dest"`             // Site source directory
	DryRun         bool   `yaml:"dry_run"`
	FetchResources bool   `yaml:"fetch_resources"`
	ReplaceURLs    *bool  `yaml:"replace_urls,omitempty"` // nil means true
	AssetsDir      string `yaml:"assets_dir"`
	PostLayout     string `yaml:"post_layout,omitempty"`
	PageLayout     string `yaml:"page_layout,omitempty"`
	Workers        int    `yaml:"workers"`
}

// ReplaceURLsEnabled reports whether the rewrite pass runs.
func (c ImportConfig) ReplaceURLsEnabled() bool {
	return c.ReplaceURLs == nil || *c.ReplaceURLs
}

// FetchConfig configures resource downloads.
type FetchConfig struct {
	UserAgent string `yaml:"user_agent"`
	Timeout   string `yaml:"timeout"`
}

// JournalConfig configures the run journal. An empty Path disables it.
type JournalConfig struct {
	Path          string `yaml:"path,omitempty"`
	NATSURL       string `yaml:"nats_url,omitempty"`
	SubjectPrefix string `yaml:"subject_prefix,omitempty"`
}

// MetricsConfig configures the Prometheus textfile output. Empty disables it.
type MetricsConfig struct {
	File string `yaml:"file,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration file at path. Variables from .env files are
// loaded first and ${VAR} references in the file are expanded.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithCause(err).
				WithContext("file", path).
				Build()
		}
		return nil, errors.ConfigError("failed to read configuration file").
			WithCause(err).
			WithContext("file", path).
			Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.ConfigError("failed to unmarshal configuration").
			WithCause(err).
			WithContext("file", path).
			Build()
	}

	if cfg.Version != "" && cfg.Version != CurrentVersion {
		return nil, errors.ConfigError(fmt.Sprintf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)).
			WithContext("file", path).
			Build()
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		loadEnvFiles()
		return Default(), nil
	}
	return Load(path)
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).Build()
	}

	example := Default()
	example.Import.Source = "export.xml"
	example.Import.PostLayout = "post"
	example.Import.PageLayout = "page"
	example.Journal.Path = ".siteimport/journal.db"

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.FileSystemError("failed to write config file").
			WithCause(err).
			WithContext("file", path).
			Build()
	}
	return nil
}
