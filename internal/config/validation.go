package config

import (
	"fmt"
	"path"
	"strings"
	"time"

	"git.home.luguber.info/inful/siteimport/internal/foundation/errors"
)

// Validate checks a configuration after defaults have been applied.
func Validate(cfg *Config) error {
	checks := []func(*Config) error{
		validateImport,
		validateFetch,
		validateJournal,
	}
	for _, check := range checks {
		if err := check(cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateImport(cfg *Config) error {
	im := cfg.Import
	if im.Workers < 1 {
		return errors.ConfigError(fmt.Sprintf("import.workers must be at least 1, got %d", im.Workers)).Build()
	}
	if err := ValidateAssetsDir(im.AssetsDir); err != nil {
		return err
	}
	return nil
}

// ValidateAssetsDir rejects asset directories that would leave the content tree.
func ValidateAssetsDir(dir string) error {
	cleaned := path.Clean(strings.Trim(dir, "/"))
	if dir == "" || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return errors.ConfigError(fmt.Sprintf("invalid assets directory %q", dir)).
			WithContext("assets_dir", dir).
			Build()
	}
	return nil
}

func validateFetch(cfg *Config) error {
	d, err := time.ParseDuration(cfg.Fetch.Timeout)
	if err != nil {
		return errors.ConfigError("invalid fetch.timeout").WithCause(err).Build()
	}
	if d <= 0 {
		return errors.ConfigError("fetch.timeout must be positive").Build()
	}
	return nil
}

func validateJournal(cfg *Config) error {
	if cfg.Journal.NATSURL != "" && cfg.Journal.Path == "" {
		return errors.ConfigError("journal.nats_url requires journal.path").Build()
	}
	return nil
}

// FetchTimeout returns the parsed fetch timeout. Validate guarantees it parses.
func (c *Config) FetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Fetch.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
