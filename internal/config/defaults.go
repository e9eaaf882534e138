package config

import "git.home.luguber.info/inful/siteimport/internal/fetch"

const (
	defaultProvider      = "wxr"
	defaultDest          = "."
	defaultAssetsDir     = "assets"
	defaultWorkers       = 4
	defaultFetchTimeout  = "30s"
	defaultSubjectPrefix = "siteimport.events"
)

// defaultApplier fills zero values of one configuration section.
type defaultApplier func(cfg *Config)

var defaultAppliers = []defaultApplier{
	func(cfg *Config) {
		if cfg.Version == "" {
			cfg.Version = CurrentVersion
		}
	},
	func(cfg *Config) {
		cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
		cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	},
	func(cfg *Config) {
		im := &cfg.Import
		if im.Provider == "" {
			im.Provider = defaultProvider
		}
		if im.Dest == "" {
			im.Dest = defaultDest
		}
		if im.AssetsDir == "" {
			im.AssetsDir = defaultAssetsDir
		}
		if im.Workers == 0 {
			im.Workers = defaultWorkers
		}
	},
	func(cfg *Config) {
		if cfg.Fetch.UserAgent == "" {
			cfg.Fetch.UserAgent = fetch.DefaultUserAgent
		}
		if cfg.Fetch.Timeout == "" {
			cfg.Fetch.Timeout = defaultFetchTimeout
		}
	},
	func(cfg *Config) {
		if cfg.Journal.SubjectPrefix == "" {
			cfg.Journal.SubjectPrefix = defaultSubjectPrefix
		}
	},
}

func applyDefaults(cfg *Config) {
	for _, apply := range defaultAppliers {
		apply(cfg)
	}
}
