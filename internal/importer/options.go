package importer

import "git.home.luguber.info/inful/siteimport/internal/provider"

// Defaults for Options.
const (
	DefaultAssetsDir = "assets"
	DefaultWorkers   = 4
)

// Options control one import run.
type Options struct {
	// DryRun computes every result without writing anything.
	DryRun bool
	// FetchResources imports resource records; without it they are skipped.
	FetchResources bool
	// KeepSourceURLs skips rewriting source permalinks inside pages and
	// posts. The zero value rewrites them.
	KeepSourceURLs bool
	PostLayout     string
	PageLayout     string
	// AssetsDir is where resources go, relative to the content directory.
	AssetsDir string
	// Workers bounds how many records are transformed at once. 1 is sequential.
	Workers int
	// Provider is handed to Provider.SetUp as is.
	Provider provider.Options
}

// DefaultOptions returns the options of a plain run.
func DefaultOptions() Options {
	return Options{
		AssetsDir: DefaultAssetsDir,
		Workers:   DefaultWorkers,
	}
}

func (o Options) withDefaults() Options {
	if o.AssetsDir == "" {
		o.AssetsDir = DefaultAssetsDir
	}
	if o.Workers < 1 {
		o.Workers = DefaultWorkers
	}
	return o
}
