// Package provider defines the sources an import reads records from.
package provider

import (
	"context"
	"strings"

	"git.home.luguber.info/inful/siteimport/internal/record"
)

// Provider yields the records of one export. An import calls SetUp, Records
// and TearDown exactly once each, in that order.
type Provider interface {
	// SetUp validates options and opens the source.
	SetUp(opts Options) error

	// Records returns every record of the export in source order.
	Records(ctx context.Context) ([]*record.Record, error)

	// TearDown releases anything SetUp acquired.
	TearDown() error
}

// Options are provider-specific settings, such as the export file path.
type Options map[string]string

// Get returns the trimmed value for key.
func (o Options) Get(key string) string {
	return strings.TrimSpace(o[key])
}
