package provider

import (
	"context"

	"git.home.luguber.info/inful/siteimport/internal/record"
)

// Static serves a fixed record list. It records which lifecycle calls it saw,
// which makes it handy for previews and tests.
type Static struct {
	records []*record.Record

	SetUpErr    error
	RecordsErr  error
	TearDownErr error

	Calls []string
	Opts  Options
}

// NewStatic returns a provider that yields records.
func NewStatic(records ...*record.Record) *Static {
	return &Static{records: records}
}

func (s *Static) SetUp(opts Options) error {
	s.Calls = append(s.Calls, "setup")
	s.Opts = opts
	return s.SetUpErr
}

func (s *Static) Records(ctx context.Context) ([]*record.Record, error) {
	s.Calls = append(s.Calls, "records")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.RecordsErr != nil {
		return nil, s.RecordsErr
	}
	return s.records, nil
}

func (s *Static) TearDown() error {
	s.Calls = append(s.Calls, "teardown")
	return s.TearDownErr
}
