package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/siteimport/internal/foundation/errors"
	"git.home.luguber.info/inful/siteimport/internal/record"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("static", func() Provider { return NewStatic() }))
	require.NoError(t, reg.Register("another", func() Provider { return NewStatic() }))

	assert.Error(t, reg.Register("static", func() Provider { return NewStatic() }))
	assert.Error(t, reg.Register("", func() Provider { return NewStatic() }))
	assert.Error(t, reg.Register("nil", nil))
	assert.Equal(t, []string{"another", "static"}, reg.Names())

	p1, err := reg.New("static")
	require.NoError(t, err)
	p2, err := reg.New("static")
	require.NoError(t, err)
	assert.NotSame(t, p1, p2, "each lookup gets a fresh provider")
}

func TestRegistry_UnknownProviderIsConfigError(t *testing.T) {
	_, err := NewRegistry().New("blogger")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	assert.Contains(t, err.Error(), `unknown provider "blogger"`)
}

func TestStatic_Lifecycle(t *testing.T) {
	rec := record.New(record.KindPage, "http://example.com/about/")
	p := NewStatic(rec)

	require.NoError(t, p.SetUp(Options{"file": " export.xml "}))
	records, err := p.Records(context.Background())
	require.NoError(t, err)
	require.NoError(t, p.TearDown())

	assert.Equal(t, []*record.Record{rec}, records)
	assert.Equal(t, []string{"setup", "records", "teardown"}, p.Calls)
	assert.Equal(t, "export.xml", p.Opts.Get("file"))
}
