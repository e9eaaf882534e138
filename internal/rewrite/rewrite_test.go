package rewrite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/siteimport/internal/record"
)

func TestFromResults_SkipsUnusableAndKeepsFirstDuplicate(t *testing.T) {
	results := []*record.Result{
		{Kind: record.KindPage, SourcePermalink: "http://a.com/x/", Permalink: "/x"},
		{Kind: record.KindPage, SourcePermalink: "http://a.com/x/", Permalink: "/other"},
		{Kind: record.KindPost, SourcePermalink: "http://a.com/broken/", Err: errors.New("no date")},
		{Kind: record.KindPage, SourcePermalink: "http://a.com/", Permalink: ""},
		{Kind: record.KindPage, SourcePermalink: "", Permalink: "/orphan"},
		{Kind: record.KindResource, SourcePermalink: "http://files.a.com/p.jpg", Permalink: "/assets/p.jpg"},
	}

	table := FromResults(results)
	assert.Equal(t, []Pair{
		{Source: "http://files.a.com/p.jpg", Target: "/assets/p.jpg"},
		{Source: "http://a.com/x/", Target: "/x"},
	}, table.Pairs())
}

func TestApply_LongestSourceWins(t *testing.T) {
	table := NewTable([]Pair{
		{Source: "http://a.com/x", Target: "/x"},
		{Source: "http://a.com/x/y", Target: "/y"},
	})

	out := table.Apply([]byte(`<a href="http://a.com/x/y">y</a> <a href="http://a.com/x">x</a>`))
	assert.Equal(t, `<a href="/y">y</a> <a href="/x">x</a>`, string(out))
}

func TestApply_EqualLengthKeepsInsertionOrder(t *testing.T) {
	table := NewTable([]Pair{
		{Source: "ab", Target: "1"},
		{Source: "bc", Target: "2"},
	})
	assert.Equal(t, "1c", string(table.Apply([]byte("abc"))))
}

func TestApply_DoesNotRescanReplacedText(t *testing.T) {
	table := NewTable([]Pair{
		{Source: "http://a.com/about/", Target: "/about"},
		{Source: "/about", Target: "/about-us"},
	})

	out := table.Apply([]byte("see http://a.com/about/ now"))
	assert.Equal(t, "see /about now", string(out))
}

func TestApply_IdempotentForDisjointTable(t *testing.T) {
	table := NewTable([]Pair{
		{Source: "http://a.com/x/", Target: "/x"},
		{Source: "http://a.com/y/", Target: "/y"},
	})
	in := []byte("http://a.com/x/ and http://a.com/y/")
	once := table.Apply(in)
	assert.Equal(t, once, table.Apply(once))
}

func TestApply_EmptyTable(t *testing.T) {
	var table Table
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, []byte("unchanged"), table.Apply([]byte("unchanged")))
}

func TestApplyTo_OnlyDocuments(t *testing.T) {
	table := NewTable([]Pair{{Source: "http://a.com/img.jpg", Target: "/assets/img.jpg"}})
	page := &record.Result{Kind: record.KindPage, Content: []byte(`<img src="http://a.com/img.jpg">`)}
	resource := &record.Result{Kind: record.KindResource, Content: []byte("http://a.com/img.jpg")}
	failed := &record.Result{Kind: record.KindPost, Content: []byte("http://a.com/img.jpg"), Err: errors.New("x")}

	changed := table.ApplyTo([]*record.Result{page, resource, failed})
	require.Equal(t, 1, changed)
	assert.Equal(t, `<img src="/assets/img.jpg">`, string(page.Content))
	assert.Equal(t, "http://a.com/img.jpg", string(resource.Content))
	assert.Equal(t, "http://a.com/img.jpg", string(failed.Content))
}
