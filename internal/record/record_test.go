package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_PreservesInsertionOrder(t *testing.T) {
	a := NewAttributes()
	a.Set("author", "admin")
	a.Set("excerpt", "")
	a.SetPermalink("/about")
	a.Set("author", "editor")

	assert.Equal(t, []string{"author", "excerpt", "permalink"}, a.Keys())
	v, ok := a.GetString("author")
	require.True(t, ok)
	assert.Equal(t, "editor", v)

	var seen []string
	a.Each(func(k string, _ any) { seen = append(seen, k) })
	assert.Equal(t, a.Keys(), seen)
}

func TestAttributes_Delete(t *testing.T) {
	a := NewAttributes()
	a.Set("a", 1)
	a.Set("b", 2)
	a.Delete("a")
	a.Delete("missing")

	assert.Equal(t, []string{"b"}, a.Keys())
	assert.False(t, a.Has("a"))
	assert.Equal(t, 1, a.Len())
}

func TestAttributes_CloneIsIndependent(t *testing.T) {
	a := NewAttributes()
	a.SetLayout("post")

	c := a.Clone()
	c.SetTitle("Hello")
	c.SetLayout("page")

	layout, _ := a.Layout()
	assert.Equal(t, "post", layout)
	assert.False(t, a.Has(KeyTitle))
	assert.Equal(t, []string{KeyLayout, KeyTitle}, c.Keys())
}

func TestAttributes_TypedAccessors(t *testing.T) {
	a := NewAttributes()
	_, ok := a.Permalink()
	assert.False(t, ok)

	a.SetNoHTMLExtension(true)
	v, ok := a.Get(KeyNoHTMLExtension)
	require.True(t, ok)
	assert.Equal(t, true, v)

	a.Set(KeyLayout, 3)
	_, ok = a.Layout()
	assert.False(t, ok, "non-string layout is not a layout")
}

func TestRecord_Defaults(t *testing.T) {
	r := &Record{Kind: KindPost}
	assert.Equal(t, "html", r.Ext())
	assert.NotNil(t, r.Attrs())
	assert.Equal(t, "post", r.Kind.String())
	assert.True(t, KindPage.IsDocument())
	assert.False(t, KindResource.IsDocument())

	r.Extension = "md"
	assert.Equal(t, "md", r.Ext())
}

func TestResult_Error(t *testing.T) {
	rec := New(KindPage, "http://example.com/a/")
	res := Failed(rec, errors.New("boom"))

	assert.True(t, res.HasError())
	assert.Equal(t, "boom", res.Message())
	assert.Equal(t, "http://example.com/a/", res.SourcePermalink)
	assert.Empty(t, res.Permalink)

	ok := &Result{}
	assert.False(t, ok.HasError())
	assert.Empty(t, ok.Message())
}
