package sitefs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(map[string][]byte{"content/about/index.html": []byte("old")})

	exists, err := store.Exists(ctx, "content/about/index.html")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Write(ctx, "content//posts/../posts/a.html", []byte("new")))
	data, ok := store.Get("content/posts/a.html")
	require.True(t, ok)
	assert.Equal(t, "new", string(data))

	assert.Equal(t, []string{"content/about/index.html", "content/posts/a.html"}, store.Paths())
}

func TestMemoryStoreWriteErr(t *testing.T) {
	store := NewMemoryStore(nil)
	store.WriteErr["content/x.html"] = errors.New("disk full")

	err := store.Write(context.Background(), "content/x.html", nil)
	require.EqualError(t, err, "disk full")
	_, ok := store.Get("content/x.html")
	assert.False(t, ok)
}

func TestMemoryStoreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryStore(nil).Exists(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}
