package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
)

func newMemStore(t *testing.T) *blobStore {
	t.Helper()

	bucket, err := blob.OpenBucket(context.Background(), "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { bucket.Close() })

	return &blobStore{bucket: bucket}
}

func TestBlobStore_SaveAndOpen(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()

	key, err := store.Save(ctx, "avatar", ".png", strings.NewReader("image-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "uploads/avatar/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	r, err := store.Open(ctx, key)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestBlobStore_SaveNormalizesExtension(t *testing.T) {
	store := newMemStore(t)

	key, err := store.Save(context.Background(), "product", "jpg", strings.NewReader("x"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotContains(t, key, "..")
}

func TestBlobStore_KeysAreUnique(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, "brand", ".png", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save(ctx, "brand", ".png", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
