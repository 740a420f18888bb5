package service

import (
	"context"
	"io"
)

// Upload categories determine the key prefix a blob is stored under.
const (
	UploadCategoryAvatar       = "avatar"
	UploadCategoryBrand        = "brand"
	UploadCategoryCategoryIcon = "category_icon"
	UploadCategoryProduct      = "product"
)

// BlobStore is an opaque blob store for uploaded images. Objects are keyed
// by a generated random ID under a category-specific prefix; the key is the
// only handle callers ever see.
type BlobStore interface {
	// Save stores the blob and returns its generated key, shaped as
	// uploads/<category>/<uuid><ext>.
	Save(ctx context.Context, category, ext string, r io.Reader) (string, error)

	// Open returns a reader for a previously stored blob.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Close releases the underlying bucket.
	Close() error
}
