// Package storage implements the upload blob store on gocloud.dev buckets.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Register the bucket schemes supported out of the box.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

const keyPrefix = "uploads"

// blobStore implements service.BlobStore on a gocloud.dev bucket, so the
// same code serves local disk, GCS and S3 depending on the bucket URL.
type blobStore struct {
	bucket *blob.Bucket
}

// Params holds dependencies for the blob store, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and returns it as a service.BlobStore.
func New(params Params) (service.BlobStore, error) {
	cfg := params.Config.Blob
	bucketURL := "mem://"
	if cfg != nil && cfg.BucketURL != "" {
		bucketURL = cfg.BucketURL
	} else {
		params.Logger.Info("Blob bucket not configured, using in-memory bucket")
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStore{bucket: bucket}, nil
}

// Save stores the blob under uploads/<category>/<uuid><ext> and returns the key.
func (s *blobStore) Save(ctx context.Context, category, ext string, r io.Reader) (string, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	key := fmt.Sprintf("%s/%s/%s%s", keyPrefix, category, uuid.NewString(), ext)

	w, err := s.bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to open blob writer")
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()

		return "", errors.Wrap(err, "failed to write blob")
	}

	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize blob")
	}

	return key, nil
}

// Open returns a reader for a previously stored blob.
func (s *blobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open blob %s", key)
	}

	return r, nil
}

// Close releases the underlying bucket.
func (s *blobStore) Close() error {
	return s.bucket.Close()
}
