package storage

import (
	"context"
	"io"

	"github.com/kbukum/storagekit/errors"
)

// Backend defines the operation contract for object storage backends.
//
// Implementations translate their native SDK errors into the taxonomy of the
// errors package: a missing bucket is BUCKET_NOT_FOUND, a missing key is
// FILE_NOT_FOUND, and anything unrecognized is wrapped as PROVIDER_ERROR.
// No method returns a raw SDK error.
type Backend interface {
	// Provider returns the provider type name (e.g. "s3", "r2", "azure").
	Provider() string

	// Upload stores size bytes from reader under key in the given bucket.
	// Fails BUCKET_NOT_FOUND if the bucket does not exist and UPLOAD_FAILED
	// on any transport error.
	Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts UploadOptions) (*FileUploadResponse, error)

	// Delete removes the object at key. The key's existence is verified
	// before deletion, so a missing key fails FILE_NOT_FOUND even on
	// backends that delete idempotently.
	Delete(ctx context.Context, bucket, key string) error

	// BulkDelete removes up to MaxBulkDeleteKeys objects. Partial failure is
	// expressed per key in the response; the call itself only fails for
	// whole-operation errors such as a missing bucket.
	BulkDelete(ctx context.Context, bucket string, keys []string) (*BulkDeleteResponse, error)

	// PresignedUploadURL returns a time-limited URL authorizing one upload.
	PresignedUploadURL(ctx context.Context, bucket, key string, opts SignedURLOptions) (*SignedURLResponse, error)

	// PresignedDownloadURL returns a time-limited URL authorizing one download.
	PresignedDownloadURL(ctx context.Context, bucket, key string, opts SignedURLOptions) (*SignedURLResponse, error)

	// HealthCheck performs a cheap connectivity probe. It never returns an
	// error: connectivity failures are reported in the response status.
	HealthCheck(ctx context.Context) *HealthCheckResponse
}

// Bucket is an immutable pairing of a backend and one bucket name. It exposes
// the backend's operation set without the bucket argument, so concurrent
// selections of different buckets never interfere.
type Bucket struct {
	backend Backend
	name    string
}

// NewBucket creates a bucket-scoped handle. The name must be non-empty.
func NewBucket(b Backend, name string) (Bucket, error) {
	if name == "" {
		return Bucket{}, errors.MissingRequiredParam("bucket")
	}
	return Bucket{backend: b, name: name}, nil
}

// Name returns the bucket name the handle is scoped to.
func (b Bucket) Name() string { return b.name }

// Backend returns the underlying backend.
func (b Bucket) Backend() Backend { return b.backend }

func (b Bucket) Upload(ctx context.Context, key string, reader io.Reader, size int64, opts UploadOptions) (*FileUploadResponse, error) {
	return b.backend.Upload(ctx, b.name, key, reader, size, opts)
}

func (b Bucket) Delete(ctx context.Context, key string) error {
	return b.backend.Delete(ctx, b.name, key)
}

func (b Bucket) BulkDelete(ctx context.Context, keys []string) (*BulkDeleteResponse, error) {
	return b.backend.BulkDelete(ctx, b.name, keys)
}

func (b Bucket) PresignedUploadURL(ctx context.Context, key string, opts SignedURLOptions) (*SignedURLResponse, error) {
	return b.backend.PresignedUploadURL(ctx, b.name, key, opts)
}

func (b Bucket) PresignedDownloadURL(ctx context.Context, key string, opts SignedURLOptions) (*SignedURLResponse, error) {
	return b.backend.PresignedDownloadURL(ctx, b.name, key, opts)
}
