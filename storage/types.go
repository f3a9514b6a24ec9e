package storage

import (
	"time"

	"github.com/kbukum/storagekit/errors"
)

// Operation limits and defaults.
const (
	// MaxBulkDeleteKeys is the inclusive upper bound on keys per bulk delete.
	MaxBulkDeleteKeys = 1000

	// DefaultSignedURLExpiry is used when no expiry is requested.
	DefaultSignedURLExpiry = time.Hour

	// MaxSignedURLExpiry caps requested expiries (7 days).
	MaxSignedURLExpiry = 7 * 24 * time.Hour
)

// UploadedFile is a normalized upload payload, created once per request by
// the caller and consumed once by the request handler.
type UploadedFile struct {
	Data         []byte
	OriginalName string
	MimeType     string
	Size         int64
}

// UploadOptions carries optional upload parameters.
type UploadOptions struct {
	// ContentType is stored as the object's content type when set.
	ContentType string
	// Upsert allows overwriting an existing object. Backends whose native
	// semantics always overwrite (S3 family) treat this as advisory.
	Upsert bool
}

// SignedURLOptions carries optional presigned-URL parameters.
type SignedURLOptions struct {
	// ContentType constrains the upload the signed URL authorizes.
	ContentType string
	// ExpiresIn is the URL lifetime. Zero or negative uses
	// DefaultSignedURLExpiry; values above MaxSignedURLExpiry are clamped.
	ExpiresIn time.Duration
}

// Expiry returns the effective lifetime after defaulting and clamping.
func (o SignedURLOptions) Expiry() time.Duration {
	if o.ExpiresIn <= 0 {
		return DefaultSignedURLExpiry
	}
	if o.ExpiresIn > MaxSignedURLExpiry {
		return MaxSignedURLExpiry
	}
	return o.ExpiresIn
}

// FileUploadResponse is the result of a successful upload.
type FileUploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// SignedURLResponse is the result of presigned URL issuance.
type SignedURLResponse struct {
	SignedURL string    `json:"signedUrl"`
	PublicURL string    `json:"publicUrl,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// BulkDeleteFailure reports one key that could not be deleted.
type BulkDeleteFailure struct {
	Key        string           `json:"key"`
	ReasonCode errors.ErrorCode `json:"reasonCode"`
}

// BulkDeleteResponse is the result of a bulk delete. Some keys may succeed
// while others report a per-key reason; a non-empty Failures list is still a
// successful call, distinct from a whole-operation error.
type BulkDeleteResponse struct {
	DeletedCount int                 `json:"deletedCount"`
	Failures     []BulkDeleteFailure `json:"failures"`
}

// HealthStatus is the outcome of a connectivity probe.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheckResponse is the result of a health check. Probe failures are
// reported here, never as an error.
type HealthCheckResponse struct {
	Status       HealthStatus `json:"status"`
	ProviderName string       `json:"providerName,omitempty"`
	ErrorMessage string       `json:"errorMessage,omitempty"`
}
