package storagekit

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/storagekit/errors"
	"github.com/kbukum/storagekit/logger"
	"github.com/kbukum/storagekit/storage"
	"github.com/kbukum/storagekit/validation"
)

// DefaultMaxFileSize is the upload size ceiling when Options does not set one.
const DefaultMaxFileSize = 10 << 20 // 10 MiB

// Signed URL operation types accepted by SignedURL.
const (
	SignedURLTypeUpload   = "upload"
	SignedURLTypeDownload = "download"
)

// Options configures the kit's request handling.
type Options struct {
	// DefaultBucket is substituted when a caller passes the bucket
	// placeholder "_". Empty means no default: the placeholder fails with
	// MISSING_REQUIRED_PARAM.
	DefaultBucket string

	// MaxFileSize caps upload payloads in bytes. Zero means
	// DefaultMaxFileSize.
	MaxFileSize int64

	// AllowedMimeTypes restricts upload content types. An entry ending in
	// "/*" matches by prefix ("image/*" matches "image/png"); any other
	// entry matches exactly. Empty means all types are allowed.
	AllowedMimeTypes []string

	// OnUploadComplete is invoked synchronously after each successful
	// upload. Panics inside the hook are recovered and logged, never
	// propagated to the caller.
	OnUploadComplete func(url, key, bucket string)

	// Logger overrides the default stdout JSON logger.
	Logger *logger.Logger
}

// handler is the stateless validation and dispatch layer. Every operation
// resolves the bucket, validates its inputs, and only then touches a backend.
type handler struct {
	defaultBucket    string
	maxFileSize      int64
	allowedMimeTypes []string
	onUploadComplete func(url, key, bucket string)
	log              *logger.Logger
}

func newHandler(opts Options) *handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefault()
	}
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &handler{
		defaultBucket:    opts.DefaultBucket,
		maxFileSize:      maxSize,
		allowedMimeTypes: opts.AllowedMimeTypes,
		onUploadComplete: opts.OnUploadComplete,
		log:              log.WithComponent("storage.handler"),
	}
}

func (h *handler) resolveBucket(requested string) (string, error) {
	return storage.ResolveBucket(requested, h.defaultBucket)
}

// upload validates the payload, resolves the bucket, builds the object key
// and dispatches to the backend. The completion hook fires after a successful
// upload only.
func (h *handler) upload(ctx context.Context, backend storage.Backend, bucket string, file *storage.UploadedFile, folder string, opts storage.UploadOptions) (*storage.FileUploadResponse, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, errors.MissingFile()
	}
	if err := validation.New().Required("fileName", file.OriginalName).Validate(); err != nil {
		return nil, err
	}

	size := file.Size
	if size <= 0 {
		size = int64(len(file.Data))
	}
	if size > h.maxFileSize {
		return nil, errors.FileTooLarge(size, h.maxFileSize)
	}
	if !mimeAllowed(file.MimeType, h.allowedMimeTypes) {
		return nil, errors.MimeTypeNotAllowed(file.MimeType, h.allowedMimeTypes)
	}

	resolved, err := h.resolveBucket(bucket)
	if err != nil {
		return nil, err
	}

	if opts.ContentType == "" {
		opts.ContentType = file.MimeType
	}
	key := storage.BuildKey(folder, file.OriginalName)

	resp, err := backend.Upload(ctx, resolved, key, bytes.NewReader(file.Data), size, opts)
	if err != nil {
		return nil, err
	}

	h.fireUploadComplete(resp.URL, resp.Key, resolved)
	h.log.Info("file uploaded", map[string]any{
		logger.FieldProvider: backend.Provider(),
		logger.FieldBucket:   resolved,
		logger.FieldKey:      resp.Key,
		"size":               size,
	})
	return resp, nil
}

func (h *handler) fireUploadComplete(url, key, bucket string) {
	if h.onUploadComplete == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			h.log.Warn("upload completion hook panicked", map[string]any{
				logger.FieldKey: key,
				"panic":         fmt.Sprint(r),
			})
		}
	}()
	h.onUploadComplete(url, key, bucket)
}

func (h *handler) delete(ctx context.Context, backend storage.Backend, bucket, key string) error {
	if err := validation.New().Required("key", key).Validate(); err != nil {
		return err
	}
	resolved, err := h.resolveBucket(bucket)
	if err != nil {
		return err
	}
	return backend.Delete(ctx, resolved, key)
}

// bulkDelete enforces the 1..MaxBulkDeleteKeys bound before dispatch. The
// upper bound is inclusive.
func (h *handler) bulkDelete(ctx context.Context, backend storage.Backend, bucket string, keys []string) (*storage.BulkDeleteResponse, error) {
	if keys == nil {
		return nil, errors.MissingRequiredParam("keys")
	}
	if len(keys) == 0 {
		return nil, errors.EmptyKeysArray()
	}
	if len(keys) > storage.MaxBulkDeleteKeys {
		return nil, errors.KeysLimitExceeded(len(keys), storage.MaxBulkDeleteKeys)
	}
	resolved, err := h.resolveBucket(bucket)
	if err != nil {
		return nil, err
	}
	return backend.BulkDelete(ctx, resolved, keys)
}

func (h *handler) signedURL(ctx context.Context, backend storage.Backend, bucket, key, urlType string, opts storage.SignedURLOptions) (*storage.SignedURLResponse, error) {
	if err := validation.New().
		Required("key", key).
		Required("type", urlType).
		Validate(); err != nil {
		return nil, err
	}
	if urlType != SignedURLTypeUpload && urlType != SignedURLTypeDownload {
		return nil, errors.InvalidSignedURLType(urlType)
	}
	resolved, err := h.resolveBucket(bucket)
	if err != nil {
		return nil, err
	}
	if urlType == SignedURLTypeUpload {
		return backend.PresignedUploadURL(ctx, resolved, key, opts)
	}
	return backend.PresignedDownloadURL(ctx, resolved, key, opts)
}

// mimeAllowed reports whether mimeType matches the allow-list. A "prefix/*"
// entry matches any subtype of that prefix; other entries match exactly. An
// empty list allows everything.
func mimeAllowed(mimeType string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, entry := range allowed {
		if prefix, ok := strings.CutSuffix(entry, "/*"); ok {
			if strings.HasPrefix(mimeType, prefix+"/") {
				return true
			}
			continue
		}
		if mimeType == entry {
			return true
		}
	}
	return false
}
