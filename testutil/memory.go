package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/kbukum/storagekit/errors"
	"github.com/kbukum/storagekit/storage"
)

// MemoryBackend is an in-memory implementation of storage.Backend. Buckets
// must be created with CreateBucket before use; operations against unknown
// buckets fail with BUCKET_NOT_FOUND, matching real provider behavior.
type MemoryBackend struct {
	mu       sync.Mutex
	name     string
	buckets  map[string]map[string][]byte
	failOn   map[string]error
	healthy  bool
	Uploads  int
	Deletes  int
	Presigns int
}

// NewMemoryBackend returns an empty healthy backend reporting the given
// provider name.
func NewMemoryBackend(name string) *MemoryBackend {
	return &MemoryBackend{
		name:    name,
		buckets: make(map[string]map[string][]byte),
		failOn:  make(map[string]error),
		healthy: true,
	}
}

// CreateBucket registers a bucket so subsequent operations against it succeed.
func (m *MemoryBackend) CreateBucket(bucket string) *MemoryBackend {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.buckets[bucket]; !ok {
		m.buckets[bucket] = make(map[string][]byte)
	}
	return m
}

// Put seeds an object directly, creating the bucket if needed.
func (m *MemoryBackend) Put(bucket, key string, data []byte) *MemoryBackend {
	m.CreateBucket(bucket)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buckets[bucket][key] = data
	return m
}

// Has reports whether the object exists.
func (m *MemoryBackend) Has(bucket, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	objects, ok := m.buckets[bucket]
	if !ok {
		return false
	}
	_, ok = objects[key]
	return ok
}

// FailOn makes the named operation ("upload", "delete", "bulkdelete",
// "presign") return the given error.
func (m *MemoryBackend) FailOn(op string, err error) *MemoryBackend {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOn[op] = err
	return m
}

// SetHealthy controls the HealthCheck result.
func (m *MemoryBackend) SetHealthy(healthy bool) *MemoryBackend {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthy = healthy
	return m
}

func (m *MemoryBackend) injected(op string) error {
	return m.failOn[op]
}

// Provider returns the provider name the backend was created with.
func (m *MemoryBackend) Provider() string { return m.name }

func (m *MemoryBackend) Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts storage.UploadOptions) (*storage.FileUploadResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("upload"); err != nil {
		return nil, errors.UploadFailed(err)
	}
	objects, ok := m.buckets[bucket]
	if !ok {
		return nil, errors.BucketNotFound(bucket)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.UploadFailed(err)
	}
	objects[key] = data
	m.Uploads++
	return &storage.FileUploadResponse{
		URL: fmt.Sprintf("memory://%s/%s", bucket, key),
		Key: key,
	}, nil
}

func (m *MemoryBackend) Delete(ctx context.Context, bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("delete"); err != nil {
		return errors.DeleteFailed(err)
	}
	objects, ok := m.buckets[bucket]
	if !ok {
		return errors.BucketNotFound(bucket)
	}
	if _, ok := objects[key]; !ok {
		return errors.FileNotFound(key)
	}
	delete(objects, key)
	m.Deletes++
	return nil
}

func (m *MemoryBackend) BulkDelete(ctx context.Context, bucket string, keys []string) (*storage.BulkDeleteResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("bulkdelete"); err != nil {
		return nil, errors.DeleteFailed(err)
	}
	objects, ok := m.buckets[bucket]
	if !ok {
		return nil, errors.BucketNotFound(bucket)
	}
	resp := &storage.BulkDeleteResponse{Failures: make([]storage.BulkDeleteFailure, 0)}
	for _, key := range keys {
		if _, ok := objects[key]; !ok {
			resp.Failures = append(resp.Failures, storage.BulkDeleteFailure{
				Key:        key,
				ReasonCode: errors.ErrCodeFileNotFound,
			})
			continue
		}
		delete(objects, key)
		resp.DeletedCount++
	}
	return resp, nil
}

func (m *MemoryBackend) PresignedUploadURL(ctx context.Context, bucket, key string, opts storage.SignedURLOptions) (*storage.SignedURLResponse, error) {
	return m.presign(bucket, key, "upload", opts)
}

func (m *MemoryBackend) PresignedDownloadURL(ctx context.Context, bucket, key string, opts storage.SignedURLOptions) (*storage.SignedURLResponse, error) {
	return m.presign(bucket, key, "download", opts)
}

func (m *MemoryBackend) presign(bucket, key, kind string, opts storage.SignedURLOptions) (*storage.SignedURLResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("presign"); err != nil {
		return nil, errors.SignedURLFailed(err)
	}
	if _, ok := m.buckets[bucket]; !ok {
		return nil, errors.BucketNotFound(bucket)
	}
	m.Presigns++
	return &storage.SignedURLResponse{
		SignedURL: fmt.Sprintf("memory://%s/%s?sig=%s", bucket, key, kind),
		ExpiresAt: time.Now().UTC().Add(opts.Expiry()),
	}, nil
}

func (m *MemoryBackend) HealthCheck(ctx context.Context) *storage.HealthCheckResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.healthy {
		return &storage.HealthCheckResponse{
			Status:       storage.StatusUnhealthy,
			ProviderName: m.name,
			ErrorMessage: "injected failure",
		}
	}
	return &storage.HealthCheckResponse{
		Status:       storage.StatusHealthy,
		ProviderName: m.name,
	}
}

var _ storage.Backend = (*MemoryBackend)(nil)
