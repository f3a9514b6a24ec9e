package storagekit

import (
	"context"
	"sort"

	"github.com/kbukum/storagekit/errors"
	"github.com/kbukum/storagekit/logger"
	"github.com/kbukum/storagekit/storage"
)

// ProviderKit is a facade bound to one backend. It exposes the full operation
// set and shares its parent's default bucket and upload hook; it cannot be
// re-scoped to another provider.
type ProviderKit struct {
	h        *handler
	backend  storage.Backend
	provider string
}

// Kit is the object applications hold. It is a ProviderKit bound to the
// default provider, plus the registry of every configured provider.
type Kit struct {
	ProviderKit
	registry *Registry
}

// New constructs a single-provider kit. It behaves exactly as a one-entry
// registry bound to its sole provider, so UseProvider still works for the
// provider type name.
func New(ctx context.Context, cfg storage.Config, opts Options) (*Kit, error) {
	return NewWithProviders(ctx, map[string]storage.Config{cfg.Provider: cfg}, cfg.Provider, opts)
}

// NewWithProviders constructs a multi-provider kit. The default provider name
// is checked against the providers map before any backend is built, so a
// misspelled default fails fast without side effects. Backend construction is
// all-or-nothing.
func NewWithProviders(ctx context.Context, providers map[string]storage.Config, defaultProvider string, opts Options) (*Kit, error) {
	if _, ok := providers[defaultProvider]; !ok {
		names := make([]string, 0, len(providers))
		for name := range providers {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, errors.ProviderNotConfigured(defaultProvider, names)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewDefault()
		opts.Logger = log
	}
	h := newHandler(opts)
	registry, err := NewRegistry(ctx, providers, log)
	if err != nil {
		return nil, err
	}
	backend, err := registry.Get(defaultProvider)
	if err != nil {
		return nil, err
	}

	return &Kit{
		ProviderKit: ProviderKit{h: h, backend: backend, provider: defaultProvider},
		registry:    registry,
	}, nil
}

// UseProvider returns a facade bound to the named backend. The returned
// ProviderKit shares this kit's default bucket and upload hook by reference.
func (k *Kit) UseProvider(name string) (*ProviderKit, error) {
	backend, err := k.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return &ProviderKit{h: k.h, backend: backend, provider: name}, nil
}

// Registry exposes the provider registry for introspection.
func (k *Kit) Registry() *Registry { return k.registry }

// Provider returns the provider name this facade is bound to.
func (p *ProviderKit) Provider() string { return p.provider }

// Upload validates and stores an uploaded file. The bucket accepts the "_"
// placeholder; the object key is folder/originalName with slash trimming.
func (p *ProviderKit) Upload(ctx context.Context, bucket string, file *storage.UploadedFile, folder string, opts storage.UploadOptions) (*storage.FileUploadResponse, error) {
	return p.h.upload(ctx, p.backend, bucket, file, folder, opts)
}

// Delete removes one object. Fails FILE_NOT_FOUND if the key does not exist.
func (p *ProviderKit) Delete(ctx context.Context, bucket, key string) error {
	return p.h.delete(ctx, p.backend, bucket, key)
}

// BulkDelete removes up to storage.MaxBulkDeleteKeys objects, reporting
// per-key failures in the response.
func (p *ProviderKit) BulkDelete(ctx context.Context, bucket string, keys []string) (*storage.BulkDeleteResponse, error) {
	return p.h.bulkDelete(ctx, p.backend, bucket, keys)
}

// SignedURL issues a presigned URL. urlType is "upload" or "download".
func (p *ProviderKit) SignedURL(ctx context.Context, bucket, key, urlType string, opts storage.SignedURLOptions) (*storage.SignedURLResponse, error) {
	return p.h.signedURL(ctx, p.backend, bucket, key, urlType, opts)
}

// HealthCheck probes the bound backend. It never returns an error.
func (p *ProviderKit) HealthCheck(ctx context.Context) *storage.HealthCheckResponse {
	return p.backend.HealthCheck(ctx)
}

// Bucket returns an immutable handle scoped to one bucket. The "_"
// placeholder resolves to the configured default bucket first.
func (p *ProviderKit) Bucket(name string) (storage.Bucket, error) {
	resolved, err := p.h.resolveBucket(name)
	if err != nil {
		return storage.Bucket{}, err
	}
	return storage.NewBucket(p.backend, resolved)
}

// Log returns the kit's logger, for callers that want to share it.
func (p *ProviderKit) Log() *logger.Logger { return p.h.log }
