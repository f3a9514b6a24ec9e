package storagekit

import (
	"context"
	"fmt"
	"sort"

	"github.com/kbukum/storagekit/errors"
	"github.com/kbukum/storagekit/logger"
	"github.com/kbukum/storagekit/storage"
	"github.com/kbukum/storagekit/storage/azure"
	"github.com/kbukum/storagekit/storage/s3"
)

// Registry holds one constructed backend per configured provider name. It is
// built eagerly and is read-only afterward, so concurrent lookups from many
// in-flight requests need no locking.
type Registry struct {
	names    []string
	backends map[string]storage.Backend
	configs  map[string]storage.Config
}

// NewRegistry constructs every backend in the providers map. Construction is
// all-or-nothing: the first provider that fails validation or client
// construction aborts the whole registry with a PROVIDER_ERROR carrying the
// provider name. Names are held in sorted order for deterministic listing.
func NewRegistry(ctx context.Context, providers map[string]storage.Config, log *logger.Logger) (*Registry, error) {
	regLog := log.WithComponent("storage.registry")
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)

	r := &Registry{
		names:    names,
		backends: make(map[string]storage.Backend, len(providers)),
		configs:  make(map[string]storage.Config, len(providers)),
	}
	for _, name := range names {
		backend, err := buildBackend(ctx, providers[name], log)
		if err != nil {
			return nil, errors.ProviderError(err).WithDetail("provider_name", name)
		}
		r.backends[name] = backend
		r.configs[name] = providers[name]
		regLog.Info("storage provider initialized", map[string]any{
			logger.FieldProvider: name,
			"provider_type":      providers[name].Provider,
		})
	}
	return r, nil
}

// buildBackend maps a validated provider config to its concrete backend. The
// switch is closed over the known provider families; Config.Validate rejects
// anything else before this point.
func buildBackend(ctx context.Context, cfg storage.Config, log *logger.Logger) (storage.Backend, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case storage.IsS3Family(cfg.Provider):
		return s3.New(ctx, cfg, log)
	case cfg.Provider == storage.ProviderAzure:
		return azure.New(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported provider type %q", cfg.Provider)
	}
}

// Get returns the backend registered under name.
func (r *Registry) Get(name string) (storage.Backend, error) {
	backend, ok := r.backends[name]
	if !ok {
		return nil, errors.ProviderNotConfigured(name, r.Names())
	}
	return backend, nil
}

// Has reports whether a provider is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.backends[name]
	return ok
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Config returns the original config a provider was registered with.
func (r *Registry) Config(name string) (storage.Config, bool) {
	cfg, ok := r.configs[name]
	return cfg, ok
}
