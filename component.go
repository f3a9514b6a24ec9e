package storagekit

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/storagekit/logger"
	"github.com/kbukum/storagekit/storage"
)

// ComponentHealth is the aggregated health of every configured provider.
type ComponentHealth struct {
	Name      string                                  `json:"name"`
	Status    storage.HealthStatus                    `json:"status"`
	Message   string                                  `json:"message,omitempty"`
	Providers map[string]*storage.HealthCheckResponse `json:"providers,omitempty"`
}

// Component wraps a Kit for applications that manage infrastructure through a
// component registry with Start/Stop/Health lifecycle hooks.
type Component struct {
	providers       map[string]storage.Config
	defaultProvider string
	opts            Options
	kit             *Kit
	log             *logger.Logger
}

// NewComponent creates a storage component. The kit is built on Start so a
// misconfigured provider fails application startup, not first use.
func NewComponent(providers map[string]storage.Config, defaultProvider string, opts Options) *Component {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefault()
	}
	return &Component{
		providers:       providers,
		defaultProvider: defaultProvider,
		opts:            opts,
		log:             log.WithComponent("storage"),
	}
}

// Kit returns the underlying kit, or nil if not started.
func (c *Component) Kit() *Kit { return c.kit }

// Name returns the component name.
func (c *Component) Name() string { return "storage" }

// Start constructs every configured backend.
func (c *Component) Start(ctx context.Context) error {
	kit, err := NewWithProviders(ctx, c.providers, c.defaultProvider, c.opts)
	if err != nil {
		return fmt.Errorf("storage start: %w", err)
	}
	c.kit = kit
	c.log.Info("storage component started", map[string]any{
		"providers":        kit.Registry().Names(),
		"default_provider": c.defaultProvider,
	})
	return nil
}

// Stop releases the kit. The SDK clients hold no connections that need
// closing, so this only drops the reference.
func (c *Component) Stop(_ context.Context) error {
	c.kit = nil
	return nil
}

// Health probes every configured provider and reports unhealthy if any probe
// fails. Per-provider results are included for diagnostics.
func (c *Component) Health(ctx context.Context) ComponentHealth {
	if c.kit == nil {
		return ComponentHealth{
			Name:    c.Name(),
			Status:  storage.StatusUnhealthy,
			Message: "storage not initialized",
		}
	}

	results := make(map[string]*storage.HealthCheckResponse)
	var unhealthy []string
	for _, name := range c.kit.Registry().Names() {
		backend, err := c.kit.Registry().Get(name)
		if err != nil {
			continue
		}
		resp := backend.HealthCheck(ctx)
		results[name] = resp
		if resp.Status != storage.StatusHealthy {
			unhealthy = append(unhealthy, name)
		}
	}

	health := ComponentHealth{
		Name:      c.Name(),
		Status:    storage.StatusHealthy,
		Providers: results,
	}
	if len(unhealthy) > 0 {
		health.Status = storage.StatusUnhealthy
		health.Message = "unhealthy providers: " + strings.Join(unhealthy, ", ")
	}
	return health
}
