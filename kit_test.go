package storagekit

import (
	"context"
	"sort"
	"testing"

	"github.com/kbukum/storagekit/errors"
	"github.com/kbukum/storagekit/logger"
	"github.com/kbukum/storagekit/storage"
	"github.com/kbukum/storagekit/testutil"
)

// newTestKit wires memory backends into a kit without touching real SDKs.
func newTestKit(backends map[string]storage.Backend, defaultProvider string, opts Options) *Kit {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	reg := &Registry{
		names:    names,
		backends: backends,
		configs:  make(map[string]storage.Config, len(backends)),
	}
	return &Kit{
		ProviderKit: ProviderKit{h: newHandler(opts), backend: backends[defaultProvider], provider: defaultProvider},
		registry:    reg,
	}
}

func TestNew_SingleProvider(t *testing.T) {
	kit, err := New(context.Background(), azureConfig(), Options{
		DefaultBucket: "uploads",
		Logger:        logger.Nop(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if kit.Provider() != storage.ProviderAzure {
		t.Errorf("Provider() = %q, want azure", kit.Provider())
	}
	if got := kit.Registry().Names(); len(got) != 1 || got[0] != storage.ProviderAzure {
		t.Errorf("Names() = %v, want [azure]", got)
	}
	// single-provider mode still behaves as a one-entry registry
	if _, err := kit.UseProvider(storage.ProviderAzure); err != nil {
		t.Errorf("UseProvider(azure): %v", err)
	}
}

func TestNewWithProviders_DefaultValidatedFirst(t *testing.T) {
	// The config is structurally invalid; if the default-name check did not
	// run first, construction would fail with PROVIDER_ERROR instead.
	_, err := NewWithProviders(context.Background(), map[string]storage.Config{
		"broken": {Provider: storage.ProviderS3},
	}, "nope", Options{Logger: logger.Nop()})
	se, ok := errors.AsStorageError(err)
	if !ok || se.Code != errors.ErrCodeProviderNotConfigured {
		t.Fatalf("expected PROVIDER_NOT_CONFIGURED, got %v", err)
	}
	if se.Details["requested_provider"] != "nope" {
		t.Errorf("requested_provider = %v, want nope", se.Details["requested_provider"])
	}
}

func TestUseProvider_Unregistered(t *testing.T) {
	kit := newTestKit(map[string]storage.Backend{
		"r2": testutil.NewMemoryBackend("r2"),
	}, "r2", Options{})

	_, err := kit.UseProvider("azure")
	if !errors.HasCode(err, errors.ErrCodeProviderNotConfigured) {
		t.Errorf("expected PROVIDER_NOT_CONFIGURED, got %v", err)
	}
}

func TestUseProvider_SharesDefaultBucket(t *testing.T) {
	r2 := testutil.NewMemoryBackend("r2").CreateBucket("images")
	s3b := testutil.NewMemoryBackend("s3").CreateBucket("images")
	kit := newTestKit(map[string]storage.Backend{"r2": r2, "s3": s3b}, "r2", Options{
		DefaultBucket: "images",
	})

	parent, err := kit.Bucket("_")
	if err != nil {
		t.Fatalf("parent Bucket(_): %v", err)
	}

	scoped, err := kit.UseProvider("r2")
	if err != nil {
		t.Fatalf("UseProvider(r2): %v", err)
	}
	child, err := scoped.Bucket("_")
	if err != nil {
		t.Fatalf("scoped Bucket(_): %v", err)
	}

	if parent.Name() != "images" || child.Name() != parent.Name() {
		t.Errorf("bucket names differ: parent %q, scoped %q", parent.Name(), child.Name())
	}
}

func TestUseProvider_SharesHook(t *testing.T) {
	var hookCalls int
	r2 := testutil.NewMemoryBackend("r2").CreateBucket("uploads")
	azureMem := testutil.NewMemoryBackend("azure").CreateBucket("uploads")
	kit := newTestKit(map[string]storage.Backend{"r2": r2, "azure": azureMem}, "r2", Options{
		DefaultBucket:    "uploads",
		OnUploadComplete: func(url, key, bucket string) { hookCalls++ },
	})

	scoped, err := kit.UseProvider("azure")
	if err != nil {
		t.Fatalf("UseProvider: %v", err)
	}
	if _, err := scoped.Upload(context.Background(), "_", testFile("a.png", "image/png", 8), "", storage.UploadOptions{}); err != nil {
		t.Fatalf("scoped upload: %v", err)
	}
	if hookCalls != 1 {
		t.Errorf("hook fired %d times via scoped facade, want 1", hookCalls)
	}
	if !azureMem.Has("uploads", "a.png") {
		t.Error("upload did not reach the scoped backend")
	}
	if r2.Has("uploads", "a.png") {
		t.Error("upload leaked to the parent's default backend")
	}
}

func TestKit_BucketExplicitName(t *testing.T) {
	mem := testutil.NewMemoryBackend("r2").Put("media", "a", []byte("x"))
	kit := newTestKit(map[string]storage.Backend{"r2": mem}, "r2", Options{DefaultBucket: "uploads"})

	b, err := kit.Bucket("media")
	if err != nil {
		t.Fatalf("Bucket(media): %v", err)
	}
	if b.Name() != "media" {
		t.Errorf("explicit bucket resolved to %q", b.Name())
	}
	if err := b.Delete(context.Background(), "a"); err != nil {
		t.Errorf("delete via bucket handle: %v", err)
	}
}

func TestKit_BucketPlaceholderWithoutDefault(t *testing.T) {
	kit := newTestKit(map[string]storage.Backend{
		"r2": testutil.NewMemoryBackend("r2"),
	}, "r2", Options{})

	if _, err := kit.Bucket("_"); !errors.HasCode(err, errors.ErrCodeMissingRequiredParam) {
		t.Errorf("expected MISSING_REQUIRED_PARAM, got %v", err)
	}
}

func TestKit_HealthCheck(t *testing.T) {
	mem := testutil.NewMemoryBackend("r2")
	kit := newTestKit(map[string]storage.Backend{"r2": mem}, "r2", Options{})

	if got := kit.HealthCheck(context.Background()); got.Status != storage.StatusHealthy {
		t.Errorf("Status = %q, want healthy", got.Status)
	}
	mem.SetHealthy(false)
	got := kit.HealthCheck(context.Background())
	if got.Status != storage.StatusUnhealthy || got.ErrorMessage == "" {
		t.Errorf("unhealthy probe = %+v", got)
	}
}
