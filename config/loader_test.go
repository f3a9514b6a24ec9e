package config

import (
	"os"
	"path/filepath"
	"testing"
)

type kitConfig struct {
	DefaultProvider string                `mapstructure:"default_provider"`
	DefaultBucket   string                `mapstructure:"default_bucket"`
	Providers       map[string]providerCf `mapstructure:"providers"`
}

type providerCf struct {
	Provider string `mapstructure:"provider"`
	S3       *struct {
		Endpoint  string `mapstructure:"endpoint"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"s3"`
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yaml := `
default_provider: r2
default_bucket: uploads
providers:
  r2:
    provider: r2
    s3:
      endpoint: https://acc.r2.cloudflarestorage.com
      access_key: AK
      secret_key: SK
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	var cfg kitConfig
	if err := Load("STORAGEKIT", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultProvider != "r2" {
		t.Errorf("default_provider = %q, want r2", cfg.DefaultProvider)
	}
	if cfg.Providers["r2"].S3 == nil || cfg.Providers["r2"].S3.AccessKey != "AK" {
		t.Errorf("expected r2 s3 credentials, got %+v", cfg.Providers["r2"])
	}
}

func TestLoad_EnvFileApplied(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("STORAGEKIT_DEFAULT_BUCKET=media\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("STORAGEKIT_DEFAULT_BUCKET") })

	cfgPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(cfgPath, []byte("default_bucket: uploads\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var cfg kitConfig
	if err := Load("STORAGEKIT", &cfg, WithConfigFile(cfgPath), WithEnvFile(envPath)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultBucket != "media" {
		t.Errorf("default_bucket = %q, want media (env overrides file)", cfg.DefaultBucket)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	var cfg kitConfig
	if err := Load("STORAGEKIT", &cfg, WithConfigFile("/nonexistent/config.yml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
