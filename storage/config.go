package storage

import (
	"fmt"

	"github.com/kbukum/storagekit/validation"
)

// Provider type discriminants for supported storage backends. Every member of
// the S3 family shares one implementation parameterized by endpoint/region.
const (
	ProviderS3     = "s3"
	ProviderMinIO  = "minio"
	ProviderB2     = "b2"
	ProviderR2     = "r2"
	ProviderGCS    = "gcs"
	ProviderSpaces = "spaces"
	ProviderAzure  = "azure"
)

// DefaultRegion is the default region for S3-family providers.
const DefaultRegion = "us-east-1"

// IsS3Family reports whether the provider type is served by the S3 backend.
func IsS3Family(provider string) bool {
	switch provider {
	case ProviderS3, ProviderMinIO, ProviderB2, ProviderR2, ProviderGCS, ProviderSpaces:
		return true
	}
	return false
}

// KnownProvider reports whether the provider type is recognized.
func KnownProvider(provider string) bool {
	return IsS3Family(provider) || provider == ProviderAzure
}

// S3Options holds credentials and connection settings for S3-family providers.
type S3Options struct {
	// Endpoint is a custom S3-compatible endpoint (MinIO, R2, B2, Spaces).
	// Empty means AWS S3 proper.
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`

	// Region is the provider region.
	Region string `mapstructure:"region" json:"region"`

	// AccessKey is the access key ID.
	AccessKey string `mapstructure:"access_key" json:"access_key" validate:"required"`

	// SecretKey is the secret access key.
	SecretKey string `mapstructure:"secret_key" json:"secret_key" validate:"required"`

	// ForcePathStyle forces path-style URLs instead of virtual-hosted-style.
	ForcePathStyle bool `mapstructure:"force_path_style" json:"force_path_style"`
}

// AzureOptions holds credentials for Azure Blob Storage: either a connection
// string or an account name/key pair, never both.
type AzureOptions struct {
	ConnectionString string `mapstructure:"connection_string" json:"connection_string"`
	AccountName      string `mapstructure:"account_name" json:"account_name"`
	AccountKey       string `mapstructure:"account_key" json:"account_key"`
}

// Config is the tagged provider configuration: Provider selects the backend
// family, and exactly one credential variant must be present for it.
type Config struct {
	// Provider is the mandatory type discriminant.
	Provider string `mapstructure:"provider" json:"provider"`

	// S3 carries credentials for S3-family providers.
	S3 *S3Options `mapstructure:"s3" json:"s3,omitempty"`

	// Azure carries credentials for Azure Blob Storage.
	Azure *AzureOptions `mapstructure:"azure" json:"azure,omitempty"`

	// PublicURLBase overrides the base URL used to build public object URLs.
	PublicURLBase string `mapstructure:"public_url_base" json:"public_url_base"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if IsS3Family(c.Provider) && c.S3 != nil && c.S3.Region == "" {
		c.S3.Region = DefaultRegion
	}
}

// Validate checks that the configuration matches its provider discriminant.
func (c *Config) Validate() error {
	switch {
	case c.Provider == "":
		return fmt.Errorf("storage: provider is required")
	case IsS3Family(c.Provider):
		if c.Azure != nil {
			return fmt.Errorf("storage: provider %q must not carry azure credentials", c.Provider)
		}
		if c.S3 == nil {
			return fmt.Errorf("storage: provider %q requires s3 credentials", c.Provider)
		}
		if err := validation.Struct(c.S3); err != nil {
			return fmt.Errorf("storage: invalid %s config: %w", c.Provider, err)
		}
	case c.Provider == ProviderAzure:
		if c.S3 != nil {
			return fmt.Errorf("storage: provider azure must not carry s3 credentials")
		}
		if c.Azure == nil {
			return fmt.Errorf("storage: provider azure requires azure credentials")
		}
		if err := c.Azure.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("storage: unsupported provider %q", c.Provider)
	}
	return nil
}

func (o *AzureOptions) validate() error {
	hasConnString := o.ConnectionString != ""
	hasAccountPair := o.AccountName != "" && o.AccountKey != ""
	if hasConnString && hasAccountPair {
		return fmt.Errorf("storage: azure config must carry a connection string or an account/key pair, not both")
	}
	if !hasConnString && !hasAccountPair {
		v := validation.New()
		v.Required("connection_string", o.ConnectionString)
		if o.AccountName != "" || o.AccountKey != "" {
			v = validation.New()
			v.Required("account_name", o.AccountName)
			v.Required("account_key", o.AccountKey)
		}
		return fmt.Errorf("storage: invalid azure config: %w", v.Validate())
	}
	return nil
}
