// Package storagekit provides a single storage interface over multiple
// object-storage providers. S3-compatible services (AWS S3, MinIO, Backblaze
// B2, Cloudflare R2, GCS, DigitalOcean Spaces) and Azure Blob Storage are
// supported behind one operation contract: upload, delete, bulk delete,
// presigned URL issuance and health checks.
//
// Applications hold a Kit, constructed from one provider config or from a
// providers map with a declared default. All providers are built eagerly so a
// configuration mistake fails at startup rather than on first use.
//
//	kit, err := storagekit.New(ctx, storage.Config{
//		Provider: storage.ProviderR2,
//		S3: &storage.S3Options{
//			Endpoint:  "https://<account>.r2.cloudflarestorage.com",
//			AccessKey: os.Getenv("R2_ACCESS_KEY"),
//			SecretKey: os.Getenv("R2_SECRET_KEY"),
//		},
//	}, storagekit.Options{DefaultBucket: "uploads"})
//
// Callers may pass the literal bucket "_" to any operation to mean "use the
// configured default bucket". All failures are *errors.StorageError values
// carrying a machine code and an HTTP status for adapter boundaries.
package storagekit
