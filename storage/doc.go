// Package storage defines the operation contract every storage backend must
// satisfy, the normalized request/response types, and the provider
// configuration variants.
//
// # Backends
//
//   - storage/s3: Amazon S3 and S3-compatible services (MinIO, Backblaze B2,
//     Cloudflare R2, Google Cloud Storage interop, DigitalOcean Spaces)
//   - storage/azure: Azure Blob Storage
//
// Every operation takes the bucket name explicitly; Bucket is an immutable
// value pairing a backend with one bucket for callers that want a scoped
// handle. Backends never mutate shared state when a bucket is selected.
package storage
