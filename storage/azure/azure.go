// Package azure implements the storage backend contract for Azure Blob
// Storage. Buckets map to containers and keys map to blob names.
package azure

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"

	"github.com/kbukum/storagekit/errors"
	"github.com/kbukum/storagekit/logger"
	"github.com/kbukum/storagekit/storage"
)

// Backend implements storage.Backend on the Azure Blob SDK. One instance
// wraps one service client, which is safe for concurrent use.
type Backend struct {
	client        *azblob.Client
	serviceURL    string
	publicURLBase string
	log           *logger.Logger
}

// New creates an Azure backend from a validated provider config. A connection
// string or an account name/key pair is accepted; both carry a shared key, so
// SAS issuance works either way.
func New(cfg storage.Config, log *logger.Logger) (*Backend, error) {
	if cfg.Provider != storage.ProviderAzure || cfg.Azure == nil {
		return nil, fmt.Errorf("azure: config is not an azure config (provider %q)", cfg.Provider)
	}

	var client *azblob.Client
	var err error
	if cfg.Azure.ConnectionString != "" {
		client, err = azblob.NewClientFromConnectionString(cfg.Azure.ConnectionString, nil)
	} else {
		var cred *azblob.SharedKeyCredential
		cred, err = azblob.NewSharedKeyCredential(cfg.Azure.AccountName, cfg.Azure.AccountKey)
		if err == nil {
			serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", cfg.Azure.AccountName)
			client, err = azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("azure: create client: %w", err)
	}

	return &Backend{
		client:        client,
		serviceURL:    strings.TrimRight(client.URL(), "/"),
		publicURLBase: cfg.PublicURLBase,
		log:           log.WithComponent("storage.azure"),
	}, nil
}

// Provider returns the provider type.
func (b *Backend) Provider() string { return storage.ProviderAzure }

// Upload streams the blob into the container. With Upsert disabled the write
// carries an If-None-Match condition so an existing blob is not replaced.
func (b *Backend) Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts storage.UploadOptions) (*storage.FileUploadResponse, error) {
	uploadOpts := &azblob.UploadStreamOptions{}
	if opts.ContentType != "" {
		uploadOpts.HTTPHeaders = &blob.HTTPHeaders{
			BlobContentType: to.Ptr(opts.ContentType),
		}
	}
	if !opts.Upsert {
		uploadOpts.AccessConditions = &blob.AccessConditions{
			ModifiedAccessConditions: &blob.ModifiedAccessConditions{
				IfNoneMatch: to.Ptr(azcore.ETagAny),
			},
		}
	}

	if _, err := b.client.UploadStream(ctx, bucket, key, reader, uploadOpts); err != nil {
		if isContainerNotFound(err) {
			return nil, errors.BucketNotFound(bucket).WithCause(err)
		}
		return nil, errors.UploadFailed(err).WithDetails(map[string]any{
			"bucket": bucket, "key": key,
		})
	}

	return &storage.FileUploadResponse{
		URL: b.publicURL(bucket, key),
		Key: key,
	}, nil
}

// Delete verifies the blob exists and removes it.
func (b *Backend) Delete(ctx context.Context, bucket, key string) error {
	blobClient := b.client.ServiceClient().NewContainerClient(bucket).NewBlobClient(key)
	if _, err := blobClient.GetProperties(ctx, nil); err != nil {
		if isContainerNotFound(err) {
			return errors.BucketNotFound(bucket).WithCause(err)
		}
		if isBlobNotFound(err) {
			return errors.FileNotFound(key).WithDetail("bucket", bucket).WithCause(err)
		}
		return errors.DeleteFailed(err).WithDetails(map[string]any{"bucket": bucket, "key": key})
	}

	if _, err := b.client.DeleteBlob(ctx, bucket, key, nil); err != nil {
		return errors.DeleteFailed(err).WithDetails(map[string]any{"bucket": bucket, "key": key})
	}
	return nil
}

// BulkDelete removes blobs one by one. The container is probed once up
// front, so a missing container fails the whole operation before any
// deletion side effects; after that the batch always runs to completion and
// failures are reported per key.
func (b *Backend) BulkDelete(ctx context.Context, bucket string, keys []string) (*storage.BulkDeleteResponse, error) {
	containerClient := b.client.ServiceClient().NewContainerClient(bucket)
	if _, err := containerClient.GetProperties(ctx, nil); err != nil {
		if isContainerNotFound(err) {
			return nil, errors.BucketNotFound(bucket).WithCause(err)
		}
		return nil, errors.DeleteFailed(err).WithDetail("bucket", bucket)
	}

	resp := &storage.BulkDeleteResponse{Failures: make([]storage.BulkDeleteFailure, 0)}
	for _, key := range keys {
		if _, err := b.client.DeleteBlob(ctx, bucket, key, nil); err != nil {
			reason := errors.ErrCodeDeleteFailed
			if isBlobNotFound(err) {
				reason = errors.ErrCodeFileNotFound
			}
			resp.Failures = append(resp.Failures, storage.BulkDeleteFailure{
				Key:        key,
				ReasonCode: reason,
			})
			continue
		}
		resp.DeletedCount++
	}
	return resp, nil
}

// PresignedUploadURL returns a SAS URL authorizing blob creation.
func (b *Backend) PresignedUploadURL(ctx context.Context, bucket, key string, opts storage.SignedURLOptions) (*storage.SignedURLResponse, error) {
	expiry := opts.Expiry()
	expiresAt := time.Now().UTC().Add(expiry)

	blobClient := b.client.ServiceClient().NewContainerClient(bucket).NewBlobClient(key)
	sasURL, err := blobClient.GetSASURL(sas.BlobPermissions{Create: true, Write: true}, expiresAt, nil)
	if err != nil {
		return nil, errors.SignedURLFailed(err).WithDetails(map[string]any{"bucket": bucket, "key": key})
	}

	return &storage.SignedURLResponse{
		SignedURL: sasURL,
		PublicURL: b.publicURL(bucket, key),
		ExpiresAt: expiresAt,
	}, nil
}

// PresignedDownloadURL returns a read-only SAS URL.
func (b *Backend) PresignedDownloadURL(ctx context.Context, bucket, key string, opts storage.SignedURLOptions) (*storage.SignedURLResponse, error) {
	expiry := opts.Expiry()
	expiresAt := time.Now().UTC().Add(expiry)

	blobClient := b.client.ServiceClient().NewContainerClient(bucket).NewBlobClient(key)
	sasURL, err := blobClient.GetSASURL(sas.BlobPermissions{Read: true}, expiresAt, nil)
	if err != nil {
		return nil, errors.SignedURLFailed(err).WithDetails(map[string]any{"bucket": bucket, "key": key})
	}

	return &storage.SignedURLResponse{
		SignedURL: sasURL,
		ExpiresAt: expiresAt,
	}, nil
}

// HealthCheck probes connectivity with a one-container list. It never
// returns an error.
func (b *Backend) HealthCheck(ctx context.Context) *storage.HealthCheckResponse {
	pager := b.client.NewListContainersPager(&azblob.ListContainersOptions{
		MaxResults: to.Ptr(int32(1)),
	})
	if _, err := pager.NextPage(ctx); err != nil {
		return &storage.HealthCheckResponse{
			Status:       storage.StatusUnhealthy,
			ProviderName: storage.ProviderAzure,
			ErrorMessage: err.Error(),
		}
	}
	return &storage.HealthCheckResponse{
		Status:       storage.StatusHealthy,
		ProviderName: storage.ProviderAzure,
	}
}

func (b *Backend) publicURL(bucket, key string) string {
	if b.publicURLBase != "" {
		return strings.TrimRight(b.publicURLBase, "/") + "/" + key
	}
	return fmt.Sprintf("%s/%s/%s", b.serviceURL, bucket, key)
}

// compile-time check
var _ storage.Backend = (*Backend)(nil)
