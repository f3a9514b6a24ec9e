// Package s3 implements the storage backend contract for Amazon S3 and
// S3-compatible services (MinIO, Backblaze B2, Cloudflare R2, GCS interop,
// DigitalOcean Spaces), parameterized by endpoint and region.
package s3

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/kbukum/storagekit/errors"
	"github.com/kbukum/storagekit/logger"
	"github.com/kbukum/storagekit/storage"
)

// Backend implements storage.Backend on aws-sdk-go-v2. One instance wraps one
// SDK client, which is safe for concurrent use.
type Backend struct {
	client        *awss3.Client
	presign       *awss3.PresignClient
	provider      string
	endpoint      string
	region        string
	publicURLBase string
	log           *logger.Logger
}

// New creates an S3-family backend from a validated provider config.
func New(ctx context.Context, cfg storage.Config, log *logger.Logger) (*Backend, error) {
	if !storage.IsS3Family(cfg.Provider) || cfg.S3 == nil {
		return nil, fmt.Errorf("s3: config is not an s3-family config (provider %q)", cfg.Provider)
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		),
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	var s3Opts []func(*awss3.Options)
	if cfg.S3.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			o.UsePathStyle = true
		})
	} else if cfg.S3.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.UsePathStyle = true
		})
	}

	client := awss3.NewFromConfig(awsCfg, s3Opts...)
	return &Backend{
		client:        client,
		presign:       awss3.NewPresignClient(client),
		provider:      cfg.Provider,
		endpoint:      cfg.S3.Endpoint,
		region:        cfg.S3.Region,
		publicURLBase: cfg.PublicURLBase,
		log:           log.WithComponent("storage.s3"),
	}, nil
}

// Provider returns the configured provider type.
func (b *Backend) Provider() string { return b.provider }

// Upload stores the object and returns its public URL and key. Upsert is
// advisory here: S3-family services overwrite by default.
func (b *Backend) Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts storage.UploadOptions) (*storage.FileUploadResponse, error) {
	input := &awss3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentLength: aws.Int64(size),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}

	if _, err := b.client.PutObject(ctx, input); err != nil {
		if isBucketNotFound(err) {
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

// Delete verifies the key exists and removes it. The existence check keeps
// the FILE_NOT_FOUND contract even though S3 deletes idempotently.
func (b *Backend) Delete(ctx context.Context, bucket, key string) error {
	if _, err := b.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		if isBucketNotFound(err) {
			return errors.BucketNotFound(bucket).WithCause(err)
		}
		if isKeyNotFound(err) {
			return errors.FileNotFound(key).WithDetail("bucket", bucket).WithCause(err)
		}
		return errors.DeleteFailed(err).WithDetails(map[string]any{"bucket": bucket, "key": key})
	}

	if _, err := b.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return errors.DeleteFailed(err).WithDetails(map[string]any{"bucket": bucket, "key": key})
	}
	return nil
}

// BulkDelete removes the keys in one batch call. S3 deletes missing keys
// idempotently, so they count as deleted; only service-reported per-key
// errors surface as failures.
func (b *Backend) BulkDelete(ctx context.Context, bucket string, keys []string) (*storage.BulkDeleteResponse, error) {
	objects := make([]types.ObjectIdentifier, len(keys))
	for i, key := range keys {
		objects[i] = types.ObjectIdentifier{Key: aws.String(key)}
	}

	out, err := b.client.DeleteObjects(ctx, &awss3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(false),
		},
	})
	if err != nil {
		if isBucketNotFound(err) {
			return nil, errors.BucketNotFound(bucket).WithCause(err)
		}
		return nil, errors.DeleteFailed(err).WithDetail("bucket", bucket)
	}

	resp := &storage.BulkDeleteResponse{
		DeletedCount: len(out.Deleted),
		Failures:     make([]storage.BulkDeleteFailure, 0, len(out.Errors)),
	}
	for _, e := range out.Errors {
		reason := errors.ErrCodeDeleteFailed
		if aws.ToString(e.Code) == "NoSuchKey" {
			reason = errors.ErrCodeFileNotFound
		}
		resp.Failures = append(resp.Failures, storage.BulkDeleteFailure{
			Key:        aws.ToString(e.Key),
			ReasonCode: reason,
		})
	}
	return resp, nil
}

// PresignedUploadURL returns a presigned PUT URL.
func (b *Backend) PresignedUploadURL(ctx context.Context, bucket, key string, opts storage.SignedURLOptions) (*storage.SignedURLResponse, error) {
	expiry := opts.Expiry()
	input := &awss3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}

	req, err := b.presign.PresignPutObject(ctx, input, awss3.WithPresignExpires(expiry))
	if err != nil {
		return nil, errors.SignedURLFailed(err).WithDetails(map[string]any{"bucket": bucket, "key": key})
	}

	return &storage.SignedURLResponse{
		SignedURL: req.URL,
		PublicURL: b.publicURL(bucket, key),
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// PresignedDownloadURL returns a presigned GET URL.
func (b *Backend) PresignedDownloadURL(ctx context.Context, bucket, key string, opts storage.SignedURLOptions) (*storage.SignedURLResponse, error) {
	expiry := opts.Expiry()
	req, err := b.presign.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(expiry))
	if err != nil {
		return nil, errors.SignedURLFailed(err).WithDetails(map[string]any{"bucket": bucket, "key": key})
	}

	return &storage.SignedURLResponse{
		SignedURL: req.URL,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// HealthCheck probes connectivity with a one-bucket list. It never returns
// an error.
func (b *Backend) HealthCheck(ctx context.Context) *storage.HealthCheckResponse {
	_, err := b.client.ListBuckets(ctx, &awss3.ListBucketsInput{
		MaxBuckets: aws.Int32(1),
	})
	if err != nil {
		return &storage.HealthCheckResponse{
			Status:       storage.StatusUnhealthy,
			ProviderName: b.provider,
			ErrorMessage: err.Error(),
		}
	}
	return &storage.HealthCheckResponse{
		Status:       storage.StatusHealthy,
		ProviderName: b.provider,
	}
}

func (b *Backend) publicURL(bucket, key string) string {
	if b.publicURLBase != "" {
		return fmt.Sprintf("%s/%s", trimSlash(b.publicURLBase), key)
	}
	if b.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", trimSlash(b.endpoint), bucket, key)
	}
	return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", b.region, bucket, key)
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// compile-time check
var _ storage.Backend = (*Backend)(nil)
