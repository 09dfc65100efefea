// Package s3 pushes finished artifact bundles to an S3-compatible
// object store so the factory line has an off-station copy.
package s3

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/worldcoin/orb-registration/internal/artifacts"
)

// Client wraps the S3 API for bundle uploads.
type Client struct {
	s3 *s3.Client
}

// NewClient creates an S3 client. endpoint overrides the AWS default for
// compatible stores; empty accessKey falls back to the SDK's default
// credential chain.
func NewClient(ctx context.Context, endpoint, region, accessKey, secretKey string) (*Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if accessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			// Path-style addressing works across compatible stores.
			o.UsePathStyle = true
		}
	})

	return &Client{s3: client}, nil
}

// EnsureBucket creates the bucket if it does not exist yet. A bucket
// already owned by us is fine.
func (c *Client) EnsureBucket(ctx context.Context, bucket string) error {
	_, err := c.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// UploadFile streams one local file to the bucket under key.
func (c *Client) UploadFile(ctx context.Context, bucket, key, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", localPath, err)
	}

	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s in bucket %s: %w", key, bucket, err)
	}
	return nil
}

// isBucketAlreadyOwnedByYou checks whether the error indicates the
// bucket exists and is ours. Compatible stores may only return the API
// error code, not the typed SDK error.
func isBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var baoby *types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}
	var bae *types.BucketAlreadyExists
	if errors.As(err, &bae) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists"
	}
	return false
}

// BundleStore uploads whole artifact bundles under a fixed bucket and
// key prefix.
type BundleStore struct {
	client *Client
	bucket string
	prefix string
}

func NewBundleStore(client *Client, bucket, prefix string) *BundleStore {
	return &BundleStore{client: client, bucket: bucket, prefix: prefix}
}

// UploadBundle uploads every file of the bundle, keyed by orb id and
// file name.
func (s *BundleStore) UploadBundle(ctx context.Context, b *artifacts.Bundle) error {
	for _, localPath := range b.Files() {
		key := objectKey(s.prefix, b.ID.String(), filepath.Base(localPath))
		if err := s.client.UploadFile(ctx, s.bucket, key, localPath); err != nil {
			return fmt.Errorf("upload bundle for orb %s: %w", b.ID, err)
		}
	}
	return nil
}

// objectKey joins the configured prefix, orb id, and file name into an
// object key, tolerating an empty prefix.
func objectKey(prefix, orbID, name string) string {
	return path.Join(prefix, orbID, name)
}
