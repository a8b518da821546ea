// Package storage mirrors saved banners to an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// KeyPrefix is prepended to every uploaded banner key.
const KeyPrefix = "banners/"

// Client wraps S3 upload operations for the banner mirror.
type Client struct {
	s3Client  *s3.Client
	bucket    string
	publicURL string // optional base URL for a public bucket
}

// NewClient creates a new S3 mirror client.
func NewClient(endpoint, region, bucket, accessKey, secretKey string, useSSL bool, publicURL string) (*Client, error) {
	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	}

	// Custom endpoint for MinIO/LocalStack style backends.
	if endpoint != "" {
		configOpts = append(configOpts, config.WithBaseEndpoint(endpoint))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Path-style addressing and relaxed checksums so S3-compatible backends
	// (e.g. Cloudflare R2) that don't fully support CRC32 headers work.
	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	log.Info().
		Str("endpoint", endpoint).
		Str("bucket", bucket).
		Msg("S3 mirror initialized")

	return &Client{
		s3Client:  s3Client,
		bucket:    bucket,
		publicURL: publicURL,
	}, nil
}

// UploadBanner uploads a finished banner under banners/<filename> and returns
// the object key.
func (c *Client) UploadBanner(ctx context.Context, filename string, data []byte) (string, error) {
	key := KeyPrefix + filename

	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("image/png"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload banner to S3: %w", err)
	}

	log.Info().
		Str("bucket", c.bucket).
		Str("key", key).
		Int("size_bytes", len(data)).
		Msg("Banner mirrored to S3")

	return key, nil
}

// PublicURL returns the public URL for an object key. Empty if publicURL was
// not configured.
func (c *Client) PublicURL(key string) string {
	if c.publicURL == "" {
		return ""
	}
	if c.publicURL[len(c.publicURL)-1] == '/' {
		return c.publicURL + key
	}
	return c.publicURL + "/" + key
}
