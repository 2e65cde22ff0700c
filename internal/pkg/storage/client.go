package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/gofiber/fiber/v2/log"

	"github.com/campuscare-app/CampusCare/app/repository"
)

// Client wraps the S3 client for report photo uploads.
type Client struct {
	s3Client *s3.Client
	config   *Config
}

// NewClient creates a new object storage client.
func NewClient(cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, repository.NewStoreError(repository.KindConfig, errors.New("object storage credentials missing"))
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	client := &Client{
		s3Client: s3Client,
		config:   cfg,
	}

	log.Infof("[Storage] Initialized object storage client for bucket: %s", cfg.Bucket)
	return client, nil
}

// ProbeBucket checks that the configured bucket exists. The bucket is an
// operator-managed resource; a missing one is surfaced, never auto-created.
func (c *Client) ProbeBucket(ctx context.Context) error {
	_, err := c.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.config.Bucket),
	})
	if err != nil {
		return classifyStorageError(err)
	}
	return nil
}

// Upload stores a report photo under the given key and returns its public URL.
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.config.Bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.s3Client.PutObject(ctx, input); err != nil {
		return "", classifyStorageError(err)
	}

	return c.config.PublicURL(key), nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.config.Bucket
}

// ObjectKey builds the storage key for a report photo:
// reports/<reporter-id>/<timestamp>_<filename>
func ObjectKey(reporterID uint, filename string, now time.Time) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("reports/%d/%d_%s", reporterID, now.UnixMilli(), base)
}

func classifyStorageError(err error) error {
	var noBucket *types.NoSuchBucket
	if errors.As(err, &noBucket) {
		return repository.NewStoreError(repository.KindBucketMissing, err)
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return repository.NewStoreError(repository.KindBucketMissing, err)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket", "NotFound":
			return repository.NewStoreError(repository.KindBucketMissing, err)
		}
	}
	return repository.NewStoreError(repository.KindGeneric, err)
}
