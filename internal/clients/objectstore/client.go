// Package objectstore downloads source files from S3-compatible object storage
// (AWS S3, Cloudflare R2, DigitalOcean Spaces).
package objectstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Scheme prefixes object locations, e.g. s3://bucket/path/forecast.csv.
const Scheme = "s3://"

// defaultRegion is accepted by R2 and ignored by most S3-compatible stores.
const defaultRegion = "auto"

// Config holds the connection settings of the bucket.
type Config struct {
	Region          string
	Endpoint        string // empty uses AWS S3
	AccessKeyID     string
	SecretAccessKey string
}

// Client downloads objects to local files.
type Client struct {
	s3         *s3.Client
	downloader *manager.Downloader
	log        zerolog.Logger
}

// NewClient creates a client for the configured store. Static credentials are
// used when both key parts are set; otherwise the default AWS chain applies.
func NewClient(ctx context.Context, cfg Config, log zerolog.Logger) (*Client, error) {
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load object store config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		s3:         client,
		downloader: manager.NewDownloader(client),
		log:        log.With().Str("client", "objectstore").Logger(),
	}, nil
}

// IsURI reports whether location names an object (s3://...).
func IsURI(location string) bool {
	return strings.HasPrefix(location, Scheme)
}

// ParseURI splits s3://bucket/key into its bucket and key.
func ParseURI(uri string) (bucket, key string, err error) {
	if !IsURI(uri) {
		return "", "", fmt.Errorf("not an object URI: %q", uri)
	}
	bucket, key, _ = strings.Cut(strings.TrimPrefix(uri, Scheme), "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("object URI %q needs a bucket and a key", uri)
	}
	return bucket, key, nil
}

// Download writes the object bucket/key to dest. The file is written under a
// temporary name and renamed on success, so dest never holds a partial object.
func (c *Client) Download(ctx context.Context, bucket, key, dest string) (int64, error) {
	start := time.Now()

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, fmt.Errorf("failed to create download directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("failed to create download file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	n, err := c.downloader.Download(ctx, tmp, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("failed to download s3://%s/%s: %w", bucket, key, err)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		return 0, fmt.Errorf("failed to move download into place: %w", err)
	}

	c.log.Info().
		Str("bucket", bucket).
		Str("key", key).
		Str("dest", dest).
		Int64("bytes", n).
		Dur("duration", time.Since(start)).
		Msg("Downloaded object")

	return n, nil
}

// Fetch downloads the object named by uri into dir, mirroring the bucket and
// key as a relative path, and returns the local path.
func (c *Client) Fetch(ctx context.Context, uri, dir string) (string, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(dir, bucket, filepath.FromSlash(key))
	if !strings.HasPrefix(dest, filepath.Clean(dir)+string(filepath.Separator)) {
		return "", fmt.Errorf("object key %q escapes the download directory", key)
	}
	if _, err := c.Download(ctx, bucket, key, dest); err != nil {
		return "", err
	}
	return dest, nil
}
