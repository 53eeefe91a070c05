package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"savora/internal/config"
	"savora/internal/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Store stores media in an S3-compatible bucket (AWS S3, Cloudflare R2, MinIO).
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Store builds an S3Store from configuration using static credentials
// and a custom endpoint, the setup required by R2 and MinIO.
func NewS3Store(cfg *config.Config) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required for the media store")
	}
	if cfg.MediaBaseURL == "" && cfg.S3Endpoint == "" {
		return nil, fmt.Errorf("media store needs MEDIA_BASE_URL or S3_ENDPOINT to build public URLs")
	}

	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Region:      cfg.S3Region,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = true
	})

	baseURL := cfg.MediaBaseURL
	if baseURL == "" {
		baseURL = strings.TrimSuffix(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}

	return &S3Store{
		client:  client,
		bucket:  cfg.S3Bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload writes the image under a fresh key and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("recipes/%s.%s", uuid.NewString(), extensionFor(contentType))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		observability.MediaUploads.WithLabelValues("error").Inc()
		return "", fmt.Errorf("media upload failed: %w", err)
	}

	observability.MediaUploads.WithLabelValues("ok").Inc()
	return s.baseURL + "/" + key, nil
}

// Delete removes the object behind a URL previously returned by Upload.
// URLs from other origins are ignored.
func (s *S3Store) Delete(ctx context.Context, url string) error {
	key := s.ObjectKeyFromURL(url)
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("media delete failed: %w", err)
	}
	return nil
}

// ObjectKeyFromURL extracts the object key from a URL under this store's
// base URL. Returns "" for foreign URLs.
func (s *S3Store) ObjectKeyFromURL(url string) string {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}
