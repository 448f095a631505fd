// Package media uploads pin and avatar media to S3-compatible object storage.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dalemusser/pindrop/internal/app/system/apperr"
)

// MaxUploadBytes caps individual media uploads.
const MaxUploadBytes = 25 << 20 // 25 MiB

// Config holds the object storage settings.
type Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the S3 endpoint for S3-compatible stores.
	// Empty means AWS.
	Endpoint string
	// BaseURL is the public URL prefix for stored objects. When empty,
	// the standard AWS virtual-hosted URL is used.
	BaseURL string
}

// Store uploads and deletes media objects.
type Store struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
}

// New builds a Store from cfg. Static credentials are used when provided;
// otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg Config) (*Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"video/mp4":  ".mp4",
	"video/webm": ".webm",
}

// AllowedImage reports whether contentType is an accepted image type.
func AllowedImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") && extByContentType[contentType] != ""
}

// AllowedVideo reports whether contentType is an accepted video type.
func AllowedVideo(contentType string) bool {
	return strings.HasPrefix(contentType, "video/") && extByContentType[contentType] != ""
}

// Object describes a stored media object.
type Object struct {
	Key string
	URL string
}

// Upload stores the contents of r under a generated key in the given folder
// (for example "pins" or "avatars") and returns the object's key and public URL.
func (s *Store) Upload(ctx context.Context, r io.Reader, contentType, folder string) (Object, error) {
	ext, ok := extByContentType[contentType]
	if !ok {
		return Object{}, apperr.E(apperr.Validation, fmt.Sprintf("unsupported media type %q", contentType))
	}

	key := path.Join(folder, uuid.New().String()+ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Object{}, fmt.Errorf("put object %s: %w", key, err)
	}
	return Object{Key: key, URL: s.objectURL(key)}, nil
}

// Delete removes a stored object. Missing objects are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (s *Store) objectURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
