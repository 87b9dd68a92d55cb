// Package avatar stores profile pictures in S3-compatible object storage.
package avatar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const maxAvatarBytes = 5 * 1024 * 1024

var (
	ErrUnsupportedType = errors.New("only JPEG and PNG images are allowed")
	ErrTooLarge        = errors.New("avatar exceeds the 5MB limit")
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	PublicURL string
	UseSSL    bool
}

type Storage struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	publicURL string
	logger    *slog.Logger
}

// NewStorage connects to the configured S3-compatible endpoint and makes
// sure the avatar bucket exists.
func NewStorage(ctx context.Context, cfg Config, logger *slog.Logger) (*Storage, error) {
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	endpointURL := fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("loading object storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpointURL)
		o.UsePathStyle = true
	})

	headCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.HeadBucket(headCtx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
		logger.Info("avatar bucket missing, creating", "bucket", cfg.Bucket)
		if _, err := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
			return nil, fmt.Errorf("creating bucket %s: %w", cfg.Bucket, err)
		}
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = endpointURL
	}

	return &Storage{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    cfg.Bucket,
		publicURL: publicURL,
		logger:    logger,
	}, nil
}

// Upload validates the image and writes it under a fresh object key.
// Returns the public URL of the stored avatar.
func (s *Storage) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	// Read one byte past the limit so oversized uploads are detected
	// without buffering the whole stream.
	buf, err := io.ReadAll(io.LimitReader(content, maxAvatarBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading avatar upload: %w", err)
	}
	if len(buf) > maxAvatarBytes {
		return "", ErrTooLarge
	}

	ext, contentType, err := sniffImage(buf)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s%s", uuid.NewString(), ext)
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading avatar %s: %w", key, err)
	}

	s.logger.Info("avatar stored", "key", key, "size", len(buf))
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}

// sniffImage detects the content type from the file bytes, ignoring the
// client-supplied filename and headers.
func sniffImage(buf []byte) (ext, contentType string, err error) {
	detected := mimetype.Detect(buf)
	switch {
	case detected.Is("image/jpeg"):
		return ".jpg", detected.String(), nil
	case detected.Is("image/png"):
		return ".png", detected.String(), nil
	}
	return "", "", ErrUnsupportedType
}
