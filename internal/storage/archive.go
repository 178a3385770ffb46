package storage

import (
	"bytes"
	"context"
	"time"

	appconfig "tracker-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArchiveStore keeps copies of rendered documents in S3-compatible object
// storage (R2 works with a custom endpoint). Optional: a nil store means
// archiving is off.
type ArchiveStore struct {
	client *s3.Client
	bucket string
}

// NewArchiveStore builds the store from config. Returns (nil, nil) when the
// archive bucket is not configured.
func NewArchiveStore(cfg *appconfig.Config) (*ArchiveStore, error) {
	if cfg.Archive.Bucket == "" || cfg.Archive.AccessKey == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Archive.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey, cfg.Archive.SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Archive.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &ArchiveStore{client: client, bucket: cfg.Archive.Bucket}, nil
}

// Upload stores an object under the given key.
func (a *ArchiveStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}
