package minio

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIO defines the object storage surface used for task report files.
type MinIO interface {
	// EnsureBucket creates the bucket if it does not already exist.
	EnsureBucket(ctx context.Context, bucketName string) error

	// UploadFile uploads an object and returns its metadata.
	UploadFile(ctx context.Context, req UploadRequest) (*FileInfo, error)

	// DownloadFile streams an object. The caller must close the reader.
	DownloadFile(ctx context.Context, bucketName, objectName string) (*DownloadResult, error)

	// DeleteFile removes an object.
	DeleteFile(ctx context.Context, bucketName, objectName string) error

	// HealthCheck verifies the connection is still healthy.
	HealthCheck(ctx context.Context) error
}

type implMinIO struct {
	client *minio.Client
}

// New creates a MinIO client wrapper and verifies the connection.
func New(ctx context.Context, cfg Config) (MinIO, error) {
	if cfg.Endpoint == "" {
		return nil, ErrEndpointRequired
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}

	m := &implMinIO{client: client}
	if err := m.HealthCheck(ctx); err != nil {
		return nil, err
	}
	return m, nil
}
