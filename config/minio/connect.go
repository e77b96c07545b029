package minio

import (
	"context"
	"fmt"
	"sync"

	"tasktrack-api/config"
	pkgMinio "tasktrack-api/pkg/minio"
)

var (
	instance pkgMinio.MinIO
	mu       sync.RWMutex
)

// Connect initializes the MinIO client and ensures the report bucket
// exists. Returns the existing instance if already connected.
func Connect(ctx context.Context, cfg config.MinIOConfig) (pkgMinio.MinIO, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	client, err := pkgMinio.New(ctx, pkgMinio.Config{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		UseSSL:    cfg.UseSSL,
		Region:    cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	if err := client.EnsureBucket(ctx, cfg.ReportBucket); err != nil {
		return nil, fmt.Errorf("failed to ensure report bucket: %w", err)
	}

	instance = client
	return instance, nil
}

// GetClient returns the singleton MinIO client instance.
// Panics if the client has not been initialized by calling Connect() first.
func GetClient() pkgMinio.MinIO {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		panic("MinIO client not initialized. Call Connect() first")
	}
	return instance
}

// Disconnect resets the singleton instance.
func Disconnect(ctx context.Context) {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}
