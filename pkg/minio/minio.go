package minio

import (
	"context"

	"github.com/minio/minio-go/v7"
)

func (m *implMinIO) EnsureBucket(ctx context.Context, bucketName string) error {
	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
}

func (m *implMinIO) UploadFile(ctx context.Context, req UploadRequest) (*FileInfo, error) {
	if req.ObjectName == "" {
		return nil, ErrEmptyObjectName
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := m.client.PutObject(ctx, req.BucketName, req.ObjectName, req.Reader, req.Size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": req.OriginalName,
		},
	})
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		BucketName:   req.BucketName,
		ObjectName:   req.ObjectName,
		OriginalName: req.OriginalName,
		Size:         info.Size,
		ContentType:  contentType,
		ETag:         info.ETag,
	}, nil
}

func (m *implMinIO) DownloadFile(ctx context.Context, bucketName, objectName string) (*DownloadResult, error) {
	if objectName == "" {
		return nil, ErrEmptyObjectName
	}

	obj, err := m.client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}

	return &DownloadResult{
		Reader: obj,
		Info: FileInfo{
			BucketName:   bucketName,
			ObjectName:   objectName,
			OriginalName: stat.UserMetadata["Original-Name"],
			Size:         stat.Size,
			ContentType:  stat.ContentType,
			ETag:         stat.ETag,
			LastModified: stat.LastModified,
		},
	}, nil
}

func (m *implMinIO) DeleteFile(ctx context.Context, bucketName, objectName string) error {
	if objectName == "" {
		return ErrEmptyObjectName
	}
	return m.client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
}

func (m *implMinIO) HealthCheck(ctx context.Context) error {
	_, err := m.client.ListBuckets(ctx)
	return err
}
