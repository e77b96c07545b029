package minio

import (
	"io"
	"time"
)

// Config holds connection settings for MinIO.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// FileInfo represents metadata about a stored object.
type FileInfo struct {
	BucketName   string    `json:"bucket_name"`
	ObjectName   string    `json:"object_name"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	ETag         string    `json:"etag"`
	LastModified time.Time `json:"last_modified"`
}

// UploadRequest contains the parameters for uploading an object.
type UploadRequest struct {
	BucketName   string
	ObjectName   string
	OriginalName string
	Reader       io.Reader
	Size         int64
	ContentType  string
}

// DownloadResult is a streamed object with its metadata.
type DownloadResult struct {
	Reader io.ReadCloser
	Info   FileInfo
}
