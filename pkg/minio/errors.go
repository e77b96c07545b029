package minio

import "errors"

var (
	// ErrEndpointRequired is returned when no endpoint is configured.
	ErrEndpointRequired = errors.New("minio: endpoint is required")

	// ErrObjectNotFound is returned when the requested object does not exist.
	ErrObjectNotFound = errors.New("minio: object not found")

	// ErrEmptyObjectName is returned when an object name is empty.
	ErrEmptyObjectName = errors.New("minio: object name cannot be empty")
)
