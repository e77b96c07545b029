package postgres

import "errors"

// ErrInvalidUUID is returned when a string is not a valid UUID.
var ErrInvalidUUID = errors.New("invalid UUID")
