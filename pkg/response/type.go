package response

import (
	"tasktrack-api/pkg/errors"
)

// Resp is the JSON envelope returned by every endpoint.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// ErrorMapping maps domain errors to HTTP errors for a delivery layer.
type ErrorMapping map[error]*errors.HTTPError
