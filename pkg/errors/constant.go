package errors

import "net/http"

const (
	// MessageUnauthorized is the default message for 401 responses.
	MessageUnauthorized = "Unauthorized"
	// MessageForbidden is the default message for 403 responses.
	MessageForbidden = "Forbidden"
	// MessageNotFound is the default message for 404 responses.
	MessageNotFound = "Not Found"
)

const (
	StatusUnauthorized = http.StatusUnauthorized
	StatusForbidden    = http.StatusForbidden
	StatusNotFound     = http.StatusNotFound
)
