package realtime

import "errors"

var (
	ErrInvalidConnection = errors.New("invalid connection type")
	ErrHubClosed         = errors.New("hub is shut down")
	ErrMissingToken      = errors.New("missing token")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrNotAuthenticated  = errors.New("connection is not authenticated")
	ErrUnknownEvent      = errors.New("unknown event")
	ErrMalformedMessage  = errors.New("malformed message")
)
