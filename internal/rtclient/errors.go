package rtclient

import "errors"

var (
	ErrNoToken      = errors.New("no auth token available")
	ErrAuthRejected = errors.New("server rejected authentication")
)
