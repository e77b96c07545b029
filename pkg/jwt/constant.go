package jwt

import "time"

const (
	// MinSecretKeyLen is the minimum allowed secret key length.
	MinSecretKeyLen = 32

	// DefaultTTL is the default token lifetime.
	DefaultTTL = 24 * time.Hour
)
