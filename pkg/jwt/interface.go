package jwt

import "time"

// Manager issues and verifies signed tokens for authenticated principals.
// The same identity space is shared by the REST layer and the real-time layer.
type Manager interface {
	// GenerateToken creates a signed HS256 token for the given principal.
	GenerateToken(userID, email, role string) (string, error)
	// VerifyToken verifies the signature and expiry of a token and returns its claims.
	VerifyToken(tokenString string) (*Claims, error)
	// ExtractUserID verifies a token and returns only the subject user ID.
	ExtractUserID(tokenString string) (string, error)
}

// New creates a new JWT manager with the provided configuration.
func New(cfg Config) (Manager, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &managerImpl{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		ttl:       ttl,
	}, nil
}

type managerImpl struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}
