package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds JWT configuration.
type Config struct {
	SecretKey string
	Issuer    string
	TTL       time.Duration
}

// Claims represents the token claims carried by access tokens.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
