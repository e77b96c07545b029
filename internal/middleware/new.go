package middleware

import (
	pkgJWT "tasktrack-api/pkg/jwt"
	"tasktrack-api/pkg/log"
)

type Middleware struct {
	l   log.Logger
	jwt pkgJWT.Manager
}

func New(l log.Logger, jwt pkgJWT.Manager) Middleware {
	return Middleware{
		l:   l,
		jwt: jwt,
	}
}
