package usecase

import (
	"tasktrack-api/internal/user"
	"tasktrack-api/internal/user/repository"
	pkgJWT "tasktrack-api/pkg/jwt"
	pkgLog "tasktrack-api/pkg/log"
)

type usecase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	jwt      pkgJWT.Manager
	presence user.Presence
}

func New(l pkgLog.Logger, repo repository.Repository, jwt pkgJWT.Manager, presence user.Presence) user.UseCase {
	return &usecase{
		l:        l,
		repo:     repo,
		jwt:      jwt,
		presence: presence,
	}
}
