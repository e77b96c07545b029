package http

import (
	"tasktrack-api/internal/user"
	pkgErrors "tasktrack-api/pkg/errors"
	"tasktrack-api/pkg/log"
	"tasktrack-api/pkg/response"
)

type Handler struct {
	l  log.Logger
	uc user.UseCase
}

func New(l log.Logger, uc user.UseCase) Handler {
	return Handler{
		l:  l,
		uc: uc,
	}
}

var errMapping = response.ErrorMapping{
	user.ErrUserNotFound:       pkgErrors.NewHTTPError(40401, "User not found", 404),
	user.ErrEmailExists:        pkgErrors.NewHTTPError(40901, "Email already registered", 409),
	user.ErrInvalidCredentials: pkgErrors.NewHTTPError(40101, "Invalid email or password", 401),
	user.ErrInvalidRole:        pkgErrors.NewHTTPError(40001, "Invalid role", 400),
	user.ErrPermissionDenied:   pkgErrors.NewHTTPError(40301, "Permission denied", 403),
}
