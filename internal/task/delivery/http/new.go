package http

import (
	"tasktrack-api/internal/task"
	pkgErrors "tasktrack-api/pkg/errors"
	"tasktrack-api/pkg/log"
	"tasktrack-api/pkg/response"
)

type Handler struct {
	l  log.Logger
	uc task.UseCase
}

func New(l log.Logger, uc task.UseCase) Handler {
	return Handler{
		l:  l,
		uc: uc,
	}
}

var errMapping = response.ErrorMapping{
	task.ErrTaskNotFound:      pkgErrors.NewHTTPError(40402, "Task not found", 404),
	task.ErrPermissionDenied:  pkgErrors.NewHTTPError(40302, "Permission denied", 403),
	task.ErrInvalidPriority:   pkgErrors.NewHTTPError(40002, "Invalid priority", 400),
	task.ErrInvalidStatus:     pkgErrors.NewHTTPError(40003, "Invalid status", 400),
	task.ErrInvalidTransition: pkgErrors.NewHTTPError(40004, "Invalid status transition", 400),
	task.ErrAssigneeNotFound:  pkgErrors.NewHTTPError(40005, "Assignee not found", 400),
	task.ErrReportRequired:    pkgErrors.NewHTTPError(40006, "Report file or text required", 400),
	task.ErrReportNotFound:    pkgErrors.NewHTTPError(40403, "Report not found", 404),
}
