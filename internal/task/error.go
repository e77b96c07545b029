package task

import "errors"

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAssigneeNotFound  = errors.New("assignee not found")
	ErrReportRequired    = errors.New("report file or text required")
	ErrReportNotFound    = errors.New("report not found")
)
