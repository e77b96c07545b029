package task

import (
	"io"
	"time"

	"tasktrack-api/internal/model"
	"tasktrack-api/pkg/paginator"
)

type CreateInput struct {
	Title       string
	Description string
	Priority    string
	Deadline    *time.Time
	AssigneeID  string
}

type UpdateInput struct {
	ID          string
	Title       *string
	Description *string
	Priority    *string
	Deadline    *time.Time
	AssigneeID  *string
}

type UpdateStatusInput struct {
	ID     string
	Status string
}

// SubmitReportInput carries either an uploaded file (Reader + Size) or an
// inline text report (Text).
type SubmitReportInput struct {
	TaskID   string
	FileName string
	Reader   io.Reader
	Size     int64
	Text     string
	Comment  string
}

// ReportDownload is a streamed report file or an inline text body.
type ReportDownload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.ReadCloser // nil for text reports
	Text        string
	IsText      bool
}

type TaskOutput struct {
	Task model.Task
}

type GetTaskOutput struct {
	Tasks     []model.Task
	Paginator paginator.Paginator
}

type GetInput struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

type Filter struct {
	AssigneeID string
	Status     string
	Priority   string
	Search     string
}
