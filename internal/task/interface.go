package task

import (
	"context"

	"tasktrack-api/internal/model"
)

// UseCase defines the business logic for the task domain: CRUD, workflow
// transitions, and report handling. Every mutation notifies the realtime
// dispatcher.
type UseCase interface {
	Create(ctx context.Context, sc model.Scope, ip CreateInput) (TaskOutput, error)
	Update(ctx context.Context, sc model.Scope, ip UpdateInput) (TaskOutput, error)
	UpdateStatus(ctx context.Context, sc model.Scope, ip UpdateStatusInput) (TaskOutput, error)
	Delete(ctx context.Context, sc model.Scope, id string) error
	Detail(ctx context.Context, sc model.Scope, id string) (TaskOutput, error)
	Get(ctx context.Context, sc model.Scope, ip GetInput) (GetTaskOutput, error)
	SubmitReport(ctx context.Context, sc model.Scope, ip SubmitReportInput) (TaskOutput, error)
	DownloadReport(ctx context.Context, sc model.Scope, id string) (ReportDownload, error)
}

// Dispatcher receives task mutations for real-time fan-out. Implemented
// by the realtime domain.
type Dispatcher interface {
	OnTaskCreated(ctx context.Context, task model.Task)
	OnTaskUpdated(ctx context.Context, task model.Task)
	OnTaskDeleted(ctx context.Context, taskID string)
}
