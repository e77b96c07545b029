package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarondl/null/v8"

	"tasktrack-api/internal/model"
	"tasktrack-api/internal/task"
	"tasktrack-api/internal/task/repository"
	pkgMinio "tasktrack-api/pkg/minio"
)

// SubmitReport attaches a report to a task and moves it to UNDER_REVIEW.
// Only the assignee submits, and only from IN_PROGRESS.
func (uc *usecase) SubmitReport(ctx context.Context, sc model.Scope, ip task.SubmitReportInput) (task.TaskOutput, error) {
	tsk, err := uc.detail(ctx, sc, ip.TaskID)
	if err != nil {
		return task.TaskOutput{}, err
	}

	if tsk.AssigneeID != sc.UserID {
		return task.TaskOutput{}, task.ErrPermissionDenied
	}
	if tsk.Status != model.TaskStatusInProgress {
		return task.TaskOutput{}, task.ErrInvalidTransition
	}

	switch {
	case ip.Reader != nil && ip.FileName != "":
		report, err := uc.uploadReportFile(ctx, tsk.ID, ip)
		if err != nil {
			return task.TaskOutput{}, err
		}
		tsk.Report = report
	case strings.TrimSpace(ip.Text) != "":
		tsk.Report = &model.ReportFile{
			Name:         "report.txt",
			UploadedAt:   uc.now(),
			Size:         int64(len(ip.Text)),
			Comment:      null.StringFrom(ip.Text),
			IsTextReport: true,
		}
	default:
		return task.TaskOutput{}, task.ErrReportRequired
	}

	tsk.Status = model.TaskStatusUnderReview
	tsk.UpdatedBy = null.StringFrom(sc.UserID)

	updated, err := uc.repo.Update(ctx, sc, repository.UpdateOptions{Task: tsk})
	if err != nil {
		if err == repository.ErrNotFound {
			return task.TaskOutput{}, task.ErrTaskNotFound
		}
		uc.l.Errorf(ctx, "internal.task.usecase.SubmitReport: %v", err)
		return task.TaskOutput{}, err
	}

	uc.dispatcher.OnTaskUpdated(ctx, updated)

	return task.TaskOutput{Task: updated}, nil
}

func (uc *usecase) uploadReportFile(ctx context.Context, taskID string, ip task.SubmitReportInput) (*model.ReportFile, error) {
	objectName := fmt.Sprintf("tasks/%s/%s", taskID, ip.FileName)

	info, err := uc.storage.UploadFile(ctx, pkgMinio.UploadRequest{
		BucketName:   uc.bucket,
		ObjectName:   objectName,
		OriginalName: ip.FileName,
		Reader:       ip.Reader,
		Size:         ip.Size,
		ContentType:  "application/octet-stream",
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.task.usecase.uploadReportFile: %v", err)
		return nil, err
	}

	return &model.ReportFile{
		Name:       ip.FileName,
		URL:        objectName,
		UploadedAt: uc.now(),
		Size:       info.Size,
		Comment:    null.NewString(ip.Comment, ip.Comment != ""),
	}, nil
}

// DownloadReport streams the report file from storage, or returns the text
// body for inline reports.
func (uc *usecase) DownloadReport(ctx context.Context, sc model.Scope, id string) (task.ReportDownload, error) {
	tsk, err := uc.detail(ctx, sc, id)
	if err != nil {
		return task.ReportDownload{}, err
	}

	if tsk.Report == nil {
		return task.ReportDownload{}, task.ErrReportNotFound
	}

	if tsk.Report.IsTextReport {
		return task.ReportDownload{
			FileName:    tsk.Report.Name,
			ContentType: "text/plain; charset=utf-8",
			Size:        tsk.Report.Size,
			Text:        tsk.Report.Comment.String,
			IsText:      true,
		}, nil
	}

	res, err := uc.storage.DownloadFile(ctx, uc.bucket, tsk.Report.URL)
	if err != nil {
		if err == pkgMinio.ErrObjectNotFound {
			return task.ReportDownload{}, task.ErrReportNotFound
		}
		uc.l.Errorf(ctx, "internal.task.usecase.DownloadReport: %v", err)
		return task.ReportDownload{}, err
	}

	return task.ReportDownload{
		FileName:    tsk.Report.Name,
		ContentType: res.Info.ContentType,
		Size:        res.Info.Size,
		Reader:      res.Reader,
	}, nil
}
