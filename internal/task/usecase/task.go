package usecase

import (
	"context"

	"github.com/aarondl/null/v8"

	"tasktrack-api/internal/model"
	"tasktrack-api/internal/task"
	"tasktrack-api/internal/task/repository"
	"tasktrack-api/internal/user"
)

func (uc *usecase) Create(ctx context.Context, sc model.Scope, ip task.CreateInput) (task.TaskOutput, error) {
	if !sc.IsManager() {
		return task.TaskOutput{}, task.ErrPermissionDenied
	}

	priority := model.TaskPriority(ip.Priority)
	if ip.Priority == "" {
		priority = model.TaskPriorityMedium
	}
	if !priority.IsValid() {
		return task.TaskOutput{}, task.ErrInvalidPriority
	}

	if _, err := uc.userUC.Detail(ctx, sc, ip.AssigneeID); err != nil {
		if err == user.ErrUserNotFound {
			return task.TaskOutput{}, task.ErrAssigneeNotFound
		}
		uc.l.Errorf(ctx, "internal.task.usecase.Create.Detail: %v", err)
		return task.TaskOutput{}, err
	}

	tsk := model.Task{
		Title:       ip.Title,
		Description: null.NewString(ip.Description, ip.Description != ""),
		Priority:    priority,
		Status:      model.TaskStatusAssigned,
		AssigneeID:  ip.AssigneeID,
		CreatedBy:   sc.UserID,
	}
	if ip.Deadline != nil {
		tsk.Deadline = null.TimeFrom(*ip.Deadline)
	}

	created, err := uc.repo.Create(ctx, sc, repository.CreateOptions{Task: tsk})
	if err != nil {
		uc.l.Errorf(ctx, "internal.task.usecase.Create: %v", err)
		return task.TaskOutput{}, err
	}

	uc.dispatcher.OnTaskCreated(ctx, created)

	return task.TaskOutput{Task: created}, nil
}

func (uc *usecase) Update(ctx context.Context, sc model.Scope, ip task.UpdateInput) (task.TaskOutput, error) {
	if !sc.IsManager() {
		return task.TaskOutput{}, task.ErrPermissionDenied
	}

	tsk, err := uc.detail(ctx, sc, ip.ID)
	if err != nil {
		return task.TaskOutput{}, err
	}

	if ip.Title != nil {
		tsk.Title = *ip.Title
	}
	if ip.Description != nil {
		tsk.Description = null.NewString(*ip.Description, *ip.Description != "")
	}
	if ip.Priority != nil {
		priority := model.TaskPriority(*ip.Priority)
		if !priority.IsValid() {
			return task.TaskOutput{}, task.ErrInvalidPriority
		}
		tsk.Priority = priority
	}
	if ip.Deadline != nil {
		tsk.Deadline = null.TimeFrom(*ip.Deadline)
	}
	if ip.AssigneeID != nil {
		if _, err := uc.userUC.Detail(ctx, sc, *ip.AssigneeID); err != nil {
			if err == user.ErrUserNotFound {
				return task.TaskOutput{}, task.ErrAssigneeNotFound
			}
			uc.l.Errorf(ctx, "internal.task.usecase.Update.Detail: %v", err)
			return task.TaskOutput{}, err
		}
		tsk.AssigneeID = *ip.AssigneeID
	}
	tsk.UpdatedBy = null.StringFrom(sc.UserID)

	updated, err := uc.repo.Update(ctx, sc, repository.UpdateOptions{Task: tsk})
	if err != nil {
		if err == repository.ErrNotFound {
			return task.TaskOutput{}, task.ErrTaskNotFound
		}
		uc.l.Errorf(ctx, "internal.task.usecase.Update: %v", err)
		return task.TaskOutput{}, err
	}

	uc.dispatcher.OnTaskUpdated(ctx, updated)

	return task.TaskOutput{Task: updated}, nil
}

func (uc *usecase) UpdateStatus(ctx context.Context, sc model.Scope, ip task.UpdateStatusInput) (task.TaskOutput, error) {
	next := model.TaskStatus(ip.Status)
	if !next.IsValid() {
		return task.TaskOutput{}, task.ErrInvalidStatus
	}

	tsk, err := uc.detail(ctx, sc, ip.ID)
	if err != nil {
		return task.TaskOutput{}, err
	}

	if !tsk.Status.CanTransitionTo(next) {
		return task.TaskOutput{}, task.ErrInvalidTransition
	}

	// Approval and rejection are manager decisions; everything else
	// belongs to the assignee.
	switch next {
	case model.TaskStatusCompleted, model.TaskStatusRevision:
		if !sc.IsManager() {
			return task.TaskOutput{}, task.ErrPermissionDenied
		}
	default:
		if tsk.AssigneeID != sc.UserID && !sc.IsManager() {
			return task.TaskOutput{}, task.ErrPermissionDenied
		}
	}

	tsk.Status = next
	tsk.UpdatedBy = null.StringFrom(sc.UserID)

	updated, err := uc.repo.Update(ctx, sc, repository.UpdateOptions{Task: tsk})
	if err != nil {
		if err == repository.ErrNotFound {
			return task.TaskOutput{}, task.ErrTaskNotFound
		}
		uc.l.Errorf(ctx, "internal.task.usecase.UpdateStatus: %v", err)
		return task.TaskOutput{}, err
	}

	uc.dispatcher.OnTaskUpdated(ctx, updated)

	return task.TaskOutput{Task: updated}, nil
}

func (uc *usecase) Delete(ctx context.Context, sc model.Scope, id string) error {
	if !sc.IsManager() {
		return task.ErrPermissionDenied
	}

	tsk, err := uc.detail(ctx, sc, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, sc, id); err != nil {
		if err == repository.ErrNotFound {
			return task.ErrTaskNotFound
		}
		uc.l.Errorf(ctx, "internal.task.usecase.Delete: %v", err)
		return err
	}

	// Best effort: the task row is already gone.
	if tsk.Report != nil && !tsk.Report.IsTextReport && uc.storage != nil {
		if err := uc.storage.DeleteFile(ctx, uc.bucket, tsk.Report.URL); err != nil {
			uc.l.Warnf(ctx, "internal.task.usecase.Delete.DeleteFile: %v", err)
		}
	}

	uc.dispatcher.OnTaskDeleted(ctx, id)

	return nil
}

func (uc *usecase) Detail(ctx context.Context, sc model.Scope, id string) (task.TaskOutput, error) {
	tsk, err := uc.detail(ctx, sc, id)
	if err != nil {
		return task.TaskOutput{}, err
	}
	return task.TaskOutput{Task: tsk}, nil
}

func (uc *usecase) Get(ctx context.Context, sc model.Scope, ip task.GetInput) (task.GetTaskOutput, error) {
	filter := repository.Filter{
		AssigneeID: ip.Filter.AssigneeID,
		Status:     ip.Filter.Status,
		Priority:   ip.Filter.Priority,
		Search:     ip.Filter.Search,
	}

	// Regular users only ever see their own tasks.
	if !sc.IsManager() {
		filter.AssigneeID = sc.UserID
	}

	tsks, pag, err := uc.repo.Get(ctx, sc, repository.GetOptions{
		Filter:        filter,
		PaginateQuery: ip.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.task.usecase.Get: %v", err)
		return task.GetTaskOutput{}, err
	}

	return task.GetTaskOutput{
		Tasks:     tsks,
		Paginator: pag,
	}, nil
}

// detail loads a task and enforces visibility: non-managers can only see
// tasks assigned to them.
func (uc *usecase) detail(ctx context.Context, sc model.Scope, id string) (model.Task, error) {
	tsk, err := uc.repo.Detail(ctx, sc, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.Task{}, task.ErrTaskNotFound
		}
		uc.l.Errorf(ctx, "internal.task.usecase.detail: %v", err)
		return model.Task{}, err
	}

	if !sc.IsManager() && tsk.AssigneeID != sc.UserID {
		return model.Task{}, task.ErrTaskNotFound
	}

	return tsk, nil
}
