package http

import (
	"time"

	"tasktrack-api/internal/model"
	"tasktrack-api/internal/realtime"
	"tasktrack-api/internal/task"
	"tasktrack-api/pkg/locale"
	"tasktrack-api/pkg/paginator"
)

type createTaskReq struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Deadline    *time.Time `json:"deadline"`
	AssigneeID  string     `json:"assigneeId" binding:"required"`
}

func (r createTaskReq) toInput() task.CreateInput {
	return task.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Deadline:    r.Deadline,
		AssigneeID:  r.AssigneeID,
	}
}

type updateTaskReq struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	Deadline    *time.Time `json:"deadline"`
	AssigneeID  *string    `json:"assigneeId"`
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

type textReportReq struct {
	Text    string `json:"text"`
	Comment string `json:"comment"`
}

type listTasksQuery struct {
	AssigneeID string `form:"assigneeId"`
	Status     string `form:"status"`
	Priority   string `form:"priority"`
	Search     string `form:"search"`
	paginator.PaginateQuery
}

// taskResp is the REST shape of a task: the wire payload shared with the
// realtime channel plus localized display labels.
type taskResp struct {
	realtime.TaskPayload
	StatusLabel   string `json:"statusLabel"`
	PriorityLabel string `json:"priorityLabel"`
}

func newTaskResp(lang string, t model.Task) taskResp {
	return taskResp{
		TaskPayload:   realtime.NewTaskPayload(t),
		StatusLabel:   locale.StatusLabel(lang, string(t.Status)),
		PriorityLabel: locale.PriorityLabel(lang, string(t.Priority)),
	}
}

type listTasksResp struct {
	Tasks     []taskResp                  `json:"tasks"`
	Paginator paginator.PaginatorResponse `json:"paginator"`
}

func newListTasksResp(lang string, out task.GetTaskOutput) listTasksResp {
	tasks := make([]taskResp, len(out.Tasks))
	for i, t := range out.Tasks {
		tasks[i] = newTaskResp(lang, t)
	}
	return listTasksResp{
		Tasks:     tasks,
		Paginator: out.Paginator.ToResponse(),
	}
}
