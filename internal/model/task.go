package model

import (
	"time"

	"github.com/aarondl/null/v8"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskStatusAssigned    TaskStatus = "ASSIGNED"
	TaskStatusInProgress  TaskStatus = "IN_PROGRESS"
	TaskStatusUnderReview TaskStatus = "UNDER_REVIEW"
	TaskStatusCompleted   TaskStatus = "COMPLETED"
	TaskStatusRevision    TaskStatus = "REVISION"
)

// IsValid reports whether the status is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusAssigned, TaskStatusInProgress, TaskStatusUnderReview,
		TaskStatusCompleted, TaskStatusRevision:
		return true
	}
	return false
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	switch s {
	case TaskStatusAssigned:
		return next == TaskStatusInProgress
	case TaskStatusInProgress:
		return next == TaskStatusUnderReview
	case TaskStatusUnderReview:
		return next == TaskStatusCompleted || next == TaskStatusRevision
	case TaskStatusRevision:
		return next == TaskStatusInProgress
	}
	return false
}

// TaskPriority is the urgency level of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// IsValid reports whether the priority is one of the known priorities.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// ReportFile describes the report attached to a task, either an uploaded
// file or an inline text report.
type ReportFile struct {
	Name         string
	URL          string
	UploadedAt   time.Time
	Size         int64
	Comment      null.String
	IsTextReport bool
}

// Task is a unit of assigned work.
type Task struct {
	ID          string
	Title       string
	Description null.String
	Priority    TaskPriority
	Deadline    null.Time
	Status      TaskStatus
	AssigneeID  string
	CreatedBy   string
	UpdatedBy   null.String
	Report      *ReportFile
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined profiles, populated on reads.
	Assignee *User
	Creator  *User
}
