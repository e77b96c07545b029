package repository

import (
	"tasktrack-api/internal/model"
	"tasktrack-api/pkg/paginator"
)

// Filter contains filtering options for task queries.
type Filter struct {
	AssigneeID string
	Status     string
	Priority   string
	Search     string // matches title or description
}

// CreateOptions contains options for creating a task.
type CreateOptions struct {
	Task model.Task
}

// UpdateOptions contains options for updating a task.
type UpdateOptions struct {
	Task model.Task
}

// GetOptions contains options for paginated task listing.
type GetOptions struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}
