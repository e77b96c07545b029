package repository

import (
	"tasktrack-api/internal/model"
	"tasktrack-api/pkg/paginator"
)

// Filter contains filtering options for user queries.
type Filter struct {
	IDs    []string
	Role   string
	Search string // matches email, first name, or last name
}

// CreateOptions contains options for creating a user.
type CreateOptions struct {
	User model.User
}

// UpdateOptions contains options for updating a user.
type UpdateOptions struct {
	User model.User
}

// GetOneOptions contains options for getting a single user.
type GetOneOptions struct {
	ID    string
	Email string
}

// ListOptions contains options for listing users.
type ListOptions struct {
	Filter Filter
}

// GetOptions contains options for paginated user listing.
type GetOptions struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}
