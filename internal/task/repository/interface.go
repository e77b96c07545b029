package repository

import (
	"context"

	"tasktrack-api/internal/model"
	"tasktrack-api/pkg/paginator"
)

type Repository interface {
	Create(ctx context.Context, sc model.Scope, opts CreateOptions) (model.Task, error)
	Update(ctx context.Context, sc model.Scope, opts UpdateOptions) (model.Task, error)
	Detail(ctx context.Context, sc model.Scope, id string) (model.Task, error)
	Get(ctx context.Context, sc model.Scope, opts GetOptions) ([]model.Task, paginator.Paginator, error)
	Delete(ctx context.Context, sc model.Scope, id string) error
}
