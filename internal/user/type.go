package user

import (
	"tasktrack-api/internal/model"
	"tasktrack-api/pkg/paginator"
)

type RegisterInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Patronymic string
	Role       string
}

type LoginInput struct {
	Email    string
	Password string
}

type UpdateInput struct {
	ID         string
	FirstName  *string
	LastName   *string
	Patronymic *string
	Role       *string
}

type TokenOutput struct {
	Token string
	User  model.User
}

type UserOutput struct {
	User model.User
}

type GetUserOutput struct {
	Users     []model.User
	Paginator paginator.Paginator
}

type ListInput struct {
	Filter Filter
}

type GetInput struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

type Filter struct {
	IDs    []string
	Role   string
	Search string
}
