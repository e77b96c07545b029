package user

import (
	"context"

	"tasktrack-api/internal/model"
)

// UseCase defines the business logic for the user domain: registration,
// authentication, the user directory, and presence-annotated statuses.
type UseCase interface {
	Register(ctx context.Context, ip RegisterInput) (TokenOutput, error)
	Login(ctx context.Context, ip LoginInput) (TokenOutput, error)
	Detail(ctx context.Context, sc model.Scope, id string) (UserOutput, error)
	DetailMe(ctx context.Context, sc model.Scope) (UserOutput, error)
	List(ctx context.Context, sc model.Scope, ip ListInput) ([]model.User, error)
	Get(ctx context.Context, sc model.Scope, ip GetInput) (GetUserOutput, error)
	Update(ctx context.Context, sc model.Scope, ip UpdateInput) (UserOutput, error)
	Statuses(ctx context.Context, sc model.Scope) ([]model.UserStatus, error)

	// ListBrief returns the directory entries used for presence snapshots.
	// It takes no scope because the realtime hub calls it outside any
	// request.
	ListBrief(ctx context.Context) ([]model.UserStatus, error)
}

// Presence answers whether a user currently holds an open connection. It
// is implemented by the realtime domain.
type Presence interface {
	IsUserOnline(ctx context.Context, userID string) bool
}
