package usecase

import (
	"context"

	"github.com/aarondl/null/v8"

	"tasktrack-api/internal/model"
	"tasktrack-api/internal/user"
	"tasktrack-api/internal/user/repository"
)

func (uc *usecase) Detail(ctx context.Context, sc model.Scope, id string) (user.UserOutput, error) {
	usr, err := uc.repo.Detail(ctx, sc, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return user.UserOutput{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.user.usecase.Detail: %v", err)
		return user.UserOutput{}, err
	}

	return user.UserOutput{User: usr}, nil
}

func (uc *usecase) DetailMe(ctx context.Context, sc model.Scope) (user.UserOutput, error) {
	usr, err := uc.repo.Detail(ctx, sc, sc.UserID)
	if err != nil {
		if err == repository.ErrNotFound {
			return user.UserOutput{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.user.usecase.DetailMe: %v", err)
		return user.UserOutput{}, err
	}

	return user.UserOutput{User: usr}, nil
}

func (uc *usecase) List(ctx context.Context, sc model.Scope, ip user.ListInput) ([]model.User, error) {
	opts := repository.ListOptions{
		Filter: repository.Filter{
			IDs:    ip.Filter.IDs,
			Role:   ip.Filter.Role,
			Search: ip.Filter.Search,
		},
	}

	usrs, err := uc.repo.List(ctx, sc, opts)
	if err != nil {
		uc.l.Errorf(ctx, "internal.user.usecase.List: %v", err)
		return nil, err
	}

	return usrs, nil
}

func (uc *usecase) Get(ctx context.Context, sc model.Scope, ip user.GetInput) (user.GetUserOutput, error) {
	opts := repository.GetOptions{
		Filter: repository.Filter{
			IDs:    ip.Filter.IDs,
			Role:   ip.Filter.Role,
			Search: ip.Filter.Search,
		},
		PaginateQuery: ip.PaginateQuery,
	}

	usrs, pag, err := uc.repo.Get(ctx, sc, opts)
	if err != nil {
		uc.l.Errorf(ctx, "internal.user.usecase.Get: %v", err)
		return user.GetUserOutput{}, err
	}

	return user.GetUserOutput{
		Users:     usrs,
		Paginator: pag,
	}, nil
}

func (uc *usecase) Update(ctx context.Context, sc model.Scope, ip user.UpdateInput) (user.UserOutput, error) {
	if !sc.IsManager() {
		return user.UserOutput{}, user.ErrPermissionDenied
	}

	usr, err := uc.repo.Detail(ctx, sc, ip.ID)
	if err != nil {
		if err == repository.ErrNotFound {
			return user.UserOutput{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.user.usecase.Update.Detail: %v", err)
		return user.UserOutput{}, err
	}

	if ip.FirstName != nil {
		usr.FirstName = *ip.FirstName
	}
	if ip.LastName != nil {
		usr.LastName = *ip.LastName
	}
	if ip.Patronymic != nil {
		usr.Patronymic = null.NewString(*ip.Patronymic, *ip.Patronymic != "")
	}
	if ip.Role != nil {
		role := model.Role(*ip.Role)
		if !role.IsValid() {
			return user.UserOutput{}, user.ErrInvalidRole
		}
		usr.Role = role
	}

	updated, err := uc.repo.Update(ctx, sc, repository.UpdateOptions{User: usr})
	if err != nil {
		if err == repository.ErrNotFound {
			return user.UserOutput{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.user.usecase.Update: %v", err)
		return user.UserOutput{}, err
	}

	return user.UserOutput{User: updated}, nil
}

func (uc *usecase) Statuses(ctx context.Context, sc model.Scope) ([]model.UserStatus, error) {
	usrs, err := uc.repo.List(ctx, sc, repository.ListOptions{})
	if err != nil {
		uc.l.Errorf(ctx, "internal.user.usecase.Statuses: %v", err)
		return nil, err
	}

	res := make([]model.UserStatus, len(usrs))
	for i, u := range usrs {
		res[i] = model.UserStatus{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      u.Role,
			IsOnline:  uc.presence != nil && uc.presence.IsUserOnline(ctx, u.ID),
		}
	}

	return res, nil
}

// ListBrief backs the realtime presence snapshot. Presence flags are left
// false here; the hub overlays its own connection state.
func (uc *usecase) ListBrief(ctx context.Context) ([]model.UserStatus, error) {
	usrs, err := uc.repo.List(ctx, model.Scope{}, repository.ListOptions{})
	if err != nil {
		uc.l.Errorf(ctx, "internal.user.usecase.ListBrief: %v", err)
		return nil, err
	}

	res := make([]model.UserStatus, len(usrs))
	for i, u := range usrs {
		res[i] = model.UserStatus{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      u.Role,
		}
	}

	return res, nil
}
