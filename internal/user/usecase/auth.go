package usecase

import (
	"context"

	"github.com/aarondl/null/v8"

	"tasktrack-api/internal/model"
	"tasktrack-api/internal/user"
	"tasktrack-api/internal/user/repository"
	"tasktrack-api/pkg/encrypter"
)

func (uc *usecase) Register(ctx context.Context, ip user.RegisterInput) (user.TokenOutput, error) {
	role := model.Role(ip.Role)
	if ip.Role == "" {
		role = model.RoleUser
	}
	if !role.IsValid() {
		return user.TokenOutput{}, user.ErrInvalidRole
	}

	_, err := uc.repo.GetOne(ctx, model.Scope{}, repository.GetOneOptions{Email: ip.Email})
	if err == nil {
		return user.TokenOutput{}, user.ErrEmailExists
	}
	if err != repository.ErrNotFound {
		uc.l.Errorf(ctx, "internal.user.usecase.Register.GetOne: %v", err)
		return user.TokenOutput{}, err
	}

	hash, err := encrypter.HashPassword(ip.Password)
	if err != nil {
		uc.l.Errorf(ctx, "internal.user.usecase.Register.HashPassword: %v", err)
		return user.TokenOutput{}, err
	}

	usr := model.User{
		Email:      ip.Email,
		Password:   hash,
		FirstName:  ip.FirstName,
		LastName:   ip.LastName,
		Patronymic: null.NewString(ip.Patronymic, ip.Patronymic != ""),
		Role:       role,
	}

	created, err := uc.repo.Create(ctx, model.Scope{}, repository.CreateOptions{User: usr})
	if err != nil {
		if err == repository.ErrDuplicate {
			return user.TokenOutput{}, user.ErrEmailExists
		}
		uc.l.Errorf(ctx, "internal.user.usecase.Register.Create: %v", err)
		return user.TokenOutput{}, err
	}

	return uc.issueToken(ctx, created)
}

func (uc *usecase) Login(ctx context.Context, ip user.LoginInput) (user.TokenOutput, error) {
	usr, err := uc.repo.GetOne(ctx, model.Scope{}, repository.GetOneOptions{Email: ip.Email})
	if err != nil {
		if err == repository.ErrNotFound {
			return user.TokenOutput{}, user.ErrInvalidCredentials
		}
		uc.l.Errorf(ctx, "internal.user.usecase.Login.GetOne: %v", err)
		return user.TokenOutput{}, err
	}

	if !encrypter.CheckPasswordHash(ip.Password, usr.Password) {
		return user.TokenOutput{}, user.ErrInvalidCredentials
	}

	return uc.issueToken(ctx, usr)
}

func (uc *usecase) issueToken(ctx context.Context, usr model.User) (user.TokenOutput, error) {
	token, err := uc.jwt.GenerateToken(usr.ID, usr.Email, string(usr.Role))
	if err != nil {
		uc.l.Errorf(ctx, "internal.user.usecase.issueToken: %v", err)
		return user.TokenOutput{}, err
	}

	return user.TokenOutput{Token: token, User: usr}, nil
}
