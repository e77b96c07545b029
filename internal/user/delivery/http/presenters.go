package http

import (
	"time"

	"tasktrack-api/internal/model"
	"tasktrack-api/internal/user"
	"tasktrack-api/pkg/paginator"
)

type registerReq struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Patronymic string `json:"patronymic"`
	Role       string `json:"role"`
}

func (r registerReq) toInput() user.RegisterInput {
	return user.RegisterInput{
		Email:      r.Email,
		Password:   r.Password,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Patronymic: r.Patronymic,
		Role:       r.Role,
	}
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateUserReq struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Patronymic *string `json:"patronymic"`
	Role       *string `json:"role"`
}

type listUsersQuery struct {
	Role   string `form:"role"`
	Search string `form:"search"`
	paginator.PaginateQuery
}

type userResp struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Patronymic *string   `json:"patronymic,omitempty"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func newUserResp(u model.User) userResp {
	resp := userResp{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Patronymic.Valid {
		resp.Patronymic = &u.Patronymic.String
	}
	return resp
}

type tokenResp struct {
	Token string   `json:"token"`
	User  userResp `json:"user"`
}

func newTokenResp(out user.TokenOutput) tokenResp {
	return tokenResp{
		Token: out.Token,
		User:  newUserResp(out.User),
	}
}

type listUsersResp struct {
	Users     []userResp                  `json:"users"`
	Paginator paginator.PaginatorResponse `json:"paginator"`
}

func newListUsersResp(out user.GetUserOutput) listUsersResp {
	users := make([]userResp, len(out.Users))
	for i, u := range out.Users {
		users[i] = newUserResp(u)
	}
	return listUsersResp{
		Users:     users,
		Paginator: out.Paginator.ToResponse(),
	}
}

type userStatusResp struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsOnline  bool   `json:"isOnline"`
}

func newUserStatusesResp(statuses []model.UserStatus) []userStatusResp {
	res := make([]userStatusResp, len(statuses))
	for i, s := range statuses {
		res[i] = userStatusResp{
			ID:        s.ID,
			FirstName: s.FirstName,
			LastName:  s.LastName,
			Role:      string(s.Role),
			IsOnline:  s.IsOnline,
		}
	}
	return res
}
