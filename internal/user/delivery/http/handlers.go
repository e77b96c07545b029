package http

import (
	"github.com/gin-gonic/gin"

	"tasktrack-api/internal/model"
	"tasktrack-api/internal/user"
	"tasktrack-api/pkg/response"
)

// Register creates a new account and returns a token.
// @Summary Register
// @Description Create a new account. Role defaults to USER.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body registerReq true "Registration data"
// @Success 200 {object} tokenResp
// @Router /auth/register [POST]
func (h Handler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.user.delivery.http.Register.ShouldBindJSON: %v", err)
		response.Error(c, err)
		return
	}

	out, err := h.uc.Register(ctx, req.toInput())
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, newTokenResp(out))
}

// Login authenticates an account and returns a token.
// @Summary Login
// @Description Exchange email and password for a JWT.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginReq true "Credentials"
// @Success 200 {object} tokenResp
// @Router /auth/login [POST]
func (h Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.user.delivery.http.Login.ShouldBindJSON: %v", err)
		response.Error(c, err)
		return
	}

	out, err := h.uc.Login(ctx, user.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, newTokenResp(out))
}

// Me returns the authenticated user's profile.
// @Summary Get my profile
// @Tags Users
// @Produce json
// @Success 200 {object} userResp
// @Security BearerAuth
// @Router /users/me [GET]
func (h Handler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	out, err := h.uc.DetailMe(ctx, sc)
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, newUserResp(out.User))
}

// Detail returns a user profile by ID.
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} userResp
// @Security BearerAuth
// @Router /users/{id} [GET]
func (h Handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	out, err := h.uc.Detail(ctx, sc, c.Param("id"))
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, newUserResp(out.User))
}

// Get returns a paginated user listing.
// @Summary List users
// @Tags Users
// @Produce json
// @Param role query string false "Filter by role"
// @Param search query string false "Search in email or name"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} listUsersResp
// @Security BearerAuth
// @Router /users [GET]
func (h Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.l.Warnf(ctx, "internal.user.delivery.http.Get.ShouldBindQuery: %v", err)
		response.Error(c, err)
		return
	}

	out, err := h.uc.Get(ctx, sc, user.GetInput{
		Filter:        user.Filter{Role: q.Role, Search: q.Search},
		PaginateQuery: q.PaginateQuery,
	})
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, newListUsersResp(out))
}

// Statuses returns every user annotated with live presence.
// @Summary List user statuses
// @Description Directory of users with an isOnline flag from the realtime hub.
// @Tags Users
// @Produce json
// @Success 200 {array} userStatusResp
// @Security BearerAuth
// @Router /users/status [GET]
func (h Handler) Statuses(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	statuses, err := h.uc.Statuses(ctx, sc)
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, newUserStatusesResp(statuses))
}

// Update edits a user profile. Managers only.
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body updateUserReq true "Fields to update"
// @Success 200 {object} userResp
// @Security BearerAuth
// @Router /users/{id} [PUT]
func (h Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := model.GetScopeFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.user.delivery.http.Update.ShouldBindJSON: %v", err)
		response.Error(c, err)
		return
	}

	out, err := h.uc.Update(ctx, sc, user.UpdateInput{
		ID:         c.Param("id"),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Patronymic: req.Patronymic,
		Role:       req.Role,
	})
	if err != nil {
		response.ErrorWithMap(c, err, errMapping)
		return
	}

	response.OK(c, newUserResp(out.User))
}
