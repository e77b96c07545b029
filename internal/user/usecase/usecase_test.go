package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack-api/internal/model"
	"tasktrack-api/internal/user"
	"tasktrack-api/internal/user/repository"
	pkgJWT "tasktrack-api/pkg/jwt"
	"tasktrack-api/pkg/paginator"
)

// testLogger implements log.Logger for testing
type testLogger struct{}

func (m *testLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *testLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *testLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

// memRepository is an in-memory repository.Repository.
type memRepository struct {
	users map[string]model.User // keyed by ID
	seq   int
}

func newMemRepository() *memRepository {
	return &memRepository{users: make(map[string]model.User)}
}

func (m *memRepository) Create(ctx context.Context, sc model.Scope, opts repository.CreateOptions) (model.User, error) {
	for _, u := range m.users {
		if u.Email == opts.User.Email {
			return model.User{}, repository.ErrDuplicate
		}
	}
	usr := opts.User
	if usr.ID == "" {
		m.seq++
		usr.ID = fmt.Sprintf("user_%d", m.seq)
	}
	m.users[usr.ID] = usr
	return usr, nil
}

func (m *memRepository) Update(ctx context.Context, sc model.Scope, opts repository.UpdateOptions) (model.User, error) {
	if _, ok := m.users[opts.User.ID]; !ok {
		return model.User{}, repository.ErrNotFound
	}
	m.users[opts.User.ID] = opts.User
	return opts.User, nil
}

func (m *memRepository) Detail(ctx context.Context, sc model.Scope, id string) (model.User, error) {
	usr, ok := m.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return usr, nil
}

func (m *memRepository) GetOne(ctx context.Context, sc model.Scope, opts repository.GetOneOptions) (model.User, error) {
	if opts.ID != "" {
		return m.Detail(ctx, sc, opts.ID)
	}
	for _, u := range m.users {
		if u.Email == opts.Email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memRepository) List(ctx context.Context, sc model.Scope, opts repository.ListOptions) ([]model.User, error) {
	var res []model.User
	for _, u := range m.users {
		if opts.Filter.Role != "" && string(u.Role) != opts.Filter.Role {
			continue
		}
		res = append(res, u)
	}
	return res, nil
}

func (m *memRepository) Get(ctx context.Context, sc model.Scope, opts repository.GetOptions) ([]model.User, paginator.Paginator, error) {
	usrs, err := m.List(ctx, sc, repository.ListOptions{Filter: opts.Filter})
	if err != nil {
		return nil, paginator.Paginator{}, err
	}
	pag := paginator.Paginator{Total: int64(len(usrs)), Count: int64(len(usrs)), PerPage: 15, CurrentPage: 1}
	return usrs, pag, nil
}

// stubJWT issues predictable tokens.
type stubJWT struct{}

func (stubJWT) GenerateToken(userID, email, role string) (string, error) {
	return "token_" + userID, nil
}
func (stubJWT) VerifyToken(tokenString string) (*pkgJWT.Claims, error) { return nil, nil }
func (stubJWT) ExtractUserID(tokenString string) (string, error)       { return "", nil }

// stubPresence marks a fixed set of users online.
type stubPresence struct {
	online map[string]bool
}

func (s *stubPresence) IsUserOnline(ctx context.Context, userID string) bool {
	return s.online[userID]
}

func newTestUseCase(presence user.Presence) (user.UseCase, *memRepository) {
	repo := newMemRepository()
	return New(&testLogger{}, repo, stubJWT{}, presence), repo
}

func registerInput(email string) user.RegisterInput {
	return user.RegisterInput{
		Email:     email,
		Password:  "secret123",
		FirstName: "Ivan",
		LastName:  "Petrov",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(nil)

	out, err := uc.Register(ctx, registerInput("ivan@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, model.RoleUser, out.User.Role, "role defaults to USER")
	assert.NotEqual(t, "secret123", out.User.Password, "password must be stored hashed")

	logged, err := uc.Login(ctx, user.LoginInput{Email: "ivan@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, logged.User.ID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(nil)

	_, err := uc.Register(ctx, registerInput("ivan@example.com"))
	require.NoError(t, err)

	_, err = uc.Login(ctx, user.LoginInput{Email: "ivan@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = uc.Login(ctx, user.LoginInput{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(nil)

	_, err := uc.Register(ctx, registerInput("ivan@example.com"))
	require.NoError(t, err)

	_, err = uc.Register(ctx, registerInput("ivan@example.com"))
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(nil)

	ip := registerInput("ivan@example.com")
	ip.Role = "SUPERVISOR"
	_, err := uc.Register(ctx, ip)
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestUpdateRequiresManager(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(nil)

	out, err := uc.Register(ctx, registerInput("ivan@example.com"))
	require.NoError(t, err)

	firstName := "Pyotr"
	_, err = uc.Update(ctx, model.Scope{UserID: out.User.ID, Role: model.RoleUser},
		user.UpdateInput{ID: out.User.ID, FirstName: &firstName})
	assert.ErrorIs(t, err, user.ErrPermissionDenied)

	updated, err := uc.Update(ctx, model.Scope{UserID: "boss_1", Role: model.RoleBoss},
		user.UpdateInput{ID: out.User.ID, FirstName: &firstName})
	require.NoError(t, err)
	assert.Equal(t, "Pyotr", updated.User.FirstName)
}

func TestUpdateRejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(nil)

	out, err := uc.Register(ctx, registerInput("ivan@example.com"))
	require.NoError(t, err)

	role := "SUPERVISOR"
	_, err = uc.Update(ctx, model.Scope{UserID: "boss_1", Role: model.RoleBoss},
		user.UpdateInput{ID: out.User.ID, Role: &role})
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestStatusesMergePresence(t *testing.T) {
	ctx := context.Background()
	presence := &stubPresence{online: map[string]bool{}}
	uc, _ := newTestUseCase(presence)

	ivan, err := uc.Register(ctx, registerInput("ivan@example.com"))
	require.NoError(t, err)
	_, err = uc.Register(ctx, registerInput("anna@example.com"))
	require.NoError(t, err)

	presence.online[ivan.User.ID] = true

	statuses, err := uc.Statuses(ctx, model.Scope{UserID: "boss_1", Role: model.RoleBoss})
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	byID := make(map[string]model.UserStatus)
	for _, s := range statuses {
		byID[s.ID] = s
	}
	assert.True(t, byID[ivan.User.ID].IsOnline)
	for id, s := range byID {
		if id != ivan.User.ID {
			assert.False(t, s.IsOnline)
		}
	}
}

func TestListBriefLeavesPresenceUnset(t *testing.T) {
	ctx := context.Background()
	presence := &stubPresence{online: map[string]bool{"user_1": true}}
	uc, _ := newTestUseCase(presence)

	_, err := uc.Register(ctx, registerInput("ivan@example.com"))
	require.NoError(t, err)

	brief, err := uc.ListBrief(ctx)
	require.NoError(t, err)
	require.Len(t, brief, 1)
	assert.False(t, brief[0].IsOnline, "hub overlays its own presence")
}
