package model

import "context"

// Role is the access level of a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
	RoleBoss  Role = "BOSS"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleBoss:
		return true
	}
	return false
}

// IsManager reports whether the role can see and manage all tasks.
func (r Role) IsManager() bool {
	return r == RoleAdmin || r == RoleBoss
}

// Scope carries the authenticated identity through a request.
type Scope struct {
	UserID string
	Email  string
	Role   Role
}

// IsManager reports whether the scope belongs to an admin or boss.
func (s Scope) IsManager() bool {
	return s.Role.IsManager()
}

type scopeKey struct{}

// SetScopeToContext stores the authenticated scope in the context.
func SetScopeToContext(ctx context.Context, sc Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, sc)
}

// GetScopeFromContext retrieves the authenticated scope from the context.
func GetScopeFromContext(ctx context.Context) (Scope, bool) {
	sc, ok := ctx.Value(scopeKey{}).(Scope)
	return sc, ok
}
