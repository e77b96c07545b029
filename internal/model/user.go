package model

import (
	"time"

	"github.com/aarondl/null/v8"
)

// User is an account in the system.
type User struct {
	ID         string
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Patronymic null.String
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullName returns "LastName FirstName Patronymic" with the patronymic
// omitted when absent.
func (u User) FullName() string {
	name := u.LastName + " " + u.FirstName
	if u.Patronymic.Valid && u.Patronymic.String != "" {
		name += " " + u.Patronymic.String
	}
	return name
}

// DisplayName returns "FirstName LastName", the form shown next to tasks.
func (u User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// UserStatus is a user profile combined with live presence.
type UserStatus struct {
	ID        string
	FirstName string
	LastName  string
	Role      Role
	IsOnline  bool
}
