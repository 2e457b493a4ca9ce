package domain

import (
	"errors"
	"time"
)

// Role distinguishes the two kinds of accounts: clients book
// appointments, psychologists provide them.
type Role string

const (
	RoleClient       Role = "client"
	RolePsychologist Role = "psychologist"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidRole reports whether r is one of the two known roles.
func ValidRole(r Role) bool {
	return r == RoleClient || r == RolePsychologist
}

// User models an account in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
