package ports

import (
	"context"

	"github.com/mindline/booking-api/internal/core/domain"
)

// RegisterInput carries the fields for creating an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
