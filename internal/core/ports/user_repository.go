package ports

import (
	"context"

	"github.com/mindline/booking-api/internal/core/domain"
)

// UserRepository exposes the account lookups the engine and the auth
// layer need.
type UserRepository interface {
	// FindByID returns domain.ErrUserNotFound when no account exists.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
