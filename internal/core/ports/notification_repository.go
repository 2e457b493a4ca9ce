package ports

import (
	"context"

	"github.com/mindline/booking-api/internal/core/domain"
)

// NotificationInput is a notification waiting to be written to a
// recipient's inbox.
type NotificationInput struct {
	RecipientID string
	Content     string
}

// NotificationRepository persists notifications. Writes happen off the
// request path; callers treat failures as non-fatal.
type NotificationRepository interface {
	Create(ctx context.Context, n NotificationInput) (*domain.Notification, error)
}
