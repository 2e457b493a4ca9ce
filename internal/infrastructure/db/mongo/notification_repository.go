package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mindline/booking-api/internal/core/domain"
	"github.com/mindline/booking-api/internal/core/ports"
)

const collectionNotifications = "notifications"

type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

// Create writes a notification to the recipient's inbox.
func (r *NotificationRepository) Create(ctx context.Context, n ports.NotificationInput) (*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := domain.Notification{
		ID:          uuid.NewString(),
		RecipientID: n.RecipientID,
		Content:     n.Content,
		Read:        false,
		CreatedAt:   time.Now(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return &doc, nil
}
