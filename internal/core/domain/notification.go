package domain

import "time"

// Notification is a message delivered to a provider's inbox, e.g. when a
// client books one of their slots. Delivery is fire-and-forget: a failed
// notification never fails the booking that produced it.
type Notification struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	RecipientID string    `json:"recipient_id" bson:"recipient_id"`
	Content     string    `json:"content" bson:"content"`
	Read        bool      `json:"read" bson:"read"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
