package domain

import (
	"errors"
	"time"
)

// ScheduleStatus is the explicit availability state a provider assigns
// to a single hour slot.
type ScheduleStatus string

const (
	ScheduleAvailable   ScheduleStatus = "available"
	ScheduleUnavailable ScheduleStatus = "unavailable"
)

var ErrSlotHasAppointment = errors.New("slot already has an appointment")
var ErrScheduleConflict = errors.New("schedule override already exists for this slot")

// ValidScheduleStatus reports whether s is one of the two known states.
func ValidScheduleStatus(s ScheduleStatus) bool {
	return s == ScheduleAvailable || s == ScheduleUnavailable
}

// ScheduleOverride is a provider's explicit availability record for one
// hour slot. It either opens an hour outside the default template or
// closes one inside it. Date is truncated to the top of the hour; the
// pair (ProviderID, Date) is unique.
type ScheduleOverride struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	ProviderID string         `json:"provider_id" bson:"provider_id"`
	Date       time.Time      `json:"date" bson:"date"`
	Status     ScheduleStatus `json:"status" bson:"status"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" bson:"updated_at"`
}
