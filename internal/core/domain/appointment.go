package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending  AppointmentStatus = "pending"
	StatusAccepted AppointmentStatus = "accepted"
)

var ErrAppointmentNotFound = errors.New("appointment not found")
var ErrPastDate = errors.New("appointment date is in the past")
var ErrSelfBooking = errors.New("cannot book an appointment with yourself")
var ErrInvalidProvider = errors.New("selected provider is not a psychologist")
var ErrInvalidClient = errors.New("only clients can book appointments")
var ErrSlotUnavailable = errors.New("appointment time is not available")
var ErrSlotTaken = errors.New("appointment slot is already booked")
var ErrNotOwner = errors.New("appointment belongs to another provider")

// Appointment is a booked hour slot between a client and a provider.
// Date is always truncated to the top of the hour; the pair
// (ProviderID, Date) is unique.
type Appointment struct {
	ID         string            `json:"id" bson:"_id,omitempty"`
	UserID     string            `json:"user_id" bson:"user_id"`
	ProviderID string            `json:"provider_id" bson:"provider_id"`
	Date       time.Time         `json:"date" bson:"date"`
	Status     AppointmentStatus `json:"status" bson:"status"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" bson:"updated_at"`
}
