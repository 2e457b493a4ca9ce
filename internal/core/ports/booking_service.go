package ports

import (
	"context"
	"time"

	"github.com/mindline/booking-api/internal/core/domain"
)

// CreateBookingInput carries all data needed to book an hour slot.
// Date may carry minutes and seconds; the service truncates it to the
// top of the hour before validating.
type CreateBookingInput struct {
	UserID     string
	ProviderID string
	Date       time.Time
}

// AcceptBookingInput identifies the appointment a provider accepts.
type AcceptBookingInput struct {
	AppointmentID string
	ProviderID    string
}

// BookingService defines the appointment lifecycle operations.
type BookingService interface {
	// Create books a pending appointment, or fails with one of
	// domain.ErrPastDate, ErrSelfBooking, ErrInvalidProvider,
	// ErrInvalidClient, ErrSlotUnavailable, ErrSlotTaken.
	Create(ctx context.Context, input CreateBookingInput) (*domain.Appointment, error)
	// Accept transitions a pending appointment to accepted. Accepting an
	// already accepted appointment is a no-op returning it unchanged.
	Accept(ctx context.Context, input AcceptBookingInput) (*domain.Appointment, error)
}
