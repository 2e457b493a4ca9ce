package ports

import (
	"context"
	"time"

	"github.com/mindline/booking-api/internal/core/domain"
)

// CreateAppointmentData carries the fields persisted for a new appointment.
// Date must already be truncated to the top of the hour.
type CreateAppointmentData struct {
	UserID     string
	ProviderID string
	Date       time.Time
	Status     domain.AppointmentStatus
}

// AppointmentRepository defines persistence operations for appointments.
//
// The store must enforce uniqueness of (provider_id, date): a concurrent
// second insert for the same slot surfaces domain.ErrSlotTaken.
type AppointmentRepository interface {
	// FindByID returns domain.ErrAppointmentNotFound when no record exists.
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	// FindByDate returns (nil, nil) when the slot is free.
	FindByDate(ctx context.Context, date time.Time, providerID string) (*domain.Appointment, error)
	FindAllInDay(ctx context.Context, providerID string, year int, month time.Month, day int) ([]domain.Appointment, error)
	FindAllInMonth(ctx context.Context, providerID string, year int, month time.Month) ([]domain.Appointment, error)
	Create(ctx context.Context, data CreateAppointmentData) (*domain.Appointment, error)
	Save(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}
