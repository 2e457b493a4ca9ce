package ports

import (
	"context"
	"time"

	"github.com/mindline/booking-api/internal/core/domain"
)

// CreateScheduleData carries the fields persisted for a new override.
// Date must already be truncated to the top of the hour.
type CreateScheduleData struct {
	ProviderID string
	Date       time.Time
	Status     domain.ScheduleStatus
}

// ScheduleRepository defines persistence operations for schedule overrides.
//
// The store must enforce uniqueness of (provider_id, date): a concurrent
// second insert for the same slot surfaces domain.ErrScheduleConflict.
type ScheduleRepository interface {
	// FindByDate returns (nil, nil) when no override exists for the slot.
	FindByDate(ctx context.Context, date time.Time, providerID string) (*domain.ScheduleOverride, error)
	FindAllInDay(ctx context.Context, providerID string, year int, month time.Month, day int) ([]domain.ScheduleOverride, error)
	FindAllInMonth(ctx context.Context, providerID string, year int, month time.Month) ([]domain.ScheduleOverride, error)
	Create(ctx context.Context, data CreateScheduleData) (*domain.ScheduleOverride, error)
	Save(ctx context.Context, override *domain.ScheduleOverride) (*domain.ScheduleOverride, error)
}
