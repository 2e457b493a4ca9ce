package ports

import (
	"context"
	"time"

	"github.com/mindline/booking-api/internal/core/domain"
)

// DayScheduleInput identifies one provider calendar day.
type DayScheduleInput struct {
	ProviderID string
	Year       int
	Month      time.Month
	Day        int
}

// DaySlot is one bookable hour in a day-schedule view. Hours outside
// the provider's effective availability do not appear at all.
type DaySlot struct {
	Hour        int                 `json:"hour"`
	Available   bool                `json:"available"`
	Appointment *domain.Appointment `json:"appointment"`
}

// MonthAvailabilityInput identifies one provider calendar month.
type MonthAvailabilityInput struct {
	ProviderID string
	Year       int
	Month      time.Month
}

// MonthDay is one day in a month-availability view. Available is a
// coarse capacity signal: at least one effective hour has no booking
// yet, without saying which.
type MonthDay struct {
	Day       int  `json:"day"`
	Available bool `json:"available"`
}

// SetScheduleInput carries a provider's explicit availability change
// for one hour slot.
type SetScheduleInput struct {
	ProviderID string
	Date       time.Time
	Status     domain.ScheduleStatus
}

// ScheduleService defines the availability views and the override
// mutation.
type ScheduleService interface {
	DaySchedule(ctx context.Context, input DayScheduleInput) ([]DaySlot, error)
	MonthAvailability(ctx context.Context, input MonthAvailabilityInput) ([]MonthDay, error)
	// SetAvailability upserts the provider's override for the slot, or
	// fails with domain.ErrPastDate or domain.ErrSlotHasAppointment.
	SetAvailability(ctx context.Context, input SetScheduleInput) (*domain.ScheduleOverride, error)
}
