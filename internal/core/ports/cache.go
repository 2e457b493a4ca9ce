package ports

import (
	"context"
	"time"
)

// ScheduleCache caches the rendered day-schedule view for a provider.
// All operations are best-effort: a cache failure must never block or
// fail the request that triggered it.
type ScheduleCache interface {
	// GetDaySchedule reports (slots, true) on a hit and (nil, false)
	// on a miss or any backend error.
	GetDaySchedule(ctx context.Context, providerID string, year int, month time.Month, day int) ([]DaySlot, bool)
	SetDaySchedule(ctx context.Context, providerID string, year int, month time.Month, day int, slots []DaySlot)
	// InvalidateDay drops the cached view for the day containing date,
	// so the next read recomputes it.
	InvalidateDay(ctx context.Context, providerID string, date time.Time) error
}
