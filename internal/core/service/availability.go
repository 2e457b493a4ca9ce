package service

import (
	"sort"

	"github.com/mindline/booking-api/internal/core/domain"
)

// Providers are bookable between 12:00 and 19:00 by default; overrides
// open or close individual hours on top of that template.
const (
	defaultFirstHour = 12
	defaultLastHour  = 19
)

// isDefaultHour reports whether hour belongs to the default template.
func isDefaultHour(hour int) bool {
	return hour >= defaultFirstHour && hour <= defaultLastHour
}

// effectiveHours merges the default hourly template with a provider's
// overrides for one calendar day. An available override adds its hour,
// an unavailable one removes it — even when it is a template hour. Each
// (provider, hour) pair has at most one override, so application order
// does not matter.
func effectiveHours(overrides []domain.ScheduleOverride) map[int]struct{} {
	hours := make(map[int]struct{}, defaultLastHour-defaultFirstHour+1)
	for h := defaultFirstHour; h <= defaultLastHour; h++ {
		hours[h] = struct{}{}
	}

	for _, o := range overrides {
		hour := o.Date.Hour()
		if o.Status == domain.ScheduleAvailable {
			hours[hour] = struct{}{}
			continue
		}
		delete(hours, hour)
	}

	return hours
}

// sortedHours returns the hour set in ascending order.
func sortedHours(hours map[int]struct{}) []int {
	out := make([]int, 0, len(hours))
	for h := range hours {
		out = append(out, h)
	}
	sort.Ints(out)
	return out
}
