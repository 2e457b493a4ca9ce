package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindline/booking-api/internal/core/domain"
	"github.com/mindline/booking-api/internal/core/ports"
	"github.com/mindline/booking-api/internal/core/timeslot"
)

type scheduleFixture struct {
	svc          *scheduleService
	appointments *stubAppointmentRepo
	schedules    *stubScheduleRepo
	cache        *stubCache
}

func newScheduleFixture() scheduleFixture {
	f := scheduleFixture{
		appointments: newStubAppointmentRepo(),
		schedules:    newStubScheduleRepo(),
		cache:        newStubCache(),
	}
	svc := NewScheduleService(f.appointments, f.schedules, f.cache, zerolog.Nop())
	f.svc = svc.(*scheduleService)
	f.svc.now = func() time.Time { return ref }
	return f
}

// nextDay is the day after the fixed reference instant, so every slot
// in it is in the future.
var nextDay = ports.DayScheduleInput{ProviderID: "provider_1", Year: 2026, Month: time.September, Day: 16}

// ---------------------------------------------------------------------------
// DaySchedule tests
// ---------------------------------------------------------------------------

func TestDaySchedule_DefaultTemplate(t *testing.T) {
	f := newScheduleFixture()

	slots, err := f.svc.DaySchedule(context.Background(), nextDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(slots))
	}
	for i, slot := range slots {
		if slot.Hour != 12+i {
			t.Errorf("slot %d: expected hour %d, got %d", i, 12+i, slot.Hour)
		}
		if !slot.Available {
			t.Errorf("hour %d: future unbooked slot must be available", slot.Hour)
		}
		if slot.Appointment != nil {
			t.Errorf("hour %d: expected no appointment", slot.Hour)
		}
	}
}

func TestDaySchedule_OverridesAndBooking(t *testing.T) {
	f := newScheduleFixture()

	// hour 14 closed, appointment at hour 13
	_, _ = f.schedules.Create(context.Background(), ports.CreateScheduleData{
		ProviderID: "provider_1",
		Date:       futureSlot(14),
		Status:     domain.ScheduleUnavailable,
	})
	booked, _ := f.appointments.Create(context.Background(), ports.CreateAppointmentData{
		UserID:     "client_1",
		ProviderID: "provider_1",
		Date:       futureSlot(13),
		Status:     domain.StatusPending,
	})

	slots, err := f.svc.DaySchedule(context.Background(), nextDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantHours := []int{12, 13, 15, 16, 17, 18, 19}
	if len(slots) != len(wantHours) {
		t.Fatalf("expected hours %v, got %d slots", wantHours, len(slots))
	}
	for i, slot := range slots {
		if slot.Hour != wantHours[i] {
			t.Fatalf("slot %d: expected hour %d, got %d", i, wantHours[i], slot.Hour)
		}
		switch slot.Hour {
		case 13:
			if slot.Available {
				t.Error("booked hour 13 must not be available")
			}
			if slot.Appointment == nil || slot.Appointment.ID != booked.ID {
				t.Error("hour 13 must carry its appointment")
			}
		default:
			if !slot.Available {
				t.Errorf("hour %d: expected available", slot.Hour)
			}
			if slot.Appointment != nil {
				t.Errorf("hour %d: expected no appointment", slot.Hour)
			}
		}
	}
}

func TestDaySchedule_PastHoursUnavailable(t *testing.T) {
	f := newScheduleFixture()

	// the reference day itself: now is 10:00, every template hour 12..19
	// is still ahead, so shift now to 15:30 to park 12..15 in the past
	f.svc.now = func() time.Time {
		return time.Date(2026, time.September, 15, 15, 30, 0, 0, time.Local)
	}

	slots, err := f.svc.DaySchedule(context.Background(), ports.DayScheduleInput{
		ProviderID: "provider_1", Year: 2026, Month: time.September, Day: 15,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, slot := range slots {
		wantAvailable := slot.Hour >= 16
		if slot.Available != wantAvailable {
			t.Errorf("hour %d: expected available=%v at 15:30", slot.Hour, wantAvailable)
		}
	}
}

func TestDaySchedule_EmptyStoresYieldFilteredTemplate(t *testing.T) {
	f := newScheduleFixture()

	// a fully past day: template hours appear, none available
	slots, err := f.svc.DaySchedule(context.Background(), ports.DayScheduleInput{
		ProviderID: "provider_1", Year: 2026, Month: time.September, Day: 14,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(slots))
	}
	for _, slot := range slots {
		if slot.Available {
			t.Errorf("hour %d of a past day must not be available", slot.Hour)
		}
	}
}

func TestDaySchedule_ServedFromCache(t *testing.T) {
	f := newScheduleFixture()

	first, err := f.svc.DaySchedule(context.Background(), nextDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// mutate the store behind the cache; the cached view must win
	_, _ = f.schedules.Create(context.Background(), ports.CreateScheduleData{
		ProviderID: "provider_1",
		Date:       futureSlot(14),
		Status:     domain.ScheduleUnavailable,
	})

	second, err := f.svc.DaySchedule(context.Background(), nextDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != len(first) {
		t.Errorf("expected cached view with %d slots, got %d", len(first), len(second))
	}

	// after invalidation the view is recomputed
	_ = f.cache.InvalidateDay(context.Background(), "provider_1", futureSlot(14))
	third, err := f.svc.DaySchedule(context.Background(), nextDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(third) != 7 {
		t.Errorf("expected recomputed view with 7 slots, got %d", len(third))
	}
}

// ---------------------------------------------------------------------------
// MonthAvailability tests
// ---------------------------------------------------------------------------

func TestMonthAvailability_EmptyFutureMonth(t *testing.T) {
	f := newScheduleFixture()

	days, err := f.svc.MonthAvailability(context.Background(), ports.MonthAvailabilityInput{
		ProviderID: "provider_1", Year: 2026, Month: time.November,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(days) != 30 {
		t.Fatalf("expected 30 days for November, got %d", len(days))
	}
	for _, d := range days {
		if !d.Available {
			t.Errorf("day %d: expected available (capacity 8, bookings 0)", d.Day)
		}
	}
}

func TestMonthAvailability_PastDaysUnavailable(t *testing.T) {
	f := newScheduleFixture()

	days, err := f.svc.MonthAvailability(context.Background(), ports.MonthAvailabilityInput{
		ProviderID: "provider_1", Year: 2026, Month: time.September,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, d := range days {
		// ref is the 15th at 10:00; its end of day is still ahead
		wantAvailable := d.Day >= 15
		if d.Available != wantAvailable {
			t.Errorf("day %d: expected available=%v", d.Day, wantAvailable)
		}
	}
}

func TestMonthAvailability_FullDayUnavailable(t *testing.T) {
	f := newScheduleFixture()

	// close every hour except 14, then book 14
	for h := 12; h <= 19; h++ {
		if h == 14 {
			continue
		}
		_, _ = f.schedules.Create(context.Background(), ports.CreateScheduleData{
			ProviderID: "provider_1",
			Date:       futureSlot(h),
			Status:     domain.ScheduleUnavailable,
		})
	}
	_, _ = f.appointments.Create(context.Background(), ports.CreateAppointmentData{
		UserID:     "client_1",
		ProviderID: "provider_1",
		Date:       futureSlot(14),
		Status:     domain.StatusPending,
	})

	days, err := f.svc.MonthAvailability(context.Background(), ports.MonthAvailabilityInput{
		ProviderID: "provider_1", Year: 2026, Month: time.September,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if days[15].Day != 16 {
		t.Fatalf("expected index 15 to be day 16, got %d", days[15].Day)
	}
	if days[15].Available {
		t.Error("day 16: single open hour is booked, day must be unavailable")
	}
}

func TestMonthAvailability_CountsNotHours(t *testing.T) {
	f := newScheduleFixture()

	// one booking against eight open hours: the capacity signal stays
	// available regardless of which hour carries the booking
	_, _ = f.appointments.Create(context.Background(), ports.CreateAppointmentData{
		UserID:     "client_1",
		ProviderID: "provider_1",
		Date:       futureSlot(12),
		Status:     domain.StatusPending,
	})

	days, err := f.svc.MonthAvailability(context.Background(), ports.MonthAvailabilityInput{
		ProviderID: "provider_1", Year: 2026, Month: time.September,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !days[15].Available {
		t.Error("day 16: 1 booking < 8 open hours, day must stay available")
	}
}

func TestMonthAvailability_DaysInLeapFebruary(t *testing.T) {
	f := newScheduleFixture()
	f.svc.now = func() time.Time {
		return time.Date(2028, time.January, 1, 0, 0, 0, 0, time.Local)
	}

	days, err := f.svc.MonthAvailability(context.Background(), ports.MonthAvailabilityInput{
		ProviderID: "provider_1", Year: 2028, Month: time.February,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 29 {
		t.Errorf("expected 29 days for February 2028, got %d", len(days))
	}
}

// ---------------------------------------------------------------------------
// SetAvailability tests
// ---------------------------------------------------------------------------

func TestSetAvailability_CreatesOverride(t *testing.T) {
	f := newScheduleFixture()

	got, err := f.svc.SetAvailability(context.Background(), ports.SetScheduleInput{
		ProviderID: "provider_1",
		Date:       futureSlot(9).Add(25 * time.Minute),
		Status:     domain.ScheduleAvailable,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Status != domain.ScheduleAvailable {
		t.Errorf("expected status available, got %q", got.Status)
	}
	if !got.Date.Equal(futureSlot(9)) {
		t.Errorf("expected truncated date %v, got %v", futureSlot(9), got.Date)
	}
	if len(f.schedules.byID) != 1 {
		t.Errorf("expected 1 stored override, got %d", len(f.schedules.byID))
	}
}

func TestSetAvailability_MutatesExistingInPlace(t *testing.T) {
	f := newScheduleFixture()

	first, err := f.svc.SetAvailability(context.Background(), ports.SetScheduleInput{
		ProviderID: "provider_1",
		Date:       futureSlot(14),
		Status:     domain.ScheduleUnavailable,
	})
	if err != nil {
		t.Fatalf("first set failed: %v", err)
	}

	second, err := f.svc.SetAvailability(context.Background(), ports.SetScheduleInput{
		ProviderID: "provider_1",
		Date:       futureSlot(14),
		Status:     domain.ScheduleAvailable,
	})
	if err != nil {
		t.Fatalf("second set failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected same override mutated in place, got ids %q and %q", first.ID, second.ID)
	}
	if second.Status != domain.ScheduleAvailable {
		t.Errorf("expected status available after mutation, got %q", second.Status)
	}
	if len(f.schedules.byID) != 1 {
		t.Errorf("expected 1 stored override, got %d", len(f.schedules.byID))
	}
}

func TestSetAvailability_PastDate(t *testing.T) {
	f := newScheduleFixture()

	_, err := f.svc.SetAvailability(context.Background(), ports.SetScheduleInput{
		ProviderID: "provider_1",
		Date:       time.Date(2026, time.September, 14, 14, 0, 0, 0, time.Local),
		Status:     domain.ScheduleAvailable,
	})
	if !errors.Is(err, domain.ErrPastDate) {
		t.Errorf("expected ErrPastDate, got %v", err)
	}
	if len(f.schedules.byID) != 0 {
		t.Error("rejected mutation must not persist anything")
	}
}

func TestSetAvailability_SlotHasAppointment(t *testing.T) {
	f := newScheduleFixture()

	_, _ = f.appointments.Create(context.Background(), ports.CreateAppointmentData{
		UserID:     "client_1",
		ProviderID: "provider_1",
		Date:       futureSlot(14),
		Status:     domain.StatusAccepted,
	})

	_, err := f.svc.SetAvailability(context.Background(), ports.SetScheduleInput{
		ProviderID: "provider_1",
		Date:       futureSlot(14),
		Status:     domain.ScheduleUnavailable,
	})
	if !errors.Is(err, domain.ErrSlotHasAppointment) {
		t.Errorf("expected ErrSlotHasAppointment, got %v", err)
	}
	if len(f.schedules.byID) != 0 {
		t.Error("rejected mutation must not create an override")
	}
}

func TestSetAvailability_BookedSlotCanStillBeMarkedAvailable(t *testing.T) {
	f := newScheduleFixture()

	_, _ = f.appointments.Create(context.Background(), ports.CreateAppointmentData{
		UserID:     "client_1",
		ProviderID: "provider_1",
		Date:       futureSlot(14),
		Status:     domain.StatusPending,
	})

	// marking a booked slot available is redundant but allowed
	_, err := f.svc.SetAvailability(context.Background(), ports.SetScheduleInput{
		ProviderID: "provider_1",
		Date:       futureSlot(14),
		Status:     domain.ScheduleAvailable,
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSetAvailability_TruncationUsesSlotStart(t *testing.T) {
	f := newScheduleFixture()

	in := ports.SetScheduleInput{
		ProviderID: "provider_1",
		Date:       futureSlot(14).Add(59 * time.Minute),
		Status:     domain.ScheduleUnavailable,
	}
	got, err := f.svc.SetAvailability(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Date.Equal(timeslot.StartOfHour(in.Date)) {
		t.Errorf("expected truncated date %v, got %v", timeslot.StartOfHour(in.Date), got.Date)
	}
}
