package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindline/booking-api/internal/api/metrics"
	"github.com/mindline/booking-api/internal/core/domain"
	"github.com/mindline/booking-api/internal/core/ports"
	"github.com/mindline/booking-api/internal/core/timeslot"
)

type scheduleService struct {
	appointments ports.AppointmentRepository
	schedules    ports.ScheduleRepository
	cache        ports.ScheduleCache
	log          zerolog.Logger
	now          func() time.Time
}

// NewScheduleService returns a ScheduleService implementation. cache may
// be nil, in which case day views are recomputed on every call.
func NewScheduleService(
	appointments ports.AppointmentRepository,
	schedules ports.ScheduleRepository,
	cache ports.ScheduleCache,
	log zerolog.Logger,
) ports.ScheduleService {
	return &scheduleService{
		appointments: appointments,
		schedules:    schedules,
		cache:        cache,
		log:          log,
		now:          time.Now,
	}
}

// DaySchedule renders the hour-by-hour view of one provider day. Hours
// outside the effective availability are omitted; an hour is available
// when it has no appointment and still lies in the future.
func (s *scheduleService) DaySchedule(ctx context.Context, in ports.DayScheduleInput) ([]ports.DaySlot, error) {
	if s.cache != nil {
		if slots, ok := s.cache.GetDaySchedule(ctx, in.ProviderID, in.Year, in.Month, in.Day); ok {
			metrics.DayScheduleQueriesTotal.WithLabelValues("hit").Inc()
			return slots, nil
		}
		metrics.DayScheduleQueriesTotal.WithLabelValues("miss").Inc()
	}

	appointments, err := s.appointments.FindAllInDay(ctx, in.ProviderID, in.Year, in.Month, in.Day)
	if err != nil {
		return nil, fmt.Errorf("day schedule: %w", err)
	}

	overrides, err := s.schedules.FindAllInDay(ctx, in.ProviderID, in.Year, in.Month, in.Day)
	if err != nil {
		return nil, fmt.Errorf("day schedule: %w", err)
	}

	now := s.now()
	slots := make([]ports.DaySlot, 0, defaultLastHour-defaultFirstHour+1)
	for _, hour := range sortedHours(effectiveHours(overrides)) {
		appointment := appointmentAtHour(appointments, hour)
		slotTime := timeslot.At(in.Year, in.Month, in.Day, hour)

		slots = append(slots, ports.DaySlot{
			Hour:        hour,
			Available:   appointment == nil && slotTime.After(now),
			Appointment: appointment,
		})
	}

	if s.cache != nil {
		s.cache.SetDaySchedule(ctx, in.ProviderID, in.Year, in.Month, in.Day, slots)
	}

	return slots, nil
}

// MonthAvailability renders the day-by-day view of one provider month.
// A day is available while its end has not passed and fewer appointments
// exist than effective hours. This is a capacity count, not an hour
// match: a day can read available even when the only free hours are in
// the past. Callers drill into DaySchedule for the exact picture.
func (s *scheduleService) MonthAvailability(ctx context.Context, in ports.MonthAvailabilityInput) ([]ports.MonthDay, error) {
	appointments, err := s.appointments.FindAllInMonth(ctx, in.ProviderID, in.Year, in.Month)
	if err != nil {
		return nil, fmt.Errorf("month availability: %w", err)
	}

	overrides, err := s.schedules.FindAllInMonth(ctx, in.ProviderID, in.Year, in.Month)
	if err != nil {
		return nil, fmt.Errorf("month availability: %w", err)
	}

	now := s.now()
	daysInMonth := timeslot.DaysInMonth(in.Year, in.Month)
	days := make([]ports.MonthDay, 0, daysInMonth)

	for day := 1; day <= daysInMonth; day++ {
		booked := 0
		for _, a := range appointments {
			if a.Date.Day() == day {
				booked++
			}
		}

		var dayOverrides []domain.ScheduleOverride
		for _, o := range overrides {
			if o.Date.Day() == day {
				dayOverrides = append(dayOverrides, o)
			}
		}

		hours := effectiveHours(dayOverrides)
		days = append(days, ports.MonthDay{
			Day:       day,
			Available: timeslot.EndOfDay(in.Year, in.Month, day).After(now) && booked < len(hours),
		})
	}

	return days, nil
}

// SetAvailability upserts the provider's explicit override for one hour
// slot. Closing a slot that already has an appointment is rejected.
func (s *scheduleService) SetAvailability(ctx context.Context, in ports.SetScheduleInput) (*domain.ScheduleOverride, error) {
	date := timeslot.StartOfHour(in.Date)

	if !date.After(s.now()) {
		return nil, domain.ErrPastDate
	}

	appointment, err := s.appointments.FindByDate(ctx, date, in.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("set availability: %w", err)
	}
	if appointment != nil && in.Status == domain.ScheduleUnavailable {
		return nil, domain.ErrSlotHasAppointment
	}

	existing, err := s.schedules.FindByDate(ctx, date, in.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("set availability: %w", err)
	}

	if existing != nil {
		existing.Status = in.Status
		saved, err := s.schedules.Save(ctx, existing)
		if err != nil {
			return nil, fmt.Errorf("set availability: %w", err)
		}
		return saved, nil
	}

	created, err := s.schedules.Create(ctx, ports.CreateScheduleData{
		ProviderID: in.ProviderID,
		Date:       date,
		Status:     in.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("set availability: %w", err)
	}

	s.log.Info().
		Str("provider_id", in.ProviderID).
		Time("date", date).
		Str("status", string(in.Status)).
		Msg("schedule override created")

	return created, nil
}

// appointmentAtHour returns the appointment occupying the given hour, if
// any. The slot exclusivity invariant guarantees at most one match.
func appointmentAtHour(appointments []domain.Appointment, hour int) *domain.Appointment {
	for i := range appointments {
		if appointments[i].Date.Hour() == hour {
			return &appointments[i]
		}
	}
	return nil
}
