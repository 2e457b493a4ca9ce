package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindline/booking-api/internal/api/metrics"
	"github.com/mindline/booking-api/internal/core/domain"
	"github.com/mindline/booking-api/internal/core/ports"
	"github.com/mindline/booking-api/internal/core/timeslot"
)

// Notifier abstracts the notification queue. Enqueue must not block the
// booking transaction.
type Notifier interface {
	Enqueue(n ports.NotificationInput)
}

type bookingService struct {
	appointments ports.AppointmentRepository
	schedules    ports.ScheduleRepository
	users        ports.UserRepository
	notifier     Notifier
	cache        ports.ScheduleCache
	log          zerolog.Logger
	now          func() time.Time
}

// NewBookingService returns a BookingService implementation. notifier
// and cache may be nil; both side channels are best-effort.
func NewBookingService(
	appointments ports.AppointmentRepository,
	schedules ports.ScheduleRepository,
	users ports.UserRepository,
	notifier Notifier,
	cache ports.ScheduleCache,
	log zerolog.Logger,
) ports.BookingService {
	return &bookingService{
		appointments: appointments,
		schedules:    schedules,
		users:        users,
		notifier:     notifier,
		cache:        cache,
		log:          log,
		now:          time.Now,
	}
}

// Create validates and books a pending appointment. Checks run in a
// fixed order and the first failure aborts with no writes.
func (s *bookingService) Create(ctx context.Context, in ports.CreateBookingInput) (*domain.Appointment, error) {
	date := timeslot.StartOfHour(in.Date)

	if !date.After(s.now()) {
		return nil, s.reject(domain.ErrPastDate)
	}

	if in.UserID == in.ProviderID {
		return nil, s.reject(domain.ErrSelfBooking)
	}

	provider, err := s.users.FindByID(ctx, in.ProviderID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if provider == nil || provider.Role != domain.RolePsychologist {
		return nil, s.reject(domain.ErrInvalidProvider)
	}

	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if user == nil || user.Role != domain.RoleClient {
		return nil, s.reject(domain.ErrInvalidClient)
	}

	override, err := s.schedules.FindByDate(ctx, date, in.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	open := isDefaultHour(date.Hour())
	if override != nil {
		open = override.Status == domain.ScheduleAvailable
	}
	if !open {
		return nil, s.reject(domain.ErrSlotUnavailable)
	}

	existing, err := s.appointments.FindByDate(ctx, date, in.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if existing != nil {
		return nil, s.reject(domain.ErrSlotTaken)
	}

	appointment, err := s.appointments.Create(ctx, ports.CreateAppointmentData{
		UserID:     in.UserID,
		ProviderID: in.ProviderID,
		Date:       date,
		Status:     domain.StatusPending,
	})
	if err != nil {
		// concurrent create for the same slot loses at the unique index
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, s.reject(domain.ErrSlotTaken)
		}
		s.log.Error().Err(err).Str("provider_id", in.ProviderID).Msg("failed to create appointment")
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.BookingsCreatedTotal.Inc()

	if s.notifier != nil {
		s.notifier.Enqueue(ports.NotificationInput{
			RecipientID: in.ProviderID,
			Content:     fmt.Sprintf("Novo agendamento para %s", date.Format("02/01/2006 às 15:04")),
		})
	}

	if s.cache != nil {
		if err := s.cache.InvalidateDay(ctx, in.ProviderID, date); err != nil {
			s.log.Warn().Err(err).Str("provider_id", in.ProviderID).Msg("failed to invalidate day schedule cache")
		}
	}

	s.log.Info().
		Str("appointment_id", appointment.ID).
		Str("provider_id", in.ProviderID).
		Str("user_id", in.UserID).
		Time("date", date).
		Msg("appointment created")

	return appointment, nil
}

// Accept transitions a pending appointment to accepted. Only the owning
// provider may accept; accepting twice returns the stored record with
// no second write.
func (s *bookingService) Accept(ctx context.Context, in ports.AcceptBookingInput) (*domain.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("accept booking: %w", err)
	}

	if appointment.ProviderID != in.ProviderID {
		return nil, domain.ErrNotOwner
	}

	if appointment.Status == domain.StatusAccepted {
		return appointment, nil
	}

	appointment.Status = domain.StatusAccepted
	saved, err := s.appointments.Save(ctx, appointment)
	if err != nil {
		return nil, fmt.Errorf("accept booking: %w", err)
	}

	s.log.Info().
		Str("appointment_id", saved.ID).
		Str("provider_id", in.ProviderID).
		Msg("appointment accepted")

	return saved, nil
}

// reject counts a business-rule rejection and passes the error through.
func (s *bookingService) reject(err error) error {
	metrics.BookingRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrPastDate):
		return "past_date"
	case errors.Is(err, domain.ErrSelfBooking):
		return "self_booking"
	case errors.Is(err, domain.ErrInvalidProvider):
		return "invalid_provider"
	case errors.Is(err, domain.ErrInvalidClient):
		return "invalid_client"
	case errors.Is(err, domain.ErrSlotUnavailable):
		return "slot_unavailable"
	case errors.Is(err, domain.ErrSlotTaken):
		return "slot_taken"
	default:
		return "other"
	}
}
