package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mindline/booking-api/internal/core/domain"
	"github.com/mindline/booking-api/internal/core/ports"
)

type stubBookingService struct {
	createFn func(ctx context.Context, input ports.CreateBookingInput) (*domain.Appointment, error)
	acceptFn func(ctx context.Context, input ports.AcceptBookingInput) (*domain.Appointment, error)
}

func (s *stubBookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Appointment, error) {
	return s.createFn(ctx, input)
}

func (s *stubBookingService) Accept(ctx context.Context, input ports.AcceptBookingInput) (*domain.Appointment, error) {
	return s.acceptFn(ctx, input)
}

func TestBookingHandler_Create_Success(t *testing.T) {
	slot := time.Date(2026, time.September, 16, 14, 0, 0, 0, time.UTC)
	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (*domain.Appointment, error) {
			if input.UserID != "client_1" || input.ProviderID != "provider_1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Appointment{
				ID:         "apt_1",
				UserID:     input.UserID,
				ProviderID: input.ProviderID,
				Date:       slot,
				Status:     domain.StatusPending,
			}, nil
		},
	}
	h := NewBookingHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/appointments",
		`{"provider_id":"provider_1","date":"2026-09-16T14:00:00Z"}`)
	c.Set("user_id", "client_1")
	c.Set("role", "client")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "pending" {
		t.Fatalf("expected pending appointment, got %+v", resp)
	}
}

func TestBookingHandler_Create_MissingClaims(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (*domain.Appointment, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewBookingHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/appointments",
		`{"provider_id":"provider_1","date":"2026-09-16T14:00:00Z"}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestBookingHandler_Create_SlotTaken(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (*domain.Appointment, error) {
			return nil, domain.ErrSlotTaken
		},
	}
	h := NewBookingHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/appointments",
		`{"provider_id":"provider_1","date":"2026-09-16T14:00:00Z"}`)
	c.Set("user_id", "client_1")
	c.Set("role", "client")

	err := h.Create(c)
	if !errors.Is(err, domain.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestBookingHandler_Create_MissingDate(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (*domain.Appointment, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewBookingHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/appointments", `{"provider_id":"provider_1"}`)
	c.Set("user_id", "client_1")
	c.Set("role", "client")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestBookingHandler_Accept_Success(t *testing.T) {
	stub := &stubBookingService{
		acceptFn: func(ctx context.Context, input ports.AcceptBookingInput) (*domain.Appointment, error) {
			if input.AppointmentID != "apt_1" || input.ProviderID != "provider_1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Appointment{ID: "apt_1", Status: domain.StatusAccepted}, nil
		},
	}
	h := NewBookingHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/appointments/apt_1/accept", "")
	c.Set("user_id", "provider_1")
	c.Set("role", "psychologist")
	c.SetParamNames("id")
	c.SetParamValues("apt_1")

	if err := h.Accept(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "accepted" {
		t.Fatalf("expected accepted appointment, got %+v", resp)
	}
}

func TestBookingHandler_Accept_NotOwner(t *testing.T) {
	stub := &stubBookingService{
		acceptFn: func(ctx context.Context, input ports.AcceptBookingInput) (*domain.Appointment, error) {
			return nil, domain.ErrNotOwner
		},
	}
	h := NewBookingHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/appointments/apt_1/accept", "")
	c.Set("user_id", "provider_2")
	c.Set("role", "psychologist")
	c.SetParamNames("id")
	c.SetParamValues("apt_1")

	err := h.Accept(c)
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}
