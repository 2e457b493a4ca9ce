package handler

import (
	"time"

	"github.com/mindline/booking-api/internal/core/domain"
)

// --- Request / Response types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=client psychologist"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type createBookingRequest struct {
	ProviderID string    `json:"provider_id" validate:"required"`
	Date       time.Time `json:"date"        validate:"required"`
}

type setScheduleRequest struct {
	Date   time.Time `json:"date"   validate:"required"`
	Status string    `json:"status" validate:"required,oneof=available unavailable"`
}
