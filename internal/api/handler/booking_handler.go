package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindline/booking-api/internal/core/ports"
)

// BookingHandler handles HTTP requests for the appointment lifecycle.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create books an hour slot with a provider. The authenticated user is
// the client; the slot date is truncated to the top of the hour.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Slot to book"
// @Success      201   {object}  domain.Appointment
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/appointments [post]
func (h *BookingHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appointment, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		UserID:     userID,
		ProviderID: req.ProviderID,
		Date:       req.Date,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, appointment)
}

// Accept transitions one of the provider's pending appointments to
// accepted. Accepting twice is a no-op.
//
// @Summary      Accept an appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Appointment id"
// @Success      200 {object}  domain.Appointment
// @Failure      403 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /v1/appointments/{id}/accept [post]
func (h *BookingHandler) Accept(c echo.Context) error {
	providerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	appointment, err := h.service.Accept(c.Request().Context(), ports.AcceptBookingInput{
		AppointmentID: c.Param("id"),
		ProviderID:    providerID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, appointment)
}
