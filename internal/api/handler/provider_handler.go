package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mindline/booking-api/internal/core/domain"
	"github.com/mindline/booking-api/internal/core/ports"
)

// ProviderHandler handles HTTP requests for provider availability views
// and schedule overrides.
type ProviderHandler struct {
	service ports.ScheduleService
}

func NewProviderHandler(service ports.ScheduleService) *ProviderHandler {
	return &ProviderHandler{service: service}
}

// intQuery parses a required integer query parameter.
func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "missing query parameter: "+name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid query parameter: "+name)
	}
	return v, nil
}

func monthQuery(c echo.Context) (time.Month, error) {
	m, err := intQuery(c, "month")
	if err != nil {
		return 0, err
	}
	if m < 1 || m > 12 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "month must be between 1 and 12")
	}
	return time.Month(m), nil
}

// DaySchedule returns the hour-by-hour view of one provider day.
//
// @Summary      Provider day schedule
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Param        provider_id  path      string  true  "Provider id"
// @Param        year         query     int     true  "Calendar year"
// @Param        month        query     int     true  "Calendar month (1-12)"
// @Param        day          query     int     true  "Day of month"
// @Success      200          {array}   ports.DaySlot
// @Failure      400          {object}  map[string]string
// @Router       /v1/providers/{provider_id}/schedule/day [get]
func (h *ProviderHandler) DaySchedule(c echo.Context) error {
	year, err := intQuery(c, "year")
	if err != nil {
		return err
	}
	month, err := monthQuery(c)
	if err != nil {
		return err
	}
	day, err := intQuery(c, "day")
	if err != nil {
		return err
	}

	slots, err := h.service.DaySchedule(c.Request().Context(), ports.DayScheduleInput{
		ProviderID: c.Param("provider_id"),
		Year:       year,
		Month:      month,
		Day:        day,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, slots)
}

// MonthAvailability returns the per-day capacity view of one provider
// month.
//
// @Summary      Provider month availability
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Param        provider_id  path      string  true  "Provider id"
// @Param        year         query     int     true  "Calendar year"
// @Param        month        query     int     true  "Calendar month (1-12)"
// @Success      200          {array}   ports.MonthDay
// @Failure      400          {object}  map[string]string
// @Router       /v1/providers/{provider_id}/availability/month [get]
func (h *ProviderHandler) MonthAvailability(c echo.Context) error {
	year, err := intQuery(c, "year")
	if err != nil {
		return err
	}
	month, err := monthQuery(c)
	if err != nil {
		return err
	}

	days, err := h.service.MonthAvailability(c.Request().Context(), ports.MonthAvailabilityInput{
		ProviderID: c.Param("provider_id"),
		Year:       year,
		Month:      month,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, days)
}

// SetAvailability upserts the authenticated provider's override for one
// hour slot.
//
// @Summary      Set slot availability
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      setScheduleRequest  true  "Slot and desired status"
// @Success      200   {object}  domain.ScheduleOverride
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/me/schedule [put]
func (h *ProviderHandler) SetAvailability(c echo.Context) error {
	providerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req setScheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	override, err := h.service.SetAvailability(c.Request().Context(), ports.SetScheduleInput{
		ProviderID: providerID,
		Date:       req.Date,
		Status:     domain.ScheduleStatus(req.Status),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, override)
}
