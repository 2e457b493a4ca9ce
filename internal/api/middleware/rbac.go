package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindline/booking-api/internal/core/domain"
)

// RequireRole rejects requests whose authenticated role is not one of
// the allowed ones. This is the transport-level sibling of the role
// checks inside the booking service.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[string(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
