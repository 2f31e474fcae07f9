package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RequireRole enforces that the authenticated user has one of the
// given roles.  The role set is the closed pair client/manager and
// route groups name their roles explicitly; restaurant management is
// manager-only while booking routes accept both, since the engine
// rejects managers booking their own venue.  Assumes JWTAuth already
// stored the "role" claim in the context.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
