package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RegisterCustomer registers diner-scoped endpoints under /v1.  All
// routes require a valid JWT and the client role; managers book
// through their own accounts only at venues they do not manage, which
// the engine enforces.  The rate limiter guards the reservation write
// path against scripted bursts.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleClient, model.RoleManager),
	)
	g.POST("/restaurants/:id/reserve", h.Reserve, limit)
	g.DELETE("/reservations/:id", h.Cancel)
	g.GET("/my-reservations", h.MyReservations)
}
