package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RegisterManager registers manager-scoped endpoints under
// /v1/manager.  All routes require a valid JWT and the manager role;
// per-restaurant ownership is checked in the handlers and the engine.
func RegisterManager(e *echo.Echo, m *handler.ManagerHandler, jwtSecret string) {
	g := e.Group(
		"/v1/manager",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleManager),
	)
	g.POST("/restaurants", m.CreateRestaurant)
	g.GET("/restaurants", m.MyRestaurants)
	g.POST("/restaurants/:id/tables", m.AddTable)
	g.GET("/restaurants/:id/tables/:number/reservations", m.TableReservations)
}
