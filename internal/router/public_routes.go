package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
)

// RegisterPublic registers the guest browsing endpoints.  No JWT is
// required; diners can inspect restaurants, tables and availability
// before creating an account.  The cache middleware is applied here
// because these are the read-heavy routes.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cu *handler.CustomerHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)
	g.GET("/restaurants", p.ListRestaurants)
	g.GET("/restaurants/:id", p.GetRestaurant)
	g.GET("/restaurants/:id/tables", p.ListTables)
	// Availability is public so guests can check a date before
	// registering.  The short cache TTL keeps it close to live.
	g.GET("/restaurants/:id/available-times", cu.AvailableTimes)
}
