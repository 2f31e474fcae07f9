package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
)

// PublicHandler serves unauthenticated browsing endpoints.  Responses
// come straight from the engine's in-memory state, so these routes are
// cheap enough to sit behind the short-TTL Redis cache.
type PublicHandler struct {
	Engine *booking.Engine
}

func NewPublicHandler(eng *booking.Engine) *PublicHandler {
	if eng == nil {
		panic("nil engine passed to NewPublicHandler")
	}
	return &PublicHandler{Engine: eng}
}

// ListRestaurants handles GET /v1/restaurants.  Optional filters:
// ?name= substring match, ?type= exact cuisine, ?city= exact city.
func (h *PublicHandler) ListRestaurants(c echo.Context) error {
	name := strings.ToLower(strings.TrimSpace(c.QueryParam("name")))
	typ := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	city := strings.ToLower(strings.TrimSpace(c.QueryParam("city")))

	out := []restaurantResp{}
	for _, r := range h.Engine.Restaurants() {
		if name != "" && !strings.Contains(strings.ToLower(r.Name), name) {
			continue
		}
		if typ != "" && strings.ToLower(r.Type) != typ {
			continue
		}
		if city != "" && strings.ToLower(r.Address.City) != city {
			continue
		}
		out = append(out, toRestaurantResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"restaurants": out})
}

// GetRestaurant handles GET /v1/restaurants/:id.  The detail view adds
// the largest table capacity so clients can tell oversized parties
// apart from fully booked days before asking for availability.
func (h *PublicHandler) GetRestaurant(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	rest, err := h.Engine.Restaurant(id)
	if err != nil {
		return c.JSON(bookingStatus(err), echo.Map{"error": err.Error()})
	}

	maxSeats := 0
	if largest, err := h.Engine.LargestTable(id); err == nil {
		maxSeats = largest.Seats
	}
	return c.JSON(http.StatusOK, echo.Map{
		"restaurant": toRestaurantResp(rest),
		"max_seats":  maxSeats,
	})
}

// ListTables handles GET /v1/restaurants/:id/tables.
func (h *PublicHandler) ListTables(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	tables, err := h.Engine.TablesOf(id)
	if err != nil {
		return c.JSON(bookingStatus(err), echo.Map{"error": err.Error()})
	}
	type tableResp struct {
		Number int `json:"number"`
		Seats  int `json:"seats"`
	}
	out := make([]tableResp, 0, len(tables))
	for _, t := range tables {
		out = append(out, tableResp{Number: t.Number, Seats: t.Seats})
	}
	return c.JSON(http.StatusOK, echo.Map{"restaurant_id": id, "tables": out})
}
