package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// ManagerHandler groups dependencies for restaurant owners.  All
// routes behind it require the manager role; handlers still pass the
// acting user to the engine, which enforces ownership per restaurant.
type ManagerHandler struct {
	Engine      *booking.Engine
	Restaurants *repository.RestaurantRepo
	Tables      *repository.TableRepo
}

func NewManagerHandler(eng *booking.Engine, rr *repository.RestaurantRepo, tr *repository.TableRepo) *ManagerHandler {
	if eng == nil || rr == nil || tr == nil {
		panic("nil dependency passed to NewManagerHandler")
	}
	return &ManagerHandler{Engine: eng, Restaurants: rr, Tables: tr}
}

type createRestaurantReq struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	ImageLink   string `json:"image_link"`
	Opens       string `json:"opens"`  // "HH:MM"
	Closes      string `json:"closes"` // "HH:MM"
	Address     struct {
		Country string `json:"country"`
		City    string `json:"city"`
		Street  string `json:"street"`
	} `json:"address"`
}

type restaurantResp struct {
	ID          uint64 `json:"id"`
	ManagerID   uint64 `json:"manager_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	ImageLink   string `json:"image_link,omitempty"`
	Opens       string `json:"opens"`
	Closes      string `json:"closes"`
	Address     struct {
		Country string `json:"country"`
		City    string `json:"city"`
		Street  string `json:"street"`
	} `json:"address"`
}

func toRestaurantResp(r model.Restaurant) restaurantResp {
	out := restaurantResp{
		ID:          r.ID,
		ManagerID:   r.ManagerID,
		Name:        r.Name,
		Type:        r.Type,
		Description: r.Description,
		ImageLink:   r.ImageLink,
		Opens:       clockString(r.Opens),
		Closes:      clockString(r.Closes),
	}
	out.Address.Country = r.Address.Country
	out.Address.City = r.Address.City
	out.Address.Street = r.Address.Street
	return out
}

// clockString renders a time-of-day offset as "HH:MM".
func clockString(d time.Duration) string {
	d = d % (24 * time.Hour)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// parseClockParam parses "HH:MM" into an offset from midnight.
func parseClockParam(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// CreateRestaurant handles POST /v1/manager/restaurants.  The row is
// written to MySQL first so the database assigns the id, then the
// engine registers it for booking.
func (h *ManagerHandler) CreateRestaurant(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createRestaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	opens, err := parseClockParam(req.Opens)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "opens must be HH:MM"})
	}
	closes, err := parseClockParam(req.Closes)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "closes must be HH:MM"})
	}
	if opens == closes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "opens and closes must differ"})
	}

	rest := model.Restaurant{
		ManagerID:   managerID,
		Name:        req.Name,
		Type:        strings.TrimSpace(req.Type),
		Description: strings.TrimSpace(req.Description),
		ImageLink:   strings.TrimSpace(req.ImageLink),
		Opens:       opens,
		Closes:      closes,
		Address: model.Address{
			Country: req.Address.Country,
			City:    req.Address.City,
			Street:  req.Address.Street,
		},
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Restaurants.Create(ctx, &rest); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create restaurant failed"})
	}
	if err := h.Engine.AddRestaurant(rest); err != nil {
		return c.JSON(bookingStatus(err), echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, toRestaurantResp(rest))
}

// MyRestaurants handles GET /v1/manager/restaurants and lists the
// venues owned by the authenticated manager.
func (h *ManagerHandler) MyRestaurants(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	out := []restaurantResp{}
	for _, r := range h.Engine.Restaurants() {
		if r.ManagerID == managerID {
			out = append(out, toRestaurantResp(r))
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"restaurants": out})
}

type addTableReq struct {
	Seats int `json:"seats"`
}

// AddTable handles POST /v1/manager/restaurants/:id/tables.  The
// engine assigns the next table number; persistence follows after the
// engine has committed.
func (h *ManagerHandler) AddTable(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	rest, err := h.Engine.Restaurant(restaurantID)
	if err != nil {
		return c.JSON(bookingStatus(err), echo.Map{"error": err.Error()})
	}
	if rest.ManagerID != managerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": booking.ErrInvalidManagerRestaurant.Error()})
	}
	var req addTableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	tbl, err := h.Engine.AddTable(restaurantID, req.Seats)
	if err != nil {
		return c.JSON(bookingStatus(err), echo.Map{"error": err.Error()})
	}

	// Durability is write-behind: the table already exists in memory,
	// so a slow database cannot block the response.  Echo contexts are
	// pooled, so the logger is captured before the handler returns.
	logger := c.Echo().Logger
	go func(t model.Table) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Tables.Create(ctx, t); err != nil {
			logger.Errorf("persist table %d/%d failed: %v", t.RestaurantID, t.Number, err)
		}
	}(tbl)

	return c.JSON(http.StatusCreated, echo.Map{
		"restaurant_id": tbl.RestaurantID,
		"number":        tbl.Number,
		"seats":         tbl.Seats,
	})
}

// TableReservations handles
// GET /v1/manager/restaurants/:id/tables/:number/reservations?date=YYYY-MM-DD.
// It returns the table's booking history, active and cancelled alike,
// optionally narrowed to one day.
func (h *ManagerHandler) TableReservations(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	tableNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil || tableNumber <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table number"})
	}

	var date *time.Time
	if raw := c.QueryParam("date"); raw != "" {
		d, err := parseDateParam(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		date = &d
	}

	list, err := h.Engine.TableReservations(restaurantID, tableNumber, date, managerID)
	if err != nil {
		return c.JSON(bookingStatus(err), echo.Map{"error": err.Error()})
	}
	out := make([]reservationResp, 0, len(list))
	for _, r := range list {
		out = append(out, toReservationResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}
