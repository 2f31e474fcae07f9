// Package handler contains the Echo HTTP handlers.  Handlers bind and
// validate requests, call into the booking engine, and translate
// engine errors to HTTP statuses.  Durable writes and event publishes
// happen after the engine has committed, off the request path where
// possible.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
)

// getUserID extracts the authenticated user id stored by the JWT
// middleware and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// bookingStatus maps engine sentinel errors to HTTP status codes.
// Unknown-entity errors become 404, permission errors 403, everything
// else (validation, lifecycle, conflicts) 400.
func bookingStatus(err error) int {
	switch {
	case errors.Is(err, booking.ErrRestaurantNotFound),
		errors.Is(err, booking.ErrTableNotFound),
		errors.Is(err, booking.ErrUserNotFound),
		errors.Is(err, booking.ErrReservationNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrUserNoAccess),
		errors.Is(err, booking.ErrUserNotManager),
		errors.Is(err, booking.ErrInvalidManagerRestaurant),
		errors.Is(err, booking.ErrManagerReservationNotAllowed):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// parseDateParam parses a ?date=YYYY-MM-DD query value in UTC.
func parseDateParam(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
