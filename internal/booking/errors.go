// Package booking implements the reservation scheduling engine: slot
// discretization of restaurant working hours, availability queries,
// best-fit table allocation and the reservation lifecycle.  The engine
// is an in-memory, concurrency-safe core; it performs no I/O and
// expects the surrounding layer to persist and replay its state.
package booking

import "errors"

// Sentinel failures returned by engine operations.  Handlers compare
// them with errors.Is and translate each into an HTTP status; the
// engine itself never panics on bad input.
var (
	ErrRestaurantNotFound           = errors.New("restaurant not found")
	ErrTableNotFound                = errors.New("table not found")
	ErrUserNotFound                 = errors.New("user not found")
	ErrUserNotManager               = errors.New("user is not a manager")
	ErrInvalidManagerRestaurant     = errors.New("manager does not manage this restaurant")
	ErrManagerReservationNotAllowed = errors.New("manager cannot reserve a table in own restaurant")
	ErrBadPeopleNumber              = errors.New("invalid number of people")
	ErrDateTimeInThePast            = errors.New("date time is in the past")
	ErrReservationNotInOpenTimes    = errors.New("reservation time is outside open times")
	ErrReservationNotFound          = errors.New("reservation not found")
	ErrReservationCannotBeCancelled = errors.New("reservation cannot be cancelled")
	ErrUserNoAccess                 = errors.New("user has no access to this reservation")
)
