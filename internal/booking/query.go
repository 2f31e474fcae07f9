package booking

import (
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// TableReservations lists the reservations placed on one table,
// active and cancelled, ascending by reservation time.  Only the
// manager of the owning restaurant may call it.  A nil date returns
// the full history; otherwise the list is filtered to the given
// calendar day.
//
// Failures, first applicable wins: ErrUserNotManager (acting user is
// unknown or not a manager), ErrRestaurantNotFound,
// ErrInvalidManagerRestaurant (acting user manages a different
// restaurant), ErrTableNotFound.
func (e *Engine) TableReservations(restaurantID uint64, tableNumber int, date *time.Time, actingUserID uint64) ([]model.Reservation, error) {
	user, ok := e.User(actingUserID)
	if !ok || user.Role != model.RoleManager {
		return nil, ErrUserNotManager
	}
	rs, ok := e.reg.get(restaurantID)
	if !ok {
		return nil, ErrRestaurantNotFound
	}
	if rs.info.ManagerID != user.ID {
		return nil, ErrInvalidManagerRestaurant
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if !rs.hasTable(tableNumber) {
		return nil, ErrTableNotFound
	}
	return rs.tableReservations(tableNumber, date), nil
}

// UserReservations returns the user's reservations in the order they
// were placed, cancelled ones included.
func (e *Engine) UserReservations(userID uint64) ([]model.Reservation, error) {
	if _, ok := e.User(userID); !ok {
		return nil, ErrUserNotFound
	}
	return e.led.ofUser(userID), nil
}
