package booking

import (
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Reserve books a table for the acting user.  The engine picks the
// table itself: the free table with the smallest capacity that still
// seats the party, ties broken by lowest table number.  The
// availability check and the commit run under the restaurant's mutex,
// so two concurrent calls for the same slot can never both claim the
// last qualifying table.  Either the whole allocation commits or
// nothing is recorded.
//
// Failures, first applicable wins: ErrRestaurantNotFound,
// ErrUserNotFound (unknown acting user),
// ErrManagerReservationNotAllowed (the acting user manages this
// restaurant), ErrBadPeopleNumber, ErrDateTimeInThePast (at is not
// strictly in the future), ErrReservationNotInOpenTimes (at does not
// land on a slot of the working hours), ErrTableNotFound (no
// qualifying table is free at the slot).
func (e *Engine) Reserve(restaurantID uint64, people int, at time.Time, actingUserID uint64) (model.Reservation, error) {
	rs, ok := e.reg.get(restaurantID)
	if !ok {
		return model.Reservation{}, ErrRestaurantNotFound
	}
	user, ok := e.User(actingUserID)
	if !ok {
		return model.Reservation{}, ErrUserNotFound
	}
	if user.Role == model.RoleManager && rs.info.ManagerID == user.ID {
		return model.Reservation{}, ErrManagerReservationNotAllowed
	}
	now := e.now()

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if people <= 0 || people > rs.maxSeats() {
		return model.Reservation{}, ErrBadPeopleNumber
	}
	if !WithinLeadTime(at, now) {
		return model.Reservation{}, ErrDateTimeInThePast
	}
	if !AlignsToSlot(rs.info.Opens, rs.info.Closes, at) {
		return model.Reservation{}, ErrReservationNotInOpenTimes
	}
	table, found := rs.candidate(people, at)
	if !found {
		return model.Reservation{}, ErrTableNotFound
	}

	// Commit: ledger first so the record is fully formed before the
	// table index can expose it, then attach while still holding the
	// restaurant mutex.
	res := e.led.create(user.ID, restaurantID, table.Number, at, now)
	rs.attach(res)
	return *res, nil
}

// Cancel flips the reservation to cancelled.  Only the owning user
// may cancel, the reservation must still be active, and its time must
// not have elapsed yet.  Cancellation serializes against Reserve on
// the same restaurant, so a slot freed here is immediately and safely
// bookable again.
//
// Failures, first applicable wins: ErrReservationNotFound,
// ErrUserNoAccess, ErrReservationCannotBeCancelled (already cancelled
// or past/ongoing).
func (e *Engine) Cancel(reservationID, actingUserID uint64) error {
	res, ok := e.led.get(reservationID)
	if !ok {
		return ErrReservationNotFound
	}
	if res.UserID != actingUserID {
		return ErrUserNoAccess
	}
	rs, ok := e.reg.get(res.RestaurantID)
	if !ok {
		return ErrReservationNotFound
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if !res.Active() || !res.Time.After(e.now()) {
		return ErrReservationCannotBeCancelled
	}
	e.led.markCancelled(res)
	return nil
}
