package booking

import (
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// AvailableTimes computes the bookable slots of a restaurant on the
// given calendar date for a party of the given size.  Returned values
// are full timestamps in ascending order so a caller can pass one
// straight to Reserve; slots of an overnight window that wrap past
// midnight land on the following day.  An empty result is a valid
// answer, not a failure.
//
// Failures, first applicable wins: ErrRestaurantNotFound when the
// restaurant is unknown, ErrBadPeopleNumber when people is not
// positive or no table could ever seat the party,
// ErrDateTimeInThePast when date lies strictly before today.
func (e *Engine) AvailableTimes(restaurantID uint64, people int, date time.Time) ([]time.Time, error) {
	rs, ok := e.reg.get(restaurantID)
	if !ok {
		return nil, ErrRestaurantNotFound
	}
	now := e.now()

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if people <= 0 || people > rs.maxSeats() {
		return nil, ErrBadPeopleNumber
	}
	if dayStart(date).Before(dayStart(now.In(date.Location()))) {
		return nil, ErrDateTimeInThePast
	}

	var free []time.Time
	for _, off := range SlotOffsets(rs.info.Opens, rs.info.Closes) {
		slot := SlotTime(date, off)
		if !WithinLeadTime(slot, now) {
			continue
		}
		if e.anyTableFree(rs, people, slot) {
			free = append(free, slot)
		}
	}
	return free, nil
}

// anyTableFree reports whether at least one table seating the party
// is free at slot.  Caller must hold rs.mu.
func (e *Engine) anyTableFree(rs *restaurantState, people int, slot time.Time) bool {
	for _, t := range rs.tables {
		if t.Seats >= people && rs.freeAt(t.Number, slot) {
			return true
		}
	}
	return false
}

// LargestTable returns the highest-capacity table of a restaurant.
// The transport layer uses it to surface the maximum party size.
func (e *Engine) LargestTable(restaurantID uint64) (model.Table, error) {
	rs, ok := e.reg.get(restaurantID)
	if !ok {
		return model.Table{}, ErrRestaurantNotFound
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	var best model.Table
	for _, t := range rs.tables {
		if t.Seats > best.Seats {
			best = t
		}
	}
	if best.Number == 0 {
		return model.Table{}, ErrTableNotFound
	}
	return best, nil
}
