package booking

import (
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// registry owns the set of restaurants and their tables together with
// each table's chronological reservation index.  The per-table lists
// hold pointers into the ledger; the ledger remains the single owner
// of reservation records and the table lists never diverge from it.
type registry struct {
	mu    sync.RWMutex
	byID  map[uint64]*restaurantState
	order []uint64 // creation order, for stable listing
}

// restaurantState bundles one restaurant with its tables and the
// mutex that serializes check-then-reserve sequences on it.  All
// reads and writes of tables and byTable happen with mu held.
type restaurantState struct {
	mu      sync.Mutex
	info    model.Restaurant
	tables  []model.Table                // ascending table number
	byTable map[int][]*model.Reservation // chronological by reservation time
}

func newRegistry() *registry {
	return &registry{byID: make(map[uint64]*restaurantState)}
}

// add registers a restaurant.  Input validation happens in the
// engine; re-adding an already known id is a no-op so state replay at
// boot stays idempotent.
func (r *registry) add(info model.Restaurant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[info.ID]; ok {
		return
	}
	r.byID[info.ID] = &restaurantState{
		info:    info,
		byTable: make(map[int][]*model.Reservation),
	}
	r.order = append(r.order, info.ID)
}

// addTable appends a table with the next free number and returns it.
func (r *registry) addTable(restaurantID uint64, seats int, now time.Time) (model.Table, error) {
	rs, ok := r.get(restaurantID)
	if !ok {
		return model.Table{}, ErrRestaurantNotFound
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	t := model.Table{
		RestaurantID: restaurantID,
		Number:       len(rs.tables) + 1,
		Seats:        seats,
		CreatedAt:    now,
	}
	rs.tables = append(rs.tables, t)
	return t, nil
}

// restoreTable re-registers a persisted table under its original
// number.  Tables arrive in number order when replayed from storage.
func (r *registry) restoreTable(t model.Table) error {
	rs, ok := r.get(t.RestaurantID)
	if !ok {
		return ErrRestaurantNotFound
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.tables = append(rs.tables, t)
	sort.Slice(rs.tables, func(i, j int) bool { return rs.tables[i].Number < rs.tables[j].Number })
	return nil
}

func (r *registry) get(id uint64) (*restaurantState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rs, ok := r.byID[id]
	return rs, ok
}

// list returns restaurants in creation order.
func (r *registry) list() []model.Restaurant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Restaurant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].info)
	}
	return out
}

// tablesOf returns a copy of the restaurant's tables, ascending by
// table number.
func (rs *restaurantState) tablesOf() []model.Table {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]model.Table, len(rs.tables))
	copy(out, rs.tables)
	return out
}

// maxSeats returns the largest table capacity, 0 when no tables
// exist.  Caller must hold rs.mu.
func (rs *restaurantState) maxSeats() int {
	max := 0
	for _, t := range rs.tables {
		if t.Seats > max {
			max = t.Seats
		}
	}
	return max
}

// freeAt reports whether the table has no active reservation at
// exactly ts.  A reservation occupies only its own slot; seatings are
// fixed-length so no interval overlap is considered.  Caller must
// hold rs.mu.
func (rs *restaurantState) freeAt(tableNumber int, ts time.Time) bool {
	for _, res := range rs.byTable[tableNumber] {
		if res.Active() && res.Time.Equal(ts) {
			return false
		}
	}
	return true
}

// candidate selects the free table with the smallest sufficient
// capacity at ts, ties broken by ascending table number, so large
// tables stay available for large parties.  Caller must hold rs.mu.
func (rs *restaurantState) candidate(people int, ts time.Time) (model.Table, bool) {
	var best model.Table
	found := false
	for _, t := range rs.tables {
		if t.Seats < people {
			continue
		}
		if found && t.Seats >= best.Seats {
			continue
		}
		if rs.freeAt(t.Number, ts) {
			best = t
			found = true
		}
	}
	return best, found
}

// attach inserts the reservation into the table's chronological
// index, ordered by reservation time.  Caller must hold rs.mu.
func (rs *restaurantState) attach(res *model.Reservation) {
	list := rs.byTable[res.TableNumber]
	i := sort.Search(len(list), func(i int) bool { return list[i].Time.After(res.Time) })
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = res
	rs.byTable[res.TableNumber] = list
}

// tableReservations returns copies of the table's reservations,
// active and cancelled, ascending by reservation time.  When date is
// non-nil only reservations on that calendar day are returned.
// Caller must hold rs.mu.
func (rs *restaurantState) tableReservations(tableNumber int, date *time.Time) []model.Reservation {
	list := rs.byTable[tableNumber]
	out := make([]model.Reservation, 0, len(list))
	for _, res := range list {
		if date != nil && !sameDay(*date, res.Time) {
			continue
		}
		out = append(out, *res)
	}
	return out
}

// hasTable reports whether the restaurant has a table with the given
// number.  Caller must hold rs.mu.
func (rs *restaurantState) hasTable(number int) bool {
	for _, t := range rs.tables {
		if t.Number == number {
			return true
		}
	}
	return false
}
