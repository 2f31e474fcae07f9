package booking

import (
	"sync"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Engine wires the slot policy, the table registry and the
// reservation ledger into the six reservation operations.  All
// methods are safe for concurrent use.  The acting user is always an
// explicit parameter; the engine holds no ambient session state.
type Engine struct {
	now func() time.Time

	reg *registry
	led *ledger

	userMu sync.RWMutex
	users  map[uint64]model.User
}

// New returns an empty engine using the wall clock.
func New() *Engine { return NewWithClock(time.Now) }

// NewWithClock returns an empty engine reading the current time from
// now.  Tests inject a fixed clock here.
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{
		now:   now,
		reg:   newRegistry(),
		led:   newLedger(),
		users: make(map[uint64]model.User),
	}
}

// AddUser registers or refreshes a user in the engine's directory.
// The directory backs role checks and reservation ownership; the
// durable user store lives outside the engine.
func (e *Engine) AddUser(u model.User) error {
	if u.ID == 0 || !u.Role.Valid() {
		return ErrUserNotFound
	}
	e.userMu.Lock()
	e.users[u.ID] = u
	e.userMu.Unlock()
	return nil
}

// User looks up a user by id.
func (e *Engine) User(id uint64) (model.User, bool) {
	e.userMu.RLock()
	defer e.userMu.RUnlock()
	u, ok := e.users[id]
	return u, ok
}

// AddRestaurant registers a restaurant.  The manager must be a known
// manager user and the working hours must not be degenerate.
func (e *Engine) AddRestaurant(r model.Restaurant) error {
	if r.ID == 0 {
		return ErrRestaurantNotFound
	}
	mgr, ok := e.User(r.ManagerID)
	if !ok {
		return ErrUserNotFound
	}
	if mgr.Role != model.RoleManager {
		return ErrUserNotManager
	}
	if r.Opens == r.Closes {
		return ErrReservationNotInOpenTimes
	}
	e.reg.add(r)
	return nil
}

// Restaurant returns the restaurant with the given id.
func (e *Engine) Restaurant(id uint64) (model.Restaurant, error) {
	rs, ok := e.reg.get(id)
	if !ok {
		return model.Restaurant{}, ErrRestaurantNotFound
	}
	return rs.info, nil
}

// Restaurants lists all restaurants in creation order.
func (e *Engine) Restaurants() []model.Restaurant { return e.reg.list() }

// AddTable creates a table with the next number in the restaurant.
func (e *Engine) AddTable(restaurantID uint64, seats int) (model.Table, error) {
	if seats <= 0 {
		return model.Table{}, ErrBadPeopleNumber
	}
	return e.reg.addTable(restaurantID, seats, e.now())
}

// TablesOf lists the restaurant's tables ascending by table number.
func (e *Engine) TablesOf(restaurantID uint64) ([]model.Table, error) {
	rs, ok := e.reg.get(restaurantID)
	if !ok {
		return nil, ErrRestaurantNotFound
	}
	return rs.tablesOf(), nil
}

// RestoreTable replays a persisted table into the registry.
func (e *Engine) RestoreTable(t model.Table) error {
	return e.reg.restoreTable(t)
}

// RestoreReservation replays a persisted reservation into the ledger
// and the owning table's index.  Used at boot to rebuild the in-
// memory state from the durable store; no validation beyond
// structural lookups is applied, since the record was valid when it
// was first committed.
func (e *Engine) RestoreReservation(res model.Reservation) error {
	rs, ok := e.reg.get(res.RestaurantID)
	if !ok {
		return ErrRestaurantNotFound
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if !rs.hasTable(res.TableNumber) {
		return ErrTableNotFound
	}
	rs.attach(e.led.restore(res))
	return nil
}
