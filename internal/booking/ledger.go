package booking

import (
	"sync"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ledger is the single authoritative store of reservations.  It
// issues the monotonic reservation ids and keeps the per-user index;
// the per-table indexes in the registry hold pointers into this
// store, never copies.
type ledger struct {
	mu     sync.Mutex
	nextID uint64
	byID   map[uint64]*model.Reservation
	byUser map[uint64][]uint64 // reservation ids in insertion order
}

func newLedger() *ledger {
	return &ledger{
		nextID: 1,
		byID:   make(map[uint64]*model.Reservation),
		byUser: make(map[uint64][]uint64),
	}
}

// create allocates the next reservation id and records a new active
// reservation under both the global store and the owner's index.  Ids
// are strictly increasing and never reused, also across cancellation.
func (l *ledger) create(userID, restaurantID uint64, tableNumber int, at, now time.Time) *model.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()
	res := &model.Reservation{
		ID:           l.nextID,
		UserID:       userID,
		RestaurantID: restaurantID,
		TableNumber:  tableNumber,
		Time:         at,
		Status:       model.ReservationActive,
		CreatedAt:    now,
	}
	l.nextID++
	l.byID[res.ID] = res
	l.byUser[userID] = append(l.byUser[userID], res.ID)
	return res
}

// restore replays a persisted reservation, keeping the id counter
// ahead of every id ever issued.
func (l *ledger) restore(res model.Reservation) *model.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.byID[res.ID]; ok {
		return existing
	}
	r := res
	l.byID[r.ID] = &r
	l.byUser[r.UserID] = append(l.byUser[r.UserID], r.ID)
	if r.ID >= l.nextID {
		l.nextID = r.ID + 1
	}
	return &r
}

func (l *ledger) get(id uint64) (*model.Reservation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	res, ok := l.byID[id]
	return res, ok
}

// markCancelled flips the reservation to cancelled.  The transition
// is terminal; callers validate state and ownership first.
func (l *ledger) markCancelled(res *model.Reservation) {
	l.mu.Lock()
	defer l.mu.Unlock()
	res.Status = model.ReservationCancelled
}

// ofUser returns copies of the user's reservations in the order they
// were placed, cancelled ones included.
func (l *ledger) ofUser(userID uint64) []model.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := l.byUser[userID]
	out := make([]model.Reservation, 0, len(ids))
	for _, id := range ids {
		out = append(out, *l.byID[id])
	}
	return out
}
