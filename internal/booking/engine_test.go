package booking

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// fixture builds an engine with a controllable clock, one manager
// (id 1), two clients (ids 2, 3) and one restaurant (id 10, open
// 09:00-22:00) with tables 1..3 seating 2, 4 and 6.
func fixture(t *testing.T) (*Engine, *time.Time) {
	t.Helper()
	clock := testNow
	e := NewWithClock(func() time.Time { return clock })

	users := []model.User{
		{ID: 1, Username: "akbar", Role: model.RoleManager},
		{ID: 2, Username: "mmd", Role: model.RoleClient},
		{ID: 3, Username: "mobina", Role: model.RoleClient},
	}
	for _, u := range users {
		if err := e.AddUser(u); err != nil {
			t.Fatalf("AddUser(%d): %v", u.ID, err)
		}
	}
	if err := e.AddRestaurant(model.Restaurant{
		ID:        10,
		ManagerID: 1,
		Name:      "Kababi",
		Opens:     9 * time.Hour,
		Closes:    22 * time.Hour,
	}); err != nil {
		t.Fatalf("AddRestaurant: %v", err)
	}
	for _, seats := range []int{2, 4, 6} {
		if _, err := e.AddTable(10, seats); err != nil {
			t.Fatalf("AddTable(%d): %v", seats, err)
		}
	}
	return e, &clock
}

func slotTomorrow(hour int) time.Time {
	return time.Date(2026, 3, 11, hour, 0, 0, 0, time.UTC)
}

func TestReserveValidation(t *testing.T) {
	e, _ := fixture(t)
	at := slotTomorrow(13)

	cases := []struct {
		name         string
		restaurantID uint64
		people       int
		at           time.Time
		userID       uint64
		want         error
	}{
		{"unknown restaurant", 99, 2, at, 2, ErrRestaurantNotFound},
		{"unknown user", 10, 2, at, 42, ErrUserNotFound},
		{"manager books own restaurant", 10, 2, at, 1, ErrManagerReservationNotAllowed},
		{"zero people", 10, 0, at, 2, ErrBadPeopleNumber},
		{"negative people", 10, -1, at, 2, ErrBadPeopleNumber},
		{"party larger than any table", 10, 7, at, 2, ErrBadPeopleNumber},
		{"yesterday", 10, 2, testNow.AddDate(0, 0, -1), 2, ErrDateTimeInThePast},
		{"same instant", 10, 2, testNow, 2, ErrDateTimeInThePast},
		{"misaligned minute", 10, 2, at.Add(15 * time.Minute), 2, ErrReservationNotInOpenTimes},
		{"before opening", 10, 2, slotTomorrow(8), 2, ErrReservationNotInOpenTimes},
		{"at closing", 10, 2, slotTomorrow(22), 2, ErrReservationNotInOpenTimes},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Reserve(tc.restaurantID, tc.people, tc.at, tc.userID)
			if !errors.Is(err, tc.want) {
				t.Errorf("Reserve() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestReserveBestFit(t *testing.T) {
	e, _ := fixture(t)
	at := slotTomorrow(13)

	// A party of two gets the two-seater, not a bigger table.
	r1, err := e.Reserve(10, 2, at, 2)
	if err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if r1.TableNumber != 1 {
		t.Errorf("first party of 2 got table %d, want 1", r1.TableNumber)
	}

	// Same slot again: the two-seater is taken, next best fit is 4.
	r2, err := e.Reserve(10, 2, at, 3)
	if err != nil {
		t.Fatalf("second reserve: %v", err)
	}
	if r2.TableNumber != 2 {
		t.Errorf("second party of 2 got table %d, want 2", r2.TableNumber)
	}

	// A party of five can only fit the six-seater.
	r3, err := e.Reserve(10, 5, at, 2)
	if err != nil {
		t.Fatalf("third reserve: %v", err)
	}
	if r3.TableNumber != 3 {
		t.Errorf("party of 5 got table %d, want 3", r3.TableNumber)
	}

	// Everything is taken at this slot now.
	if _, err := e.Reserve(10, 2, at, 3); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("fourth reserve error = %v, want %v", err, ErrTableNotFound)
	}

	// The same table is still free at a different slot.
	r4, err := e.Reserve(10, 2, at.Add(SlotInterval), 3)
	if err != nil {
		t.Fatalf("other slot reserve: %v", err)
	}
	if r4.TableNumber != 1 {
		t.Errorf("other slot got table %d, want 1", r4.TableNumber)
	}
}

func TestReserveBestFitPrefersLowestNumberOnTie(t *testing.T) {
	e, _ := fixture(t)
	if _, err := e.AddTable(10, 4); err != nil { // second four-seater, number 4
		t.Fatal(err)
	}
	at := slotTomorrow(14)
	r, err := e.Reserve(10, 3, at, 2)
	if err != nil {
		t.Fatal(err)
	}
	if r.TableNumber != 2 {
		t.Errorf("tie broke to table %d, want 2", r.TableNumber)
	}
}

func TestReserveSingleTableDoubleBooking(t *testing.T) {
	e, clock := fixture(t)
	_ = clock
	if err := e.AddRestaurant(model.Restaurant{ID: 11, ManagerID: 1, Name: "Tiny", Opens: 9 * time.Hour, Closes: 22 * time.Hour}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AddTable(11, 2); err != nil {
		t.Fatal(err)
	}
	at := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC) // today, still in the future

	if _, err := e.Reserve(11, 2, at, 2); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := e.Reserve(11, 2, at, 3); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("second booking error = %v, want %v", err, ErrTableNotFound)
	}
}

func TestReserveIDsAreMonotonic(t *testing.T) {
	e, _ := fixture(t)
	var last uint64
	for i := 0; i < 5; i++ {
		r, err := e.Reserve(10, 2, slotTomorrow(13).Add(time.Duration(i)*SlotInterval), 2)
		if err != nil {
			t.Fatal(err)
		}
		if r.ID <= last {
			t.Fatalf("id %d not greater than previous %d", r.ID, last)
		}
		last = r.ID
	}
	// Cancelling never frees an id for reuse.
	if err := e.Cancel(last, 2); err != nil {
		t.Fatal(err)
	}
	r, err := e.Reserve(10, 2, slotTomorrow(20), 2)
	if err != nil {
		t.Fatal(err)
	}
	if r.ID <= last {
		t.Errorf("id %d reused after cancellation, last was %d", r.ID, last)
	}
}

func TestAvailableTimes(t *testing.T) {
	e, _ := fixture(t)

	t.Run("validation order", func(t *testing.T) {
		if _, err := e.AvailableTimes(99, 2, slotTomorrow(0)); !errors.Is(err, ErrRestaurantNotFound) {
			t.Errorf("unknown restaurant: %v", err)
		}
		if _, err := e.AvailableTimes(10, 0, slotTomorrow(0)); !errors.Is(err, ErrBadPeopleNumber) {
			t.Errorf("zero people: %v", err)
		}
		if _, err := e.AvailableTimes(10, 7, slotTomorrow(0)); !errors.Is(err, ErrBadPeopleNumber) {
			t.Errorf("oversized party: %v", err)
		}
		if _, err := e.AvailableTimes(10, 2, testNow.AddDate(0, 0, -1)); !errors.Is(err, ErrDateTimeInThePast) {
			t.Errorf("yesterday: %v", err)
		}
	})

	t.Run("full free day", func(t *testing.T) {
		times, err := e.AvailableTimes(10, 2, slotTomorrow(0))
		if err != nil {
			t.Fatal(err)
		}
		if len(times) != 26 {
			t.Fatalf("got %d slots, want 26", len(times))
		}
		if !times[0].Equal(slotTomorrow(9)) {
			t.Errorf("first slot = %v, want 09:00", times[0])
		}
		for i := 1; i < len(times); i++ {
			if !times[i].After(times[i-1]) {
				t.Fatal("slots not strictly ascending")
			}
		}
	})

	t.Run("today hides elapsed slots", func(t *testing.T) {
		// Clock is at 12:00, so 09:00..12:00 are gone; first free is 12:30.
		times, err := e.AvailableTimes(10, 2, testNow)
		if err != nil {
			t.Fatal(err)
		}
		first := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)
		if len(times) == 0 || !times[0].Equal(first) {
			t.Fatalf("first slot = %v, want %v", times, first)
		}
	})

	t.Run("fully booked slot disappears", func(t *testing.T) {
		at := slotTomorrow(18)
		for _, uid := range []uint64{2, 3, 2} { // occupy all three tables
			if _, err := e.Reserve(10, 2, at, uid); err != nil {
				t.Fatal(err)
			}
		}
		times, err := e.AvailableTimes(10, 2, slotTomorrow(0))
		if err != nil {
			t.Fatal(err)
		}
		for _, ts := range times {
			if ts.Equal(at) {
				t.Fatal("18:00 still listed although every table is taken")
			}
		}
	})
}

func TestAvailableTimesRoundTrip(t *testing.T) {
	// Every advertised slot must be immediately bookable.
	e, _ := fixture(t)
	times, err := e.AvailableTimes(10, 4, slotTomorrow(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(times) == 0 {
		t.Fatal("no availability to verify")
	}
	if _, err := e.Reserve(10, 4, times[0], 2); err != nil {
		t.Errorf("advertised slot not bookable: %v", err)
	}
}

func TestAvailableTimesOvernight(t *testing.T) {
	e, _ := fixture(t)
	if err := e.AddRestaurant(model.Restaurant{ID: 12, ManagerID: 1, Name: "Night Owl", Opens: 22 * time.Hour, Closes: 2 * time.Hour}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AddTable(12, 4); err != nil {
		t.Fatal(err)
	}
	times, err := e.AvailableTimes(12, 2, slotTomorrow(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 8 {
		t.Fatalf("got %d slots, want 8", len(times))
	}
	last := times[len(times)-1]
	want := time.Date(2026, 3, 12, 1, 30, 0, 0, time.UTC)
	if !last.Equal(want) {
		t.Errorf("last slot = %v, want %v (spills past midnight)", last, want)
	}
	// And a wrapped slot is bookable.
	if _, err := e.Reserve(12, 2, want, 2); err != nil {
		t.Errorf("wrapped slot not bookable: %v", err)
	}
}

func TestCancel(t *testing.T) {
	e, clock := fixture(t)
	at := slotTomorrow(13)
	res, err := e.Reserve(10, 2, at, 2)
	if err != nil {
		t.Fatal(err)
	}

	if err := e.Cancel(999, 2); !errors.Is(err, ErrReservationNotFound) {
		t.Errorf("unknown id: %v", err)
	}
	if err := e.Cancel(res.ID, 3); !errors.Is(err, ErrUserNoAccess) {
		t.Errorf("foreign user: %v", err)
	}
	if err := e.Cancel(res.ID, 2); err != nil {
		t.Fatalf("owner cancel: %v", err)
	}
	if err := e.Cancel(res.ID, 2); !errors.Is(err, ErrReservationCannotBeCancelled) {
		t.Errorf("second cancel: %v", err)
	}

	// The slot is free for someone else again.
	if _, err := e.Reserve(10, 2, at, 3); err != nil {
		t.Errorf("slot not released after cancel: %v", err)
	}

	// Elapsed reservations cannot be cancelled.
	res2, err := e.Reserve(10, 2, slotTomorrow(14), 2)
	if err != nil {
		t.Fatal(err)
	}
	*clock = slotTomorrow(15)
	if err := e.Cancel(res2.ID, 2); !errors.Is(err, ErrReservationCannotBeCancelled) {
		t.Errorf("elapsed cancel: %v", err)
	}
}

func TestUserReservationsOrder(t *testing.T) {
	e, _ := fixture(t)
	if _, err := e.UserReservations(42); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user: %v", err)
	}

	// Book later slot first: the listing keeps insertion order, not
	// chronological order.
	later, err := e.Reserve(10, 2, slotTomorrow(20), 2)
	if err != nil {
		t.Fatal(err)
	}
	earlier, err := e.Reserve(10, 2, slotTomorrow(9), 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Cancel(later.ID, 2); err != nil {
		t.Fatal(err)
	}

	list, err := e.UserReservations(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d reservations, want 2", len(list))
	}
	if list[0].ID != later.ID || list[1].ID != earlier.ID {
		t.Errorf("order = [%d %d], want [%d %d]", list[0].ID, list[1].ID, later.ID, earlier.ID)
	}
	if list[0].Status != model.ReservationCancelled {
		t.Error("cancelled reservation missing from history")
	}
}

func TestTableReservations(t *testing.T) {
	e, _ := fixture(t)
	// Fill table 1 at two different days, out of chronological order.
	dayAfter := time.Date(2026, 3, 12, 13, 0, 0, 0, time.UTC)
	r2, err := e.Reserve(10, 2, dayAfter, 2)
	if err != nil {
		t.Fatal(err)
	}
	r1, err := e.Reserve(10, 2, slotTomorrow(13), 3)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("validation order", func(t *testing.T) {
		if _, err := e.TableReservations(10, 1, nil, 2); !errors.Is(err, ErrUserNotManager) {
			t.Errorf("client caller: %v", err)
		}
		if _, err := e.TableReservations(99, 1, nil, 1); !errors.Is(err, ErrRestaurantNotFound) {
			t.Errorf("unknown restaurant: %v", err)
		}
		if _, err := e.TableReservations(10, 9, nil, 1); !errors.Is(err, ErrTableNotFound) {
			t.Errorf("unknown table: %v", err)
		}
	})

	t.Run("foreign manager", func(t *testing.T) {
		if err := e.AddUser(model.User{ID: 4, Username: "other", Role: model.RoleManager}); err != nil {
			t.Fatal(err)
		}
		if _, err := e.TableReservations(10, 1, nil, 4); !errors.Is(err, ErrInvalidManagerRestaurant) {
			t.Errorf("foreign manager: %v", err)
		}
	})

	t.Run("full history is chronological", func(t *testing.T) {
		list, err := e.TableReservations(10, 1, nil, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != 2 {
			t.Fatalf("got %d reservations, want 2", len(list))
		}
		if list[0].ID != r1.ID || list[1].ID != r2.ID {
			t.Errorf("order = [%d %d], want chronological [%d %d]", list[0].ID, list[1].ID, r1.ID, r2.ID)
		}
	})

	t.Run("date filter", func(t *testing.T) {
		day := slotTomorrow(0)
		list, err := e.TableReservations(10, 1, &day, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != 1 || list[0].ID != r1.ID {
			t.Errorf("filtered list = %v, want only reservation %d", list, r1.ID)
		}
	})
}

func TestRestoreReservation(t *testing.T) {
	e, _ := fixture(t)
	restored := model.Reservation{
		ID:           7,
		UserID:       2,
		RestaurantID: 10,
		TableNumber:  1,
		Time:         slotTomorrow(13),
		Status:       model.ReservationActive,
		CreatedAt:    testNow.Add(-time.Hour),
	}
	if err := e.RestoreReservation(restored); err != nil {
		t.Fatal(err)
	}

	// The replayed reservation occupies its slot.
	if _, err := e.Reserve(10, 2, slotTomorrow(13), 3); err != nil {
		t.Fatalf("other tables should still be free: %v", err)
	}
	list, err := e.TableReservations(10, 1, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != 7 {
		t.Fatalf("table history = %v, want restored reservation 7", list)
	}

	// New ids continue past the restored one.
	r, err := e.Reserve(10, 2, slotTomorrow(14), 2)
	if err != nil {
		t.Fatal(err)
	}
	if r.ID <= 7 {
		t.Errorf("new id %d not beyond restored id 7", r.ID)
	}
}

func TestConcurrentReserveNoDoubleBooking(t *testing.T) {
	e, _ := fixture(t)
	at := slotTomorrow(13)

	const attempts = 64
	var wg sync.WaitGroup
	results := make(chan model.Reservation, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			uid := uint64(2 + i%2)
			if r, err := e.Reserve(10, 2, at, uid); err == nil {
				results <- r
			}
		}(i)
	}
	wg.Wait()
	close(results)

	// Three tables seat two or more, so exactly three attempts may win.
	seenTables := make(map[int]bool)
	seenIDs := make(map[uint64]bool)
	n := 0
	for r := range results {
		n++
		if seenTables[r.TableNumber] {
			t.Fatalf("table %d booked twice for the same slot", r.TableNumber)
		}
		seenTables[r.TableNumber] = true
		if seenIDs[r.ID] {
			t.Fatalf("reservation id %d issued twice", r.ID)
		}
		seenIDs[r.ID] = true
	}
	if n != 3 {
		t.Fatalf("%d bookings succeeded, want exactly 3", n)
	}
}

func TestConcurrentCancelAndReserve(t *testing.T) {
	e, _ := fixture(t)
	if err := e.AddRestaurant(model.Restaurant{ID: 11, ManagerID: 1, Name: "Tiny", Opens: 9 * time.Hour, Closes: 22 * time.Hour}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AddTable(11, 2); err != nil {
		t.Fatal(err)
	}
	at := slotTomorrow(13)
	res, err := e.Reserve(11, 2, at, 2)
	if err != nil {
		t.Fatal(err)
	}

	// One goroutine cancels while many try to grab the slot.  However
	// the race resolves, the single table must end up with at most one
	// active reservation at the slot.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = e.Cancel(res.ID, 2)
	}()
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = e.Reserve(11, 2, at, 3)
		}()
	}
	wg.Wait()

	list, err := e.TableReservations(11, 1, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	active := 0
	for _, r := range list {
		if r.Status == model.ReservationActive && r.Time.Equal(at) {
			active++
		}
	}
	if active > 1 {
		t.Fatalf("%d active reservations share one table and slot", active)
	}
}
