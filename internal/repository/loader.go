package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
)

// RebuildEngine replays the durable catalog into a fresh engine:
// users first, then restaurants, tables and finally reservations, so
// every back-reference resolves.  Reservations that no longer match a
// known restaurant or table are logged and skipped rather than
// aborting boot.
func RebuildEngine(ctx context.Context, eng *booking.Engine, users *UserRepo, restaurants *RestaurantRepo, tables *TableRepo, reservations *ReservationRepo) error {
	us, err := users.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	for _, u := range us {
		if err := eng.AddUser(u); err != nil {
			return fmt.Errorf("replay user %d: %w", u.ID, err)
		}
	}

	rs, err := restaurants.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load restaurants: %w", err)
	}
	for _, r := range rs {
		if err := eng.AddRestaurant(r); err != nil {
			return fmt.Errorf("replay restaurant %d: %w", r.ID, err)
		}
	}

	ts, err := tables.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	for _, t := range ts {
		if err := eng.RestoreTable(t); err != nil {
			return fmt.Errorf("replay table %d/%d: %w", t.RestaurantID, t.Number, err)
		}
	}

	res, err := reservations.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load reservations: %w", err)
	}
	skipped := 0
	for _, r := range res {
		if err := eng.RestoreReservation(r); err != nil {
			log.Printf("boot: skipping reservation %d: %v", r.ID, err)
			skipped++
		}
	}
	log.Printf("boot: engine rebuilt with %d users, %d restaurants, %d tables, %d reservations (%d skipped)",
		len(us), len(rs), len(ts), len(res)-skipped, skipped)
	return nil
}
