package model

import "time"

// ReservationStatus is the lifecycle state of a reservation.  The
// only transition is active → cancelled; cancelled is terminal and
// cancelled reservations are kept for history, never deleted.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation records a customer's booking of one table for one
// bookable time slot.  Reservation ids are issued by the ledger,
// are strictly increasing and are never reused.  Time is the slot
// being occupied; CreatedAt is when the booking was made and exists
// for audit ordering only.
//
// Fields:
//  ID           – globally unique reservation id.
//  UserID       – customer who placed the reservation.
//  RestaurantID – restaurant the table belongs to.
//  TableNumber  – table number within the restaurant.
//  Time         – the reserved date-time (slot start).
//  Status       – active or cancelled.
//  CreatedAt    – when the reservation was created.
type Reservation struct {
	ID           uint64            // reservations.id
	UserID       uint64            // reservations.user_id
	RestaurantID uint64            // reservations.restaurant_id
	TableNumber  int               // reservations.table_number
	Time         time.Time         // reservations.reserved_at
	Status       ReservationStatus // reservations.status
	CreatedAt    time.Time         // reservations.created_at
}

// Active reports whether the reservation still occupies its slot.
func (r *Reservation) Active() bool { return r.Status == ReservationActive }
