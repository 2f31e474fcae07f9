// Package queue defines the message payloads exchanged over the broker
// and the background consumer that turns them into an audit log.
package queue

// ReservationConfirmedEvent is published after a reservation commits.
// It carries enough context for downstream consumers (notifications,
// analytics, the audit log) to act without reading the database.
type ReservationConfirmedEvent struct {
	ReservationID  uint64 `json:"reservation_id"`
	UserID         uint64 `json:"user_id"`
	Username       string `json:"username"`
	RestaurantID   uint64 `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	TableNumber    int    `json:"table_number"`
	Seats          int    `json:"seats"`
	People         int    `json:"people"`
	Time           string `json:"time"`
	ConfirmedAt    string `json:"confirmed_at"`
}

// ReservationCancelledEvent is published when a diner cancels an
// upcoming reservation.
type ReservationCancelledEvent struct {
	ReservationID  uint64 `json:"reservation_id"`
	UserID         uint64 `json:"user_id"`
	RestaurantID   uint64 `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	TableNumber    int    `json:"table_number"`
	Time           string `json:"time"`
	CancelledAt    string `json:"cancelled_at"`
}
