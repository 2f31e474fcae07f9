package model

import "time"

// Table describes a physical table inside a restaurant.  Table
// numbers are unique within their restaurant only and are assigned
// in creation order starting at 1; the pair (RestaurantID, Number)
// identifies a table globally.
//
// Fields:
//  RestaurantID – restaurant the table belongs to.
//  Number       – table number within the restaurant.
//  Seats        – seat capacity, always positive.
//  CreatedAt    – creation timestamp.
type Table struct {
	RestaurantID uint64    // tables.restaurant_id
	Number       int       // tables.number
	Seats        int       // tables.seats
	CreatedAt    time.Time // tables.created_at
}
