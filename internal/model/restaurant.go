package model

import "time"

// Restaurant represents a venue owned by a manager user.  Each
// restaurant belongs to exactly one manager; a manager may own many
// restaurants.  Working hours are stored as offsets from midnight.
// When Closes is numerically smaller than Opens the restaurant is
// open overnight and the window wraps past midnight.
//
// Fields:
//  ID          – primary key identifier.
//  ManagerID   – user ID of the owning manager.
//  Name        – display name of the restaurant.
//  Type        – cuisine or venue type (free text).
//  Description – optional description.
//  Address     – postal address of the venue.
//  ImageLink   – URL of a cover image.
//  Opens       – opening time of day, offset from midnight.
//  Closes      – closing time of day, offset from midnight.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Restaurant struct {
	ID          uint64        // restaurants.id
	ManagerID   uint64        // restaurants.manager_id
	Name        string        // restaurants.name
	Type        string        // restaurants.type
	Description string        // restaurants.description
	Address     Address       // restaurants.country / city / street
	ImageLink   string        // restaurants.image_link
	Opens       time.Duration // restaurants.opens (TIME column)
	Closes      time.Duration // restaurants.closes (TIME column)
	CreatedAt   time.Time     // restaurants.created_at
	UpdatedAt   time.Time     // restaurants.updated_at
}
