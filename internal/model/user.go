package model

import "time"

// Role distinguishes the two kinds of accounts the service knows
// about.  Clients browse restaurants and place reservations; managers
// own restaurants and inspect the reservations placed on their
// tables.  The set is closed, so role checks are written as explicit
// comparisons rather than interface dispatch.
type Role string

const (
	RoleClient  Role = "client"  // regular customer account
	RoleManager Role = "manager" // restaurant manager account
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleClient || r == RoleManager }

// Address is the postal address attached to users and restaurants.
// It is opaque to the reservation engine and carried through for
// display only.
//
// Fields:
//  Country – country name.
//  City    – city name.
//  Street  – street; optional for users.
type Address struct {
	Country string `json:"country"` // users.country / restaurants.country
	City    string `json:"city"`    // users.city / restaurants.city
	Street  string `json:"street"`  // users.street / restaurants.street
}

// User represents an application user record as stored in the
// `users` table.  The password is stored only as a bcrypt hash.
// A user's reservations are not embedded here; the reservation
// ledger owns them and indexes them by user id.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  Email        – unique email address.
//  Address      – the user's postal address (street optional).
//  Role         – client or manager.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	Email        string    // users.email
	Address      Address   // users.country / users.city / users.street
	Role         Role      // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its SHA-256
// hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
