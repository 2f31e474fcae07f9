package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ReservationRepo persists reservations.  The engine's ledger is the
// source of truth and issues the ids, so rows are inserted with an
// explicit primary key instead of auto-increment.  Writes happen
// fire-and-forget after the in-memory commit; the booking flow never
// waits on MySQL.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

// Create inserts a reservation under its ledger-issued id.
func (r *ReservationRepo) Create(ctx context.Context, res model.Reservation) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO reservations (id, user_id, restaurant_id, table_number, reserved_at, status, created_at)
		 VALUES (?,?,?,?,?,?,?)`,
		res.ID, res.UserID, res.RestaurantID, res.TableNumber,
		res.Time.UTC(), string(res.Status), res.CreatedAt.UTC())
	return err
}

// MarkCancelled flips the stored status.  Rows are never deleted;
// cancelled reservations stay queryable for history.
func (r *ReservationRepo) MarkCancelled(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?",
		string(model.ReservationCancelled), id)
	return err
}

// ListAll streams every reservation ascending by id, the insertion
// order the ledger's per-user indexes expect on replay.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, restaurant_id, table_number, reserved_at, status, created_at FROM reservations ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		var (
			res    model.Reservation
			status string
		)
		if err := rows.Scan(&res.ID, &res.UserID, &res.RestaurantID, &res.TableNumber,
			&res.Time, &status, &res.CreatedAt); err != nil {
			return nil, err
		}
		res.Status = model.ReservationStatus(status)
		out = append(out, res)
	}
	return out, rows.Err()
}
