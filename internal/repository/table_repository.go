package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// TableRepo persists tables.  Table numbers are assigned by the
// engine (next free number per restaurant); the composite primary
// key (restaurant_id, number) mirrors that.
type TableRepo struct{ DB *sql.DB }

func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{DB: db} }

// Create inserts a table under its engine-assigned number.
func (r *TableRepo) Create(ctx context.Context, t model.Table) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO tables (restaurant_id, number, seats) VALUES (?,?,?)",
		t.RestaurantID, t.Number, t.Seats)
	return err
}

// ListAll streams every table ordered by restaurant and number, the
// order the engine expects when replaying at boot.
func (r *TableRepo) ListAll(ctx context.Context) ([]model.Table, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT restaurant_id, number, seats, created_at FROM tables ORDER BY restaurant_id, number")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Table
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.RestaurantID, &t.Number, &t.Seats, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
