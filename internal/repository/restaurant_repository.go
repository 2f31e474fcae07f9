package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RestaurantRepo persists restaurants.  Working hours are stored in
// TIME columns as HH:MM:SS; the helpers below convert them to and
// from offsets from midnight.
type RestaurantRepo struct{ DB *sql.DB }

func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{DB: db} }

// Create inserts a restaurant and returns its generated id.
func (r *RestaurantRepo) Create(ctx context.Context, rest *model.Restaurant) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO restaurants (manager_id, name, type, description, country, city, street, image_link, opens, closes)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		rest.ManagerID, rest.Name, rest.Type, rest.Description,
		rest.Address.Country, rest.Address.City, rest.Address.Street,
		rest.ImageLink, formatClock(rest.Opens), formatClock(rest.Closes))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rest.ID = uint64(id)
	return nil
}

// ListAll streams every restaurant, ascending by id.  Used at boot to
// rebuild the engine's registry.
func (r *RestaurantRepo) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, manager_id, name, type, description, country, city, street, image_link, opens, closes, created_at, updated_at
		 FROM restaurants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Restaurant
	for rows.Next() {
		var (
			rest         model.Restaurant
			opens, close string
		)
		if err := rows.Scan(&rest.ID, &rest.ManagerID, &rest.Name, &rest.Type, &rest.Description,
			&rest.Address.Country, &rest.Address.City, &rest.Address.Street,
			&rest.ImageLink, &opens, &close, &rest.CreatedAt, &rest.UpdatedAt); err != nil {
			return nil, err
		}
		if rest.Opens, err = parseClock(opens); err != nil {
			return nil, err
		}
		if rest.Closes, err = parseClock(close); err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

// formatClock renders an offset from midnight as HH:MM:SS for a TIME
// column.
func formatClock(d time.Duration) string {
	d = d % (24 * time.Hour)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// parseClock reads a TIME column value back into an offset.
func parseClock(s string) (time.Duration, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("parse time %q: %w", s, err)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}
