// README: Driver store backed by PostgreSQL (profile row and stored criteria).
package driver

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"haulmatch/internal/types"
)

var ErrNotFound = errors.New("driver not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Driver, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, role, name, position_lat, position_lng,
		       vehicle_capacity_l, rating, completed_jobs,
		       work_start, work_end, created_at
		FROM users
		WHERE id = $1`, string(id),
	)

	var d Driver
	var lat, lng sql.NullFloat64
	var workStart, workEnd sql.NullString

	err := row.Scan(
		&d.ID, &d.Role, &d.Name, &lat, &lng,
		&d.VehicleCapacityL, &d.Rating, &d.CompletedJobs,
		&workStart, &workEnd, &d.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if lat.Valid && lng.Valid {
		d.Position = &types.Point{Lat: lat.Float64, Lng: lng.Float64}
	}
	if workStart.Valid {
		d.WorkStart = workStart.String
	}
	if workEnd.Valid {
		d.WorkEnd = workEnd.String
	}
	return &d, nil
}

// Criteria loads a driver's stored matching preferences. A driver without a
// preferences row gets an empty StoredCriteria, not an error; defaults are
// applied by the criteria repository.
func (s *Store) Criteria(ctx context.Context, id types.ID) (*StoredCriteria, error) {
	row := s.db.QueryRow(ctx, `
		SELECT max_distance_km, min_rating, vehicle_capacity_l,
		       preferred_categories, work_start, work_end
		FROM driver_matching_preferences
		WHERE driver_id = $1`, string(id),
	)

	var c StoredCriteria
	var maxDist, minRating, capacity sql.NullFloat64
	var workStart, workEnd sql.NullString
	var categories []string

	err := row.Scan(&maxDist, &minRating, &capacity, &categories, &workStart, &workEnd)
	if errors.Is(err, pgx.ErrNoRows) {
		return &StoredCriteria{}, nil
	}
	if err != nil {
		return nil, err
	}

	if maxDist.Valid {
		c.MaxDistanceKm = &maxDist.Float64
	}
	if minRating.Valid {
		c.MinRating = &minRating.Float64
	}
	if capacity.Valid {
		c.VehicleCapacityL = &capacity.Float64
	}
	c.PreferredCategories = categories
	if workStart.Valid {
		c.WorkStart = &workStart.String
	}
	if workEnd.Valid {
		c.WorkEnd = &workEnd.String
	}
	return &c, nil
}
