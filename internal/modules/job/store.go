// README: Job store backed by PostgreSQL (read-only from the matching engine's point of view).
package job

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"haulmatch/internal/types"
)

var ErrNotFound = errors.New("job not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const jobColumns = `
	id, supplier_id, category, volume_l,
	pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
	urgent, price_amount, price_currency,
	quality_grade, contaminated, status, created_at, completed_at`

// ListOpen returns a snapshot of every job still open for matching, most
// recent first so that downstream tie-breaks are stable.
func (s *Store) ListOpen(ctx context.Context) ([]Job, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE status = $1
		ORDER BY created_at DESC`, string(StatusOpen),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

// CompletedByDriver returns the driver's completed jobs for preference
// derivation.
func (s *Store) CompletedByDriver(ctx context.Context, driverID types.ID) ([]Job, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE driver_id = $1 AND status = $2
		ORDER BY completed_at DESC`, string(driverID), string(StatusCompleted),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Job, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE id = $1`, string(id),
	)
	j, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var j Job
	var pickupLat, pickupLng, dropoffLat, dropoffLng sql.NullFloat64
	var volume sql.NullFloat64
	var completedAt sql.NullTime

	err := row.Scan(
		&j.ID, &j.SupplierID, &j.Category, &volume,
		&pickupLat, &pickupLng, &dropoffLat, &dropoffLng,
		&j.Urgent, &j.Price.Amount, &j.Price.Currency,
		&j.QualityGrade, &j.Contaminated, &j.Status, &j.CreatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	if volume.Valid {
		j.VolumeL = volume.Float64
	}
	if pickupLat.Valid && pickupLng.Valid {
		j.Pickup = &types.Point{Lat: pickupLat.Float64, Lng: pickupLng.Float64}
	}
	if dropoffLat.Valid && dropoffLng.Valid {
		j.Dropoff = &types.Point{Lat: dropoffLat.Float64, Lng: dropoffLng.Float64}
	}
	j.CompletedAt = toTimePtr(completedAt)
	return &j, nil
}

func scanJobs(rows pgx.Rows) ([]Job, error) {
	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

func toTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
