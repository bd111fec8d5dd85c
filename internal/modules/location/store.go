// README: Location store backed by Redis GEO and Postgres snapshots.
package location

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"haulmatch/internal/types"
)

const driverGeoKey = "location:drivers"

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, redis *redis.Client) *Store {
	return &Store{db: db, redis: redis}
}

// SetGeo records a driver's live position in the GEO set.
func (s *Store) SetGeo(ctx context.Context, id types.ID, pos types.Point) error {
	return s.redis.GeoAdd(ctx, driverGeoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: pos.Lng,
		Latitude:  pos.Lat,
	}).Err()
}

// GetGeo returns the driver's live position, or found=false when the driver
// has never reported one.
func (s *Store) GetGeo(ctx context.Context, id types.ID) (types.Point, bool, error) {
	positions, err := s.redis.GeoPos(ctx, driverGeoKey, string(id)).Result()
	if err != nil {
		return types.Point{}, false, err
	}
	if len(positions) == 0 || positions[0] == nil {
		return types.Point{}, false, nil
	}
	return types.Point{Lat: positions[0].Latitude, Lng: positions[0].Longitude}, true, nil
}

// RemoveGeo drops the driver from the GEO set, e.g. when going off shift.
func (s *Store) RemoveGeo(ctx context.Context, id types.ID) error {
	return s.redis.ZRem(ctx, driverGeoKey, string(id)).Err()
}

// AppendSnapshot persists a position sample for audit and replay.
func (s *Store) AppendSnapshot(ctx context.Context, snap Snapshot) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO driver_location_snapshots (driver_id, lat, lng, recorded_at)
		VALUES ($1, $2, $3, $4)`,
		string(snap.DriverID),
		snap.Position.Lat, snap.Position.Lng,
		snap.RecordedAt,
	)
	return err
}
