// README: Location service handles driver position updates and reads.
package location

import (
	"context"
	"time"

	"haulmatch/internal/types"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type Update struct {
	DriverID types.ID
	Position types.Point
}

// Update records the live position and appends a durable snapshot. The GEO
// write is the one matching depends on; a snapshot failure is not fatal.
func (s *Service) Update(ctx context.Context, u Update) error {
	if err := s.store.SetGeo(ctx, u.DriverID, u.Position); err != nil {
		return err
	}
	return s.store.AppendSnapshot(ctx, Snapshot{
		DriverID:   u.DriverID,
		Position:   u.Position,
		RecordedAt: time.Now(),
	})
}

// Position returns the driver's live position when known.
func (s *Service) Position(ctx context.Context, id types.ID) (types.Point, bool, error) {
	return s.store.GetGeo(ctx, id)
}
