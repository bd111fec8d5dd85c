// README: Criteria repository; loads stored driver preferences with documented defaults.
package matching

import (
	"context"
	"log"

	"haulmatch/internal/config"
	"haulmatch/internal/modules/driver"
	"haulmatch/internal/types"
)

// CriteriaStore reads a driver's persisted preferences. The Postgres driver
// store satisfies it.
type CriteriaStore interface {
	Criteria(ctx context.Context, id types.ID) (*driver.StoredCriteria, error)
}

// CriteriaRepo turns stored preferences into complete MatchingCriteria.
// Missing fields get defaults; an unreachable store degrades to the
// all-default criteria instead of failing the matching request.
type CriteriaRepo struct {
	store CriteriaStore
	cfg   config.MatchingConfig
}

func NewCriteriaRepo(store CriteriaStore, cfg config.MatchingConfig) *CriteriaRepo {
	return &CriteriaRepo{store: store, cfg: cfg}
}

func (r *CriteriaRepo) defaults() MatchingCriteria {
	return MatchingCriteria{
		MaxDistanceKm: r.cfg.DefaultMaxDistanceKm,
		MinRating:     r.cfg.DefaultMinRating,
		WorkStart:     r.cfg.DefaultWorkStart,
		WorkEnd:       r.cfg.DefaultWorkEnd,
	}
}

// CriteriaFor never fails: store errors are logged and answered with the
// defaults so one degraded dependency cannot abort a matching request.
func (r *CriteriaRepo) CriteriaFor(ctx context.Context, id types.ID) MatchingCriteria {
	crit := r.defaults()
	if r.store == nil {
		return crit
	}

	stored, err := r.store.Criteria(ctx, id)
	if err != nil {
		log.Printf("criteria store unavailable for driver %s, using defaults: %v", id, err)
		return crit
	}

	if stored.MaxDistanceKm != nil && *stored.MaxDistanceKm > 0 {
		crit.MaxDistanceKm = *stored.MaxDistanceKm
	}
	if stored.MinRating != nil && *stored.MinRating > 0 {
		crit.MinRating = *stored.MinRating
	}
	if stored.VehicleCapacityL != nil && *stored.VehicleCapacityL > 0 {
		crit.VehicleCapacityL = *stored.VehicleCapacityL
	}
	if len(stored.PreferredCategories) > 0 {
		crit.PreferredCategories = stored.PreferredCategories
	}
	if stored.WorkStart != nil && *stored.WorkStart != "" {
		crit.WorkStart = *stored.WorkStart
	}
	if stored.WorkEnd != nil && *stored.WorkEnd != "" {
		crit.WorkEnd = *stored.WorkEnd
	}
	return crit
}
