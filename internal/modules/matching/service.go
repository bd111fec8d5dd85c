// README: Matching service orchestrates scoring, assisted ranking, and fallback.
package matching

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"haulmatch/internal/ai"
	"haulmatch/internal/config"
	"haulmatch/internal/modules/driver"
	"haulmatch/internal/modules/job"
	"haulmatch/internal/types"
)

var (
	ErrDriverNotFound = errors.New("driver not found")
	ErrNotDriver      = errors.New("profile is not a driver")
	// ErrLocationUnavailable is a missing-precondition condition, distinct
	// from invalid input: callers should prompt for a location update.
	ErrLocationUnavailable = errors.New("driver location unavailable")
)

// JobPoolView is the read-only snapshot interface over the job store.
type JobPoolView interface {
	ListOpen(ctx context.Context) ([]job.Job, error)
	CompletedByDriver(ctx context.Context, driverID types.ID) ([]job.Job, error)
}

// DriverView is the read-only interface over the driver/profile store.
type DriverView interface {
	Get(ctx context.Context, id types.ID) (*driver.Driver, error)
}

// PositionSource supplies live driver positions. Optional; when absent the
// profile coordinates are used as-is.
type PositionSource interface {
	Position(ctx context.Context, id types.ID) (types.Point, bool, error)
}

// Service is the engine's in-process API surface.
type Service struct {
	jobs        JobPoolView
	drivers     DriverView
	positions   PositionSource
	criteria    *CriteriaRepo
	scorer      *Scorer
	recommender *Recommender
	ranker      ai.JobRanker
	distance    Distancer
	cfg         config.MatchingConfig
}

type ServiceDeps struct {
	Jobs      JobPoolView
	Drivers   DriverView
	Positions PositionSource
	Criteria  *CriteriaRepo
	Distance  Distancer
	Ranker    ai.JobRanker
}

func NewService(deps ServiceDeps, cfg config.MatchingConfig) *Service {
	return &Service{
		jobs:        deps.Jobs,
		drivers:     deps.Drivers,
		positions:   deps.Positions,
		criteria:    deps.Criteria,
		scorer:      NewScorer(deps.Distance, cfg),
		recommender: NewRecommender(cfg),
		ranker:      deps.Ranker,
		distance:    deps.Distance,
		cfg:         cfg,
	}
}

// MatchJobsToDriver returns the ranked open jobs for a driver. In assisted
// mode the inference service ranks first; any failure, timeout, malformed
// response, or empty usable ranking silently falls back to the deterministic
// scorer, so the caller never sees a hard error from the assisted path alone.
func (s *Service) MatchJobsToDriver(ctx context.Context, driverID types.ID, limit int, mode Mode) ([]JobScore, error) {
	d, err := s.loadDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	crit := s.criteria.CriteriaFor(ctx, driverID)

	pool, err := s.openPool(ctx)
	if err != nil {
		return nil, err
	}

	if mode == ModeAssisted && s.ranker != nil {
		if scores, ok := s.assistedScores(ctx, *d, crit, pool); ok {
			sortScores(scores)
			return truncateScores(scores, limit), nil
		}
		log.Printf("assisted ranking unavailable for driver %s, using deterministic scorer", driverID)
	}

	scores := s.scorer.ScoreAll(ctx, pool, *d, crit)
	return truncateScores(scores, limit), nil
}

// NearbyJobs filters the open pool to pickups within radiusKm of the driver's
// live position and scores them by pure proximity. The normalization is a
// fixed distance, independent of the driver's max-distance criterion.
func (s *Service) NearbyJobs(ctx context.Context, driverID types.ID, radiusKm float64) ([]JobScore, error) {
	d, err := s.loadDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if d.Position == nil {
		return nil, ErrLocationUnavailable
	}

	pool, err := s.openPool(ctx)
	if err != nil {
		return nil, err
	}

	var scores []JobScore
	for _, j := range pool {
		if j.Pickup == nil {
			continue
		}
		dist := s.distance.DistanceKm(ctx, *d.Position, *j.Pickup)
		if dist > radiusKm {
			continue
		}
		scores = append(scores, JobScore{
			JobID:        j.ID,
			DriverID:     d.ID,
			Score:        clamp01(1 - dist/s.cfg.ProximityNormKm),
			Reasons:      []string{fmt.Sprintf("pickup %.1f km away", dist)},
			JobCreatedAt: j.CreatedAt,
		})
	}
	sortScores(scores)
	return scores, nil
}

// RecommendJobs scores the open pool against the driver's completed-job
// history. An unreachable history store degrades to an empty profile rather
// than failing the request.
func (s *Service) RecommendJobs(ctx context.Context, driverID types.ID, limit int) ([]JobScore, error) {
	d, err := s.loadDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	history, err := s.jobs.CompletedByDriver(ctx, driverID)
	if err != nil {
		log.Printf("history unavailable for driver %s, recommending without profile: %v", driverID, err)
		history = nil
	}

	pool, err := s.openPool(ctx)
	if err != nil {
		return nil, err
	}

	profile := BuildProfile(history)
	return s.recommender.Recommend(profile, pool, d.ID, limit), nil
}

// loadDriver fetches the profile, rejects non-driver roles, and overlays the
// live position when one is known.
func (s *Service) loadDriver(ctx context.Context, id types.ID) (*driver.Driver, error) {
	d, err := s.drivers.Get(ctx, id)
	if errors.Is(err, driver.ErrNotFound) {
		return nil, ErrDriverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load driver %s: %w", id, err)
	}
	if d.Role != driver.RoleDriver {
		return nil, ErrNotDriver
	}

	if s.positions != nil {
		pos, found, err := s.positions.Position(ctx, id)
		if err != nil {
			log.Printf("live position unavailable for driver %s: %v", id, err)
		} else if found {
			d.Position = &pos
		}
	}
	return d, nil
}

// openPool snapshots the open jobs. The store already filters by status, but
// the invariant that scores exist only for open jobs is enforced here too.
func (s *Service) openPool(ctx context.Context) ([]job.Job, error) {
	pool, err := s.jobs.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open jobs: %w", err)
	}
	// Filter into a fresh slice: the store may retain the returned one.
	open := make([]job.Job, 0, len(pool))
	for _, j := range pool {
		if j.Status == job.StatusOpen {
			open = append(open, j)
		}
	}
	return open, nil
}

// assistedScores runs the inference call under its timeout and validates the
// response entry by entry: unknown job ids, repeats, and non-finite scores
// are dropped individually. Returns ok=false when the call fails outright or
// nothing usable survives, which triggers the deterministic fallback.
func (s *Service) assistedScores(ctx context.Context, d driver.Driver, crit MatchingCriteria, pool []job.Job) ([]JobScore, bool) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.InferenceTimeout)
	defer cancel()

	ranked, err := s.ranker.RankJobs(callCtx, buildRankRequest(d, crit, pool))
	if err != nil {
		log.Printf("inference call failed: %v", err)
		return nil, false
	}

	byID := make(map[types.ID]job.Job, len(pool))
	for _, j := range pool {
		byID[j.ID] = j
	}

	seen := make(map[types.ID]bool, len(ranked))
	var scores []JobScore
	for _, entry := range ranked {
		id := types.ID(entry.JobID)
		j, exists := byID[id]
		if !exists || seen[id] {
			continue
		}
		if math.IsNaN(entry.Score) || math.IsInf(entry.Score, 0) {
			continue
		}
		seen[id] = true

		reasons := entry.Reasons
		if len(reasons) == 0 {
			reasons = []string{"ranked by inference service"}
		}
		scores = append(scores, JobScore{
			JobID:        id,
			DriverID:     d.ID,
			Score:        clamp01(entry.Score),
			Reasons:      reasons,
			JobCreatedAt: j.CreatedAt,
		})
	}

	if len(scores) == 0 {
		return nil, false
	}
	return scores, true
}

func buildRankRequest(d driver.Driver, crit MatchingCriteria, pool []job.Job) ai.RankRequest {
	req := ai.RankRequest{
		Driver: ai.DriverSummary{
			ID:              string(d.ID),
			VehicleCapacity: d.VehicleCapacityL,
			Rating:          d.Rating,
			CompletedJobs:   d.CompletedJobs,
			Categories:      crit.PreferredCategories,
		},
	}
	if d.Position != nil {
		req.Driver.Lat = &d.Position.Lat
		req.Driver.Lng = &d.Position.Lng
	}
	for _, j := range pool {
		js := ai.JobSummary{
			ID:       string(j.ID),
			Category: j.Category,
			VolumeL:  j.VolumeL,
			Urgent:   j.Urgent,
			Price:    float64(j.Price.Amount),
		}
		if j.Pickup != nil {
			js.Lat = j.Pickup.Lat
			js.Lng = j.Pickup.Lng
		}
		req.Jobs = append(req.Jobs, js)
	}
	return req
}
