// README: Deterministic rule-based scorer; weighted, bounded, side-effect-free.
package matching

import (
	"context"
	"fmt"
	"sync"

	"haulmatch/internal/config"
	"haulmatch/internal/modules/driver"
	"haulmatch/internal/modules/job"
	"haulmatch/internal/types"
)

// Distancer resolves point-to-point distances. location.Resolver satisfies
// it; it never errors, only degrades to the great-circle estimate.
type Distancer interface {
	DistanceKm(ctx context.Context, a, b types.Point) float64
}

// Scorer computes the weighted suitability score of a job for a driver.
// Weights come from config and sum to 1.0; every term is clamped to [0,1]
// before weighting, so the total is guaranteed to stay within [0,1].
type Scorer struct {
	distance Distancer
	cfg      config.MatchingConfig
}

func NewScorer(distance Distancer, cfg config.MatchingConfig) *Scorer {
	return &Scorer{distance: distance, cfg: cfg}
}

// ScoreJob scores one job for one driver under the given criteria.
// Jobs scoring zero on every term are still returned; filtering by a minimum
// score is the caller's call, not this function's.
func (s *Scorer) ScoreJob(ctx context.Context, j job.Job, d driver.Driver, crit MatchingCriteria) JobScore {
	score := JobScore{
		JobID:        j.ID,
		DriverID:     d.ID,
		JobCreatedAt: j.CreatedAt,
	}

	// Distance term. Missing coordinates on either side contribute zero with
	// an explicit reason so the caller can prompt for location data.
	if d.Position != nil && j.Pickup != nil {
		dist := s.distance.DistanceKm(ctx, *d.Position, *j.Pickup)
		maxDist := crit.MaxDistanceKm
		if maxDist <= 0 {
			maxDist = s.cfg.DefaultMaxDistanceKm
		}
		term := clamp01(1 - dist/maxDist)
		if term > 0 {
			score.Reasons = append(score.Reasons, fmt.Sprintf("pickup %.1f km away", dist))
		}
		score.Score += s.cfg.DistanceWeight * term
	} else {
		score.Reasons = append(score.Reasons, "distance unknown")
	}

	// Capacity term. A job without a declared volume earns the full weight.
	capacity := crit.VehicleCapacityL
	if capacity <= 0 {
		capacity = d.VehicleCapacityL
	}
	capTerm := 1.0
	if j.VolumeL > 0 {
		capTerm = clamp01(capacity / j.VolumeL)
	}
	if capTerm > 0 {
		if capTerm >= 1 {
			score.Reasons = append(score.Reasons, fmt.Sprintf("vehicle fits %.0fL load", j.VolumeL))
		} else {
			score.Reasons = append(score.Reasons, fmt.Sprintf("partial capacity for %.0fL load", j.VolumeL))
		}
	}
	score.Score += s.cfg.CapacityWeight * capTerm

	// Category-preference term. An empty preference set means "no
	// preference" and earns the full weight.
	switch {
	case len(crit.PreferredCategories) == 0:
		score.Score += s.cfg.CategoryWeight
		score.Reasons = append(score.Reasons, "no category preference")
	case crit.prefersCategory(j.Category):
		score.Score += s.cfg.CategoryWeight
		score.Reasons = append(score.Reasons, fmt.Sprintf("preferred category %s", j.Category))
	}

	// Urgency term.
	if j.Urgent {
		score.Score += s.cfg.UrgencyWeight
		score.Reasons = append(score.Reasons, "urgent collection")
	}

	// Price-attractiveness term: rewards prices above the floor, saturating
	// at floor+spread.
	priceTerm := clamp01((float64(j.Price.Amount) - s.cfg.PriceFloor) / s.cfg.PriceSpread)
	if priceTerm > 0 {
		score.Reasons = append(score.Reasons, fmt.Sprintf("offered price %d", j.Price.Amount))
	}
	score.Score += s.cfg.PriceWeight * priceTerm

	score.Score = clamp01(score.Score)
	return score
}

// ScoreAll scores a snapshot of jobs for one driver. Per-job distance lookups
// are I/O-bound and independent, so they run on a bounded worker pool;
// results land at their pool index before the final sort, keeping the
// ordering deterministic regardless of completion order.
func (s *Scorer) ScoreAll(ctx context.Context, pool []job.Job, d driver.Driver, crit MatchingCriteria) []JobScore {
	scores := make([]JobScore, len(pool))

	workers := s.cfg.DistanceWorkers
	if workers <= 0 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range pool {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			scores[i] = s.ScoreJob(ctx, pool[i], d, crit)
		}(i)
	}
	wg.Wait()

	// A cancelled request may leave zero-valued trailing entries; drop them.
	if err := ctx.Err(); err != nil {
		kept := scores[:0]
		for _, sc := range scores {
			if sc.JobID != "" {
				kept = append(kept, sc)
			}
		}
		scores = kept
	}

	sortScores(scores)
	return scores
}
