// README: Matching engine data contracts: criteria, modes, scores, preference profiles.
package matching

import (
	"sort"
	"time"

	"haulmatch/internal/types"
)

// Mode selects the ranking strategy for one matching request.
type Mode string

const (
	// ModeDeterministic uses the rule-based scorer only.
	ModeDeterministic Mode = "deterministic"
	// ModeAssisted asks the inference service first and falls back to the
	// deterministic scorer on any failure.
	ModeAssisted Mode = "assisted"
)

// MatchingCriteria are a driver's tunable matching parameters, immutable for
// the duration of one request. Produced by the criteria repository with
// defaults already applied, so every field is usable as-is.
type MatchingCriteria struct {
	MaxDistanceKm float64
	MinRating     float64
	// VehicleCapacityL overrides the profile capacity when positive.
	VehicleCapacityL float64
	// PreferredCategories empty means "no preference".
	PreferredCategories []string
	WorkStart           string
	WorkEnd             string
}

func (c MatchingCriteria) prefersCategory(category string) bool {
	for _, p := range c.PreferredCategories {
		if p == category {
			return true
		}
	}
	return false
}

// JobScore is the ephemeral scored pairing of a job and a driver. Scores are
// always within [0,1]; Reasons lists the contributing terms in human-readable
// form. Never persisted by this package.
type JobScore struct {
	JobID    types.ID
	DriverID types.ID
	Score    float64
	Reasons  []string
	// JobCreatedAt breaks score ties: most recent job first, so repeated
	// requests over the same pool rank reproducibly.
	JobCreatedAt time.Time
}

// sortScores orders descending by score, ties broken by job creation recency.
func sortScores(scores []JobScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].JobCreatedAt.After(scores[j].JobCreatedAt)
	})
}

func truncateScores(scores []JobScore, limit int) []JobScore {
	if limit > 0 && len(scores) > limit {
		return scores[:limit]
	}
	return scores
}

// PreferenceProfile captures a driver's implicit preferences derived from
// completed-job history. Recomputed per request, never stored.
type PreferenceProfile struct {
	CategoryCount map[string]int
	AreaCount     map[string]int
	AvgVolumeL    float64
	AvgPrice      float64
	JobCount      int
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
