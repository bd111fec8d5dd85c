// README: History-based recommender; derives implicit preferences from completed jobs.
package matching

import (
	"fmt"

	"haulmatch/internal/config"
	"haulmatch/internal/modules/job"
	"haulmatch/internal/modules/location"
	"haulmatch/internal/types"
)

// Recommendation weights. Category and area reward presence in history alone;
// volume and price reward similarity to the historical averages. Terms whose
// historical average is undefined are omitted, not defaulted.
const (
	recCategoryWeight = 0.3
	recAreaWeight     = 0.2
	recVolumeWeight   = 0.2
	recPriceWeight    = 0.3
)

// Recommender scores open jobs against a driver's learned profile.
type Recommender struct {
	cfg config.MatchingConfig
}

func NewRecommender(cfg config.MatchingConfig) *Recommender {
	return &Recommender{cfg: cfg}
}

// BuildProfile derives a PreferenceProfile from completed-job history.
// Empty history yields empty frequency maps and zero averages.
func BuildProfile(history []job.Job) PreferenceProfile {
	p := PreferenceProfile{
		CategoryCount: make(map[string]int),
		AreaCount:     make(map[string]int),
		JobCount:      len(history),
	}
	if len(history) == 0 {
		return p
	}

	var volumeSum, priceSum float64
	for _, j := range history {
		if j.Category != "" {
			p.CategoryCount[j.Category]++
		}
		if j.Pickup != nil {
			p.AreaCount[location.AreaKey(*j.Pickup)]++
		}
		volumeSum += j.VolumeL
		priceSum += float64(j.Price.Amount)
	}
	p.AvgVolumeL = volumeSum / float64(len(history))
	p.AvgPrice = priceSum / float64(len(history))
	return p
}

// Recommend scores the open pool against the profile, drops everything under
// the minimum-score floor, and returns at most limit entries sorted
// descending. This is the one path in the engine that enforces a score floor
// itself.
func (r *Recommender) Recommend(profile PreferenceProfile, pool []job.Job, driverID types.ID, limit int) []JobScore {
	var scores []JobScore
	for _, j := range pool {
		if j.Status != job.StatusOpen {
			continue
		}
		sc := r.scoreAgainstProfile(j, profile, driverID)
		if sc.Score < r.cfg.RecommendMinScore {
			continue
		}
		scores = append(scores, sc)
	}
	sortScores(scores)
	return truncateScores(scores, limit)
}

func (r *Recommender) scoreAgainstProfile(j job.Job, p PreferenceProfile, driverID types.ID) JobScore {
	sc := JobScore{
		JobID:        j.ID,
		DriverID:     driverID,
		JobCreatedAt: j.CreatedAt,
	}

	// Category familiarity: any history in this category earns the full
	// weight.
	if p.CategoryCount[j.Category] > 0 {
		sc.Score += recCategoryWeight
		sc.Reasons = append(sc.Reasons, fmt.Sprintf("worked %s jobs before", j.Category))
	}

	// Area familiarity, keyed by the coarse service-area grid cell.
	if j.Pickup != nil && p.AreaCount[location.AreaKey(*j.Pickup)] > 0 {
		sc.Score += recAreaWeight
		sc.Reasons = append(sc.Reasons, "familiar service area")
	}

	// Volume similarity to the historical average; omitted when the average
	// is undefined.
	if p.AvgVolumeL > 0 {
		similarity := clamp01(1 - abs(j.VolumeL-p.AvgVolumeL)/p.AvgVolumeL)
		if similarity > 0 {
			sc.Reasons = append(sc.Reasons, fmt.Sprintf("typical volume ~%.0fL", p.AvgVolumeL))
		}
		sc.Score += recVolumeWeight * similarity
	}

	// Price ratio versus the historical average: at or above average earns
	// the full weight, below average scales proportionally.
	if p.AvgPrice > 0 {
		ratio := float64(j.Price.Amount) / p.AvgPrice
		if ratio >= 1 {
			sc.Score += recPriceWeight
			sc.Reasons = append(sc.Reasons, "pays above your average")
		} else if ratio > 0 {
			sc.Score += recPriceWeight * ratio
		}
	}

	sc.Score = clamp01(sc.Score)
	return sc
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
