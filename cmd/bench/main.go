// README: Offline scoring benchmark over synthetic job pools; prints ranking throughput.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"haulmatch/internal/config"
	"haulmatch/internal/modules/driver"
	"haulmatch/internal/modules/job"
	"haulmatch/internal/modules/location"
	"haulmatch/internal/modules/matching"
	"haulmatch/internal/types"
)

func main() {
	poolSize := flag.Int("pool", 1000, "synthetic open jobs per round")
	rounds := flag.Int("rounds", 50, "scoring rounds")
	seed := flag.Int64("seed", 42, "rng seed for reproducible pools")
	flag.Parse()

	cfg := config.DefaultMatchingConfig()
	scorer := matching.NewScorer(location.NewResolver(nil, time.Second), cfg)

	rng := rand.New(rand.NewSource(*seed))
	pool := syntheticPool(rng, *poolSize)
	d := syntheticDriver()
	crit := matching.MatchingCriteria{
		MaxDistanceKm: cfg.DefaultMaxDistanceKm,
		MinRating:     cfg.DefaultMinRating,
		WorkStart:     cfg.DefaultWorkStart,
		WorkEnd:       cfg.DefaultWorkEnd,
	}

	ctx := context.Background()
	start := time.Now()
	var scored int
	for i := 0; i < *rounds; i++ {
		scores := scorer.ScoreAll(ctx, pool, d, crit)
		scored += len(scores)
	}
	elapsed := time.Since(start)

	fmt.Printf("scored %d jobs in %v (%.0f jobs/s, pool=%d rounds=%d)\n",
		scored, elapsed, float64(scored)/elapsed.Seconds(), *poolSize, *rounds)
}

func syntheticDriver() driver.Driver {
	return driver.Driver{
		ID:               "bench_driver",
		Role:             driver.RoleDriver,
		Position:         &types.Point{Lat: 51.50, Lng: -0.10},
		VehicleCapacityL: 400,
		Rating:           4.6,
	}
}

func syntheticPool(rng *rand.Rand, n int) []job.Job {
	categories := []string{"general", "scrap_metal", "organic", "e_waste", "construction"}
	pool := make([]job.Job, n)
	for i := range pool {
		p := types.Point{
			Lat: 51.0 + rng.Float64(),
			Lng: -0.6 + rng.Float64(),
		}
		pool[i] = job.Job{
			ID:        types.ID(fmt.Sprintf("bench_job_%d", i)),
			Category:  categories[rng.Intn(len(categories))],
			VolumeL:   float64(rng.Intn(900) + 50),
			Pickup:    &p,
			Urgent:    rng.Intn(10) == 0,
			Price:     types.Money{Amount: int64(rng.Intn(1500)), Currency: "GBP"},
			Status:    job.StatusOpen,
			CreatedAt: time.Now().Add(-time.Duration(rng.Intn(3600)) * time.Second),
		}
	}
	return pool
}
