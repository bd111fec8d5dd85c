// README: Recommender unit tests covering profile derivation and the score floor.
package matching

import (
	"math"
	"testing"
	"time"

	"haulmatch/internal/config"
	"haulmatch/internal/modules/job"
	"haulmatch/internal/types"
)

func completedJob(category string, pickup *types.Point, volumeL float64, price int64) job.Job {
	done := time.Now().Add(-24 * time.Hour)
	return job.Job{
		ID:          types.ID("hist_" + category),
		Category:    category,
		VolumeL:     volumeL,
		Pickup:      pickup,
		Price:       types.Money{Amount: price, Currency: "GBP"},
		Status:      job.StatusCompleted,
		CreatedAt:   done.Add(-time.Hour),
		CompletedAt: &done,
	}
}

func TestBuildProfile_EmptyHistory(t *testing.T) {
	p := BuildProfile(nil)
	if len(p.CategoryCount) != 0 || len(p.AreaCount) != 0 {
		t.Errorf("empty history must yield empty frequency maps: %v %v", p.CategoryCount, p.AreaCount)
	}
	if p.AvgVolumeL != 0 || p.AvgPrice != 0 {
		t.Errorf("empty history must yield zero averages: %f %f", p.AvgVolumeL, p.AvgPrice)
	}
}

func TestBuildProfile_Averages(t *testing.T) {
	area := &types.Point{Lat: 51.5, Lng: -0.1}
	history := []job.Job{
		completedJob("scrap_metal", area, 100, 200),
		completedJob("organic", area, 300, 400),
	}
	p := BuildProfile(history)
	if p.AvgVolumeL != 200 {
		t.Errorf("avg volume = %f, want 200", p.AvgVolumeL)
	}
	if p.AvgPrice != 300 {
		t.Errorf("avg price = %f, want 300", p.AvgPrice)
	}
	if p.CategoryCount["scrap_metal"] != 1 || p.CategoryCount["organic"] != 1 {
		t.Errorf("unexpected category counts: %v", p.CategoryCount)
	}
}

func TestRecommend_FloorEnforced(t *testing.T) {
	r := NewRecommender(config.DefaultMatchingConfig())
	area := &types.Point{Lat: 51.5, Lng: -0.1}
	profile := BuildProfile([]job.Job{completedJob("scrap_metal", area, 100, 500)})

	pool := []job.Job{
		// Same category, area, volume, better price: strong recommendation.
		openJob("strong", area, 100, 600),
		// Nothing in common with the history: must be dropped by the floor.
		openJob("weak", &types.Point{Lat: 40.0, Lng: 20.0}, 5000, 1),
	}
	pool[0].Category = "scrap_metal"
	pool[1].Category = "hazardous"

	got := r.Recommend(profile, pool, "driver_1", 10)
	for _, sc := range got {
		if sc.Score < config.DefaultMatchingConfig().RecommendMinScore {
			t.Errorf("recommendation %s below floor: %f", sc.JobID, sc.Score)
		}
		if sc.JobID == "weak" {
			t.Error("job with no historical affinity must not be recommended")
		}
	}
	if len(got) != 1 || got[0].JobID != "strong" {
		t.Fatalf("expected exactly the strong job, got %v", got)
	}
	if math.Abs(got[0].Score-1.0) > 1e-9 {
		t.Errorf("full-affinity job should score 1.0, got %f", got[0].Score)
	}
}

func TestRecommend_EmptyHistoryYieldsNothing(t *testing.T) {
	r := NewRecommender(config.DefaultMatchingConfig())
	profile := BuildProfile(nil)
	pool := []job.Job{
		openJob("j1", &types.Point{Lat: 51.5, Lng: -0.1}, 100, 900),
		openJob("j2", nil, 0, 0),
	}
	got := r.Recommend(profile, pool, "driver_1", 10)
	if len(got) != 0 {
		t.Fatalf("no history-weighted term can fire on empty history; got %d recommendations", len(got))
	}
}

func TestRecommend_PriceRatioScaling(t *testing.T) {
	r := NewRecommender(config.DefaultMatchingConfig())
	area := &types.Point{Lat: 51.5, Lng: -0.1}
	profile := BuildProfile([]job.Job{completedJob("scrap_metal", area, 100, 400)})

	halfPrice := openJob("half", area, 100, 200)
	halfPrice.Category = "scrap_metal"
	fullPrice := openJob("full", area, 100, 400)
	fullPrice.Category = "scrap_metal"

	got := r.Recommend(profile, []job.Job{halfPrice, fullPrice}, "driver_1", 10)
	if len(got) != 2 {
		t.Fatalf("expected both jobs above the floor, got %d", len(got))
	}
	if got[0].JobID != "full" {
		t.Fatalf("full-price job must outrank half-price, got %s first", got[0].JobID)
	}
	// The gap is exactly half the price weight.
	if diff := got[0].Score - got[1].Score; math.Abs(diff-recPriceWeight/2) > 1e-9 {
		t.Errorf("expected price gap %f, got %f", recPriceWeight/2, diff)
	}
}

func TestRecommend_VolumeSimilarity(t *testing.T) {
	r := NewRecommender(config.DefaultMatchingConfig())
	area := &types.Point{Lat: 51.5, Lng: -0.1}
	profile := BuildProfile([]job.Job{completedJob("scrap_metal", area, 200, 400)})

	exact := openJob("exact", area, 200, 400)
	exact.Category = "scrap_metal"
	double := openJob("double", area, 400, 400)
	double.Category = "scrap_metal"

	got := r.Recommend(profile, []job.Job{double, exact}, "driver_1", 10)
	if len(got) != 2 || got[0].JobID != "exact" {
		t.Fatalf("volume match must rank first: %v", got)
	}
	if diff := got[0].Score - got[1].Score; math.Abs(diff-recVolumeWeight) > 1e-9 {
		t.Errorf("doubled volume should lose the full volume weight %f, lost %f", recVolumeWeight, diff)
	}
}

func TestRecommend_TruncationAndOrder(t *testing.T) {
	r := NewRecommender(config.DefaultMatchingConfig())
	area := &types.Point{Lat: 51.5, Lng: -0.1}
	profile := BuildProfile([]job.Job{completedJob("scrap_metal", area, 100, 100)})

	var pool []job.Job
	for i, price := range []int64{100, 500, 50, 300, 200} {
		j := openJob(string(rune('a'+i)), area, 100, price)
		j.Category = "scrap_metal"
		pool = append(pool, j)
	}

	got := r.Recommend(profile, pool, "driver_1", 3)
	if len(got) != 3 {
		t.Fatalf("expected truncation to 3, got %d", len(got))
	}
	assertSortedDescending(t, got)
}

func TestRecommend_SkipsNonOpenJobs(t *testing.T) {
	r := NewRecommender(config.DefaultMatchingConfig())
	area := &types.Point{Lat: 51.5, Lng: -0.1}
	profile := BuildProfile([]job.Job{completedJob("scrap_metal", area, 100, 100)})

	claimed := openJob("claimed", area, 100, 500)
	claimed.Category = "scrap_metal"
	claimed.Status = job.StatusClaimed

	got := r.Recommend(profile, []job.Job{claimed}, "driver_1", 10)
	if len(got) != 0 {
		t.Fatalf("claimed jobs must never be recommended, got %v", got)
	}
}
