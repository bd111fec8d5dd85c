package integration

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"haulmatch/internal/ai"
)

// TestGeminiRankerLive exercises the real inference service end to end. It is
// skipped unless GEMINI_API_KEY is set, so the default test run stays
// hermetic.
func TestGeminiRankerLive(t *testing.T) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set; skipping live inference test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	ranker, err := ai.NewGeminiRanker(ctx, apiKey)
	if err != nil {
		t.Fatalf("gemini init: %v", err)
	}
	defer ranker.Close()

	lat, lng := 51.50, -0.10
	req := ai.RankRequest{
		Driver: ai.DriverSummary{
			ID:              "itest_driver",
			VehicleCapacity: 300,
			Rating:          4.5,
			CompletedJobs:   20,
			Lat:             &lat,
			Lng:             &lng,
		},
		Jobs: []ai.JobSummary{
			{ID: "itest_near", Category: "scrap_metal", VolumeL: 100, Lat: 51.52, Lng: -0.10, Price: 400},
			{ID: "itest_far", Category: "construction", VolumeL: 800, Lat: 53.48, Lng: -2.24, Price: 150},
		},
	}

	ranked, err := ranker.RankJobs(ctx, req)
	if err != nil {
		t.Fatalf("rank jobs: %v", err)
	}
	if len(ranked) == 0 {
		t.Fatal("expected at least one ranked entry")
	}

	known := map[string]bool{"itest_near": true, "itest_far": true}
	for _, entry := range ranked {
		if !known[entry.JobID] {
			t.Errorf("model invented job id %q", entry.JobID)
		}
		if entry.Score < 0 || entry.Score > 1 {
			t.Errorf("entry %s score %f outside [0,1]", entry.JobID, entry.Score)
		}
	}
}
