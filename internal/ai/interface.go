package ai

import (
	"context"
)

// JobRanker defines the contract for inference-assisted job ranking.
// This interface allows swapping model providers (Gemini, OpenAI, etc.)
// and substituting deterministic fakes in tests.
type JobRanker interface {
	// RankJobs submits a driver profile and job pool and returns the model's
	// ranking. Implementations must honour ctx cancellation; callers bound
	// the call with a timeout and fall back to deterministic scoring on any
	// error.
	RankJobs(ctx context.Context, req RankRequest) ([]RankedJob, error)
}
