package ai

// DriverSummary is the slice of a driver profile sent to the model.
type DriverSummary struct {
	ID              string   `json:"id"`
	VehicleCapacity float64  `json:"vehicle_capacity_l"`
	Rating          float64  `json:"rating"`
	CompletedJobs   int      `json:"completed_jobs"`
	Categories      []string `json:"preferred_categories,omitempty"`
	Lat             *float64 `json:"lat,omitempty"`
	Lng             *float64 `json:"lng,omitempty"`
}

// JobSummary is one open job in the ranking request payload.
type JobSummary struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	VolumeL  float64 `json:"volume_l"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Urgent   bool    `json:"urgent"`
	Price    float64 `json:"price"`
}

// RankRequest packages a driver and the open-job pool for the model.
type RankRequest struct {
	Driver DriverSummary `json:"driver"`
	Jobs   []JobSummary  `json:"jobs"`
}

// RankedJob is one entry of the model's ranking.
// Score is validated by the caller: entries referencing unknown job ids or
// carrying non-finite scores are discarded, not trusted.
type RankedJob struct {
	JobID   string   `json:"job_id"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}
