// README: Match handlers for ranked matches, nearby jobs, and recommendations.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"haulmatch/internal/modules/matching"
	"haulmatch/internal/types"
)

const defaultLimit = 20

type MatchHandler struct {
	matching *matching.Service
}

func NewMatchHandler(matchingSvc *matching.Service) *MatchHandler {
	return &MatchHandler{matching: matchingSvc}
}

type scoredJobResponse struct {
	JobID   string   `json:"job_id"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

func toResponse(scores []matching.JobScore) []scoredJobResponse {
	out := make([]scoredJobResponse, len(scores))
	for i, sc := range scores {
		out[i] = scoredJobResponse{
			JobID:   string(sc.JobID),
			Score:   sc.Score,
			Reasons: sc.Reasons,
		}
	}
	return out
}

func (h *MatchHandler) Matches(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing driver id")
		return
	}

	limit := queryInt(c, "limit", defaultLimit)
	mode := matching.Mode(c.DefaultQuery("mode", string(matching.ModeDeterministic)))
	if mode != matching.ModeDeterministic && mode != matching.ModeAssisted {
		writeError(c, http.StatusBadRequest, "mode must be deterministic or assisted")
		return
	}

	scores, err := h.matching.MatchJobsToDriver(c.Request.Context(), types.ID(id), limit, mode)
	if err != nil {
		writeMatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"matches": toResponse(scores)})
}

func (h *MatchHandler) Nearby(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing driver id")
		return
	}

	radiusKm, err := strconv.ParseFloat(c.DefaultQuery("radius_km", "10"), 64)
	if err != nil || radiusKm <= 0 {
		writeError(c, http.StatusBadRequest, "radius_km must be a positive number")
		return
	}

	scores, err := h.matching.NearbyJobs(c.Request.Context(), types.ID(id), radiusKm)
	if err != nil {
		writeMatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"jobs": toResponse(scores)})
}

func (h *MatchHandler) Recommendations(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing driver id")
		return
	}

	limit := queryInt(c, "limit", defaultLimit)

	scores, err := h.matching.RecommendJobs(c.Request.Context(), types.ID(id), limit)
	if err != nil {
		writeMatchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"recommendations": toResponse(scores)})
}

func queryInt(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
