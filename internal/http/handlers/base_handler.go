// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"haulmatch/internal/modules/matching"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeMatchError maps engine sentinels to HTTP statuses. The missing-location
// precondition gets its own status so clients can prompt for a position update
// instead of showing a generic failure.
func writeMatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, matching.ErrDriverNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, matching.ErrNotDriver):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, matching.ErrLocationUnavailable):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
