// README: Driver location update handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haulmatch/internal/modules/location"
	"haulmatch/internal/types"
)

type LocationHandler struct {
	location *location.Service
}

func NewLocationHandler(locationSvc *location.Service) *LocationHandler {
	return &LocationHandler{location: locationSvc}
}

type locationUpdateRequest struct {
	Lat float64 `json:"lat" binding:"required"`
	Lng float64 `json:"lng" binding:"required"`
}

func (h *LocationHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing driver id")
		return
	}

	var req locationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		writeError(c, http.StatusBadRequest, "coordinates out of range")
		return
	}

	err := h.location.Update(c.Request.Context(), location.Update{
		DriverID: types.ID(id),
		Position: types.Point{Lat: req.Lat, Lng: req.Lng},
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "ok"})
}
