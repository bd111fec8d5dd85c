// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haulmatch/internal/http/handlers"
	"haulmatch/internal/http/middleware"
	"haulmatch/internal/modules/location"
	"haulmatch/internal/modules/matching"
)

func NewRouter(matchingSvc *matching.Service, locationSvc *location.Service) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	matchHandler := handlers.NewMatchHandler(matchingSvc)
	r.GET("/api/drivers/:id/matches", matchHandler.Matches)
	r.GET("/api/drivers/:id/nearby", matchHandler.Nearby)
	r.GET("/api/drivers/:id/recommendations", matchHandler.Recommendations)

	locationHandler := handlers.NewLocationHandler(locationSvc)
	r.PUT("/api/drivers/:id/location", locationHandler.Update)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
