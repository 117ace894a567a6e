// internal/handlers/analytics/analytics_handler.go
package analytics

import (
	"net/http"

	"aquafarm-service/internal/pkg/response"
	analyticsService "aquafarm-service/internal/service/analytics"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *analyticsService.Service
}

func NewAnalyticsHandler(svc *analyticsService.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: svc}
}

// GetVisits reports today's visit counter for ?page= (defaults to "plans").
func (h *AnalyticsHandler) GetVisits(c *gin.Context) {
	page := c.DefaultQuery("page", "plans")
	count := h.analyticsService.Visits(c.Request.Context(), page)
	response.Success(c, http.StatusOK, "visit count retrieved", gin.H{
		"page":   page,
		"visits": count,
	})
}

// TrackVisit is route middleware that bumps the page counter before the
// handler runs. Counting never blocks or fails the request.
func TrackVisit(svc *analyticsService.Service, page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.CountVisit(c.Request.Context(), page)
		c.Next()
	}
}
