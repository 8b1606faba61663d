package handler

import (
	"net/http"

	"job_board/internal/model"
	"job_board/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the visit and click counters
type StatsHandler struct {
	errorResponder
	stats service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(stats service.StatsService, exposeDetails bool) *StatsHandler {
	return &StatsHandler{errorResponder: errorResponder{exposeDetails: exposeDetails}, stats: stats}
}

// HomeVisit is called by the landing page on load and reports the new
// visit count. The count is 0 when the counter could not be updated.
func (h *StatsHandler) HomeVisit(c *gin.Context) {
	count := h.stats.Increment(c.Request.Context(), model.StatHomeVisits)
	c.JSON(http.StatusOK, gin.H{"message": "Visit recorded", "home_visits": count})
}

func (h *StatsHandler) TrackCallClick(c *gin.Context) {
	h.stats.Increment(c.Request.Context(), model.StatCallButtonClicks)
	c.JSON(http.StatusOK, gin.H{"message": "Click recorded"})
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	snapshot, err := h.stats.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to get statistics")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// RegisterStatsRoutes registers the counter routes; only the snapshot is admin-only
func (h *StatsHandler) RegisterStatsRoutes(rg gin.IRouter, authMW, adminMW gin.HandlerFunc) {
	rg.GET("/home_visits", h.HomeVisit)
	rg.POST("/stats/track-call-click", h.TrackCallClick)
	rg.GET("/stats", authMW, adminMW, h.GetStats)
}
