package handler

import (
	"net/http"

	"job_board/internal/model"
	"job_board/internal/service"

	"github.com/gin-gonic/gin"
)

// NoticeHandler serves the employer and worker facing notice routes
type NoticeHandler struct {
	errorResponder
	notices service.NoticeService
	stats   service.StatsService
}

// NewNoticeHandler creates a new NoticeHandler
func NewNoticeHandler(notices service.NoticeService, stats service.StatsService, exposeDetails bool) *NoticeHandler {
	return &NoticeHandler{
		errorResponder: errorResponder{exposeDetails: exposeDetails},
		notices:        notices,
		stats:          stats,
	}
}

func (h *NoticeHandler) CreateNotice(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req model.NoticeInput
	if !h.bindJSON(c, &req) {
		return
	}

	notice, err := h.notices.Create(c.Request.Context(), identity, req)
	if err != nil {
		h.respondError(c, err, "Failed to create notice")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Notice created and sent for moderation",
		"noticeId": notice.ID,
	})
}

// ListOwnNotices returns the caller's notices in every status
func (h *NoticeHandler) ListOwnNotices(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	notices, err := h.notices.ListOwn(c.Request.Context(), identity)
	if err != nil {
		h.respondError(c, err, "Failed to get notices")
		return
	}
	c.JSON(http.StatusOK, notices)
}

func (h *NoticeHandler) DeleteNotice(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	noticeID, ok := parseNoticeID(c)
	if !ok {
		return
	}

	if err := h.notices.Delete(c.Request.Context(), noticeID, identity); err != nil {
		h.respondError(c, err, "Failed to delete notice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notice deleted successfully"})
}

// WorkerFeed is the public list of approved notices. Each call counts as a
// worker page visit.
func (h *NoticeHandler) WorkerFeed(c *gin.Context) {
	h.stats.Increment(c.Request.Context(), model.StatWorkerVisits)

	notices, err := h.notices.ListPublic(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to get notices")
		return
	}
	c.JSON(http.StatusOK, notices)
}

// RegisterNoticeRoutes registers notice routes. authMW must run before userMW.
func (h *NoticeHandler) RegisterNoticeRoutes(rg gin.IRouter, authMW, userMW gin.HandlerFunc) {
	rg.GET("/worker", h.WorkerFeed)

	userGroup := rg.Group("")
	userGroup.Use(authMW, userMW)
	{
		userGroup.POST("/notices", h.CreateNotice)
		userGroup.GET("/notice", h.ListOwnNotices)
		userGroup.DELETE("/notice/:id", h.DeleteNotice)
	}
}
