package handler

import (
	"net/http"

	"job_board/internal/model"
	"job_board/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the moderation panel
type AdminHandler struct {
	errorResponder
	notices service.NoticeService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(notices service.NoticeService, exposeDetails bool) *AdminHandler {
	return &AdminHandler{errorResponder: errorResponder{exposeDetails: exposeDetails}, notices: notices}
}

// ListApproved returns every completed notice
func (h *AdminHandler) ListApproved(c *gin.Context) {
	notices, err := h.notices.AdminNotices(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to get notices")
		return
	}
	c.JSON(http.StatusOK, notices)
}

// ListInProgress returns the moderation queue
func (h *AdminHandler) ListInProgress(c *gin.Context) {
	notices, err := h.notices.InProgress(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to get notices")
		return
	}
	c.JSON(http.StatusOK, notices)
}

func (h *AdminHandler) GetNotice(c *gin.Context) {
	noticeID, ok := parseNoticeID(c)
	if !ok {
		return
	}

	notice, err := h.notices.Get(c.Request.Context(), noticeID)
	if err != nil {
		h.respondError(c, err, "Failed to get notice")
		return
	}
	c.JSON(http.StatusOK, notice)
}

// ApproveNotice publishes a notice that is still in process
func (h *AdminHandler) ApproveNotice(c *gin.Context) {
	noticeID, ok := parseNoticeID(c)
	if !ok {
		return
	}

	if err := h.notices.Approve(c.Request.Context(), noticeID); err != nil {
		h.respondError(c, err, "Failed to update notice status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notice approved"})
}

func (h *AdminHandler) UpdateNotice(c *gin.Context) {
	noticeID, ok := parseNoticeID(c)
	if !ok {
		return
	}

	var req model.AdminNoticeInput
	if !h.bindJSON(c, &req) {
		return
	}

	notice, err := h.notices.Update(c.Request.Context(), noticeID, req)
	if err != nil {
		h.respondError(c, err, "Failed to update notice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notice updated successfully", "notice": notice})
}

func (h *AdminHandler) DeleteNotice(c *gin.Context) {
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

// CreateNotice posts a notice that skips moderation
func (h *AdminHandler) CreateNotice(c *gin.Context) {
	var req model.AdminNoticeInput
	if !h.bindJSON(c, &req) {
		return
	}

	notice, err := h.notices.AdminCreate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create notice")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Notice published",
		"noticeId": notice.ID,
	})
}

// RegisterAdminRoutes registers the moderation routes behind authMW and adminMW
func (h *AdminHandler) RegisterAdminRoutes(rg gin.IRouter, authMW, adminMW gin.HandlerFunc) {
	adminGroup := rg.Group("")
	adminGroup.Use(authMW, adminMW)
	{
		adminGroup.GET("/admin/allnotices", h.ListApproved)
		adminGroup.GET("/admin/inprogress", h.ListInProgress)
		adminGroup.GET("/admin/notice/:id", h.GetNotice)
		adminGroup.PUT("/admin/notice/:id", h.UpdateNotice)
		adminGroup.DELETE("/admin/notice/:id", h.DeleteNotice)
		adminGroup.PUT("/admin/notice/:id/status", h.ApproveNotice)
		adminGroup.POST("/noticesaddadmin", h.CreateNotice)
	}
}
