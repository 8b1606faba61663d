package handler

import (
	"errors"
	"net/http"
	"strconv"

	"job_board/internal/middleware"
	"job_board/internal/model"
	"job_board/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errorResponder turns service errors into JSON error bodies.
// Internal error text is only echoed when exposeDetails is set.
type errorResponder struct {
	exposeDetails bool
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrAdminRequired):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNoticeNotFound), errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrAdminAlreadyExists),
		errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. fallback is the message
// shown for unexpected (500) errors.
func (r errorResponder) respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status != http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	middleware.RequestLogger(c).Error(fallback, zap.Error(err))
	body := gin.H{"error": fallback}
	if r.exposeDetails {
		body["details"] = err.Error()
	}
	c.JSON(status, body)
}

func (r errorResponder) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseNoticeID(c *gin.Context) (int64, bool) {
	noticeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || noticeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notice ID"})
		return 0, false
	}
	return noticeID, true
}

func requireIdentity(c *gin.Context) (model.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
		return model.Identity{}, false
	}
	return identity, true
}
