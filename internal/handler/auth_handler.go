package handler

import (
	"net/http"

	"job_board/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	errorResponder
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, exposeDetails bool) *AuthHandler {
	return &AuthHandler{errorResponder: errorResponder{exposeDetails: exposeDetails}, service: s}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone_number" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !h.bindJSON(c, &req) {
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req.Name, req.Phone, req.Password)
	if err != nil {
		h.respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user_id": user.ID,
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Phone    string `json:"phone_number" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !h.bindJSON(c, &req) {
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		h.respondError(c, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user_id": user.ID,
		"name":    user.Name,
		"token":   token,
	})
}

// AdminLogin authenticates a moderator account
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !h.bindJSON(c, &req) {
		return
	}

	_, token, err := h.service.AdminLogin(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		h.respondError(c, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin login successful",
		"token":   token,
	})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg gin.IRoutes) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/admin", h.AdminLogin)
}
