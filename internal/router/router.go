package router

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"job_board/internal/handler"
	"job_board/internal/metrics"
	"job_board/internal/middleware"
	"job_board/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the HTTP layer needs. Logger, Metrics, Health and
// StaticDir are optional.
type Deps struct {
	Auth    service.AuthService
	Notices service.NoticeService
	Stats   service.StatsService
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	// Health reports whether the database is reachable
	Health func(ctx context.Context) error

	// StaticDir holds the built front end, served for unmatched GET requests
	StaticDir          string
	ExposeErrorDetails bool
}

// New builds the engine with the full route table
func New(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.TraceMiddleware(), middleware.LoggerMiddleware(logger))
	if d.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(d.Metrics))
	}
	r.Use(middleware.CORSMiddleware())

	authMW := middleware.JWTAuthMiddleware(d.Auth)
	userMW := middleware.UserMiddleware()
	adminMW := middleware.AdminMiddleware()

	handler.NewAuthHandler(d.Auth, d.ExposeErrorDetails).RegisterAuthRoutes(r)
	handler.NewNoticeHandler(d.Notices, d.Stats, d.ExposeErrorDetails).RegisterNoticeRoutes(r, authMW, userMW)
	handler.NewAdminHandler(d.Notices, d.ExposeErrorDetails).RegisterAdminRoutes(r, authMW, adminMW)
	handler.NewStatsHandler(d.Stats, d.ExposeErrorDetails).RegisterStatsRoutes(r, authMW, adminMW)

	r.GET("/health", healthHandler(d.Health))
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.NoRoute(spaFallback(d.StaticDir))
	return r
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := check(ctx); err != nil {
			middleware.RequestLogger(c).Error("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	}
}

// spaFallback serves files from staticDir and index.html for client-side
// routes. Without a static dir every unmatched request is a JSON 404.
func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if staticDir == "" || c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		// Clean against "/" so the path cannot climb out of staticDir
		rel := filepath.Clean("/" + strings.TrimPrefix(c.Request.URL.Path, "/"))
		file := filepath.Join(staticDir, rel)
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}
