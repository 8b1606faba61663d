package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job_board/internal/config"
	"job_board/internal/metrics"
	"job_board/internal/repository"
	"job_board/internal/router"
	"job_board/internal/service"
	"job_board/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Database Connection ---
	ctx := context.Background()
	dbPool, err := config.ConnectDB(ctx, &cfg.DB, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(ctx, dbPool, logger); err != nil {
		logger.Fatal("Failed to auto-migrate database", zap.Error(err))
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)
	m := metrics.New()

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	adminRepo := repository.NewAdminRepository(dbPool)
	noticeRepo := repository.NewNoticeRepository(dbPool)
	statsRepo := repository.NewStatsRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, adminRepo, jwtUtil, logger)
	noticeService := service.NewNoticeService(noticeRepo)
	statsService := service.NewStatsService(statsRepo, m, logger)

	if cfg.InitialAdminLogin != "" {
		_, err := authService.ProvisionAdmin(ctx, cfg.InitialAdminLogin, cfg.InitialAdminPassword)
		if err != nil && !errors.Is(err, service.ErrAdminAlreadyExists) {
			logger.Fatal("Failed to provision initial admin", zap.Error(err))
		}
	}

	// --- Setup Gin Router ---
	engine := router.New(router.Deps{
		Auth:               authService,
		Notices:            noticeService,
		Stats:              statsService,
		Logger:             logger,
		Metrics:            m,
		Health:             dbPool.Ping,
		StaticDir:          cfg.StaticDir,
		ExposeErrorDetails: cfg.ExposeErrorDetails,
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
