package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"job_board/internal/config"
	"job_board/internal/repository"
	"job_board/internal/service"
	"job_board/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "jobboard-admin",
	Short: "Job board administration CLI",
	Long:  `Out-of-band maintenance for the job board: schema migration, moderator accounts and statistics.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and seed counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
			return config.AutoMigrate(ctx, pool, logger)
		})
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Moderator account management",
}

var (
	adminLogin    string
	adminPassword string

	logger = zap.NewNop()
)

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a moderator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
			// Token signing is never used here, so the secret can be empty
			auth := service.NewAuthService(
				repository.NewUserRepository(pool),
				repository.NewAdminRepository(pool),
				utils.NewJWTUtil("", 1),
				logger,
			)
			admin, err := auth.ProvisionAdmin(ctx, adminLogin, adminPassword)
			if err != nil {
				return err
			}
			fmt.Printf("Admin %q created with ID %d\n", admin.Login, admin.ID)
			return nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the statistics snapshot as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
			snapshot, err := service.NewStatsService(repository.NewStatsRepository(pool), nil, logger).Snapshot(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snapshot)
		})
	},
}

func withDB(ctx context.Context, fn func(ctx context.Context, pool *pgxpool.Pool) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		return err
	}
	pool, err := config.ConnectDB(ctx, dbCfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, pool)
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statsCmd)

	adminCreateCmd.Flags().StringVar(&adminLogin, "login", "", "moderator login")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "moderator password")
	_ = adminCreateCmd.MarkFlagRequired("login")
	_ = adminCreateCmd.MarkFlagRequired("password")
	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd)
}

func main() {
	if l, err := zap.NewDevelopment(); err == nil {
		logger = l
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found or error loading, relying on environment variables")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
