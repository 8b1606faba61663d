package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"job_board/internal/model"
	"job_board/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// LoadDBConfig loads database configuration from environment variables
func LoadDBConfig() (*DBConfig, error) {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	return &DBConfig{DSN: dsn}, nil
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(ctx context.Context, cfg *DBConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(ctx, cfg.DSN)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				logger.Info("connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		logger.Warn("failed to connect to database, retrying",
			zap.Int("attempt", i+1), zap.Int("max_attempts", maxRetries),
			zap.Duration("retry_in", retryInterval), zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		phone_number TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS admins (
		id SERIAL PRIMARY KEY,
		login TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS notices (
		id BIGSERIAL PRIMARY KEY,
		author_kind VARCHAR(10) NOT NULL CHECK (author_kind IN ('user', 'admin')),
		user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
		description TEXT NOT NULL,
		date TEXT NOT NULL,
		gender VARCHAR(10) NOT NULL CHECK (gender IN ('male', 'female', 'all')),
		phone_number TEXT NOT NULL,
		price NUMERIC(14, 2) NOT NULL CHECK (price > 0),
		location TEXT NOT NULL DEFAULT '',
		job_type VARCHAR(20) NOT NULL DEFAULT '' CHECK (job_type IN ('', 'fullTime', 'partTime', 'contract', 'temporary', 'freelance')),
		status VARCHAR(20) NOT NULL DEFAULT 'process' CHECK (status IN ('process', 'completed', 'denied')),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		CHECK ((author_kind = 'user') = (user_id IS NOT NULL))
	);

	CREATE TABLE IF NOT EXISTS statistics (
		stat_key VARCHAR(50) PRIMARY KEY,
		count BIGINT NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_notices_user_id ON notices(user_id);
	CREATE INDEX IF NOT EXISTS idx_notices_status ON notices(status);
	CREATE INDEX IF NOT EXISTS idx_notices_created_at ON notices(created_at DESC);
`

// AutoMigrate creates tables if they don't exist and seeds the counters
func AutoMigrate(ctx context.Context, db repository.DBTX, logger *zap.Logger) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	for _, key := range model.StatKeys {
		_, err := db.Exec(ctx,
			`INSERT INTO statistics (stat_key, count) VALUES ($1, 0) ON CONFLICT (stat_key) DO NOTHING`, key)
		if err != nil {
			return fmt.Errorf("unable to seed counter %s: %w", key, err)
		}
	}

	logger.Info("AutoMigrate applied successfully")
	return nil
}
