package repository

import (
	"context"
	"errors"
	"fmt"

	"job_board/internal/model"

	"github.com/jackc/pgx/v5"
)

// StatsRepository defines operations on the telemetry counters
type StatsRepository interface {
	Increment(ctx context.Context, key string) (int64, bool, error)
	Counters(ctx context.Context) (map[string]int64, error)
	Totals(ctx context.Context) (*model.Totals, error)
}

type statsRepository struct {
	db DBTX
}

func NewStatsRepository(db DBTX) StatsRepository {
	return &statsRepository{db: db}
}

// Increment bumps a counter atomically and returns its new value.
// It reports false for unknown keys.
func (r *statsRepository) Increment(ctx context.Context, key string) (int64, bool, error) {
	var count int64
	err := r.db.QueryRow(ctx, `UPDATE statistics SET count = count + 1 WHERE stat_key = $1 RETURNING count`, key).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to increment %s: %w", key, err)
	}
	return count, true, nil
}

func (r *statsRepository) Counters(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT stat_key, count FROM statistics`)
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics: %w", err)
	}
	defer rows.Close()

	counters := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan statistics row: %w", err)
		}
		counters[key] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statistics rows: %w", err)
	}
	return counters, nil
}

// Totals counts users, notices and admin-authored notices in one round trip
func (r *statsRepository) Totals(ctx context.Context) (*model.Totals, error) {
	sql := `SELECT
                (SELECT COUNT(*) FROM users),
                (SELECT COUNT(*) FROM notices),
                (SELECT COUNT(*) FROM notices WHERE author_kind = 'admin')`
	totals := &model.Totals{}
	if err := r.db.QueryRow(ctx, sql).Scan(&totals.Users, &totals.Notices, &totals.AdminNotices); err != nil {
		return nil, fmt.Errorf("failed to count totals: %w", err)
	}
	return totals, nil
}
