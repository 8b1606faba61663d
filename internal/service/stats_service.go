package service

import (
	"context"
	"fmt"

	"job_board/internal/model"
	"job_board/internal/repository"

	"go.uber.org/zap"
)

// EventRecorder receives every counter increment that reached the store
type EventRecorder interface {
	RecordEvent(key string)
}

// StatsService handles visit and click telemetry
type StatsService interface {
	// Increment returns the new counter value, or 0 when nothing was
	// recorded. It never fails the caller; problems are only logged.
	Increment(ctx context.Context, key string) int64
	Snapshot(ctx context.Context) (*model.StatsSnapshot, error)
}

type statsService struct {
	repo     repository.StatsRepository
	recorder EventRecorder
	logger   *zap.Logger
}

// NewStatsService creates a new StatsService. recorder and logger may be nil.
func NewStatsService(repo repository.StatsRepository, recorder EventRecorder, logger *zap.Logger) StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &statsService{repo: repo, recorder: recorder, logger: logger}
}

func (s *statsService) Increment(ctx context.Context, key string) int64 {
	count, ok, err := s.repo.Increment(ctx, key)
	if err != nil {
		s.logger.Warn("failed to update counter", zap.String("key", key), zap.Error(err))
		return 0
	}
	if !ok {
		s.logger.Warn("unknown statistics key, increment ignored", zap.String("key", key))
		return 0
	}
	if s.recorder != nil {
		s.recorder.RecordEvent(key)
	}
	return count
}

func (s *statsService) Snapshot(ctx context.Context) (*model.StatsSnapshot, error) {
	counters, err := s.repo.Counters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get counters: %w", err)
	}
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}

	return &model.StatsSnapshot{
		HomeVisits:       counters[model.StatHomeVisits],
		WorkerVisits:     counters[model.StatWorkerVisits],
		CallButtonClicks: counters[model.StatCallButtonClicks],
		UserCount:        totals.Users,
		NoticeCount:      totals.Notices,
		AdminNotices:     totals.AdminNotices,
		UserNoticeCount:  totals.Notices - totals.AdminNotices,
	}, nil
}
