package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job_board/internal/model"
	"job_board/internal/repository"
)

// NoticeService defines notice posting and moderation operations
type NoticeService interface {
	Create(ctx context.Context, caller model.Identity, in model.NoticeInput) (*model.Notice, error)
	ListOwn(ctx context.Context, caller model.Identity) ([]model.Notice, error)
	ListPublic(ctx context.Context) ([]model.Notice, error)
	Delete(ctx context.Context, noticeID int64, caller model.Identity) error

	// Admin methods
	Get(ctx context.Context, noticeID int64) (*model.Notice, error)
	Update(ctx context.Context, noticeID int64, in model.AdminNoticeInput) (*model.Notice, error)
	AdminCreate(ctx context.Context, in model.AdminNoticeInput) (*model.Notice, error)
	Approve(ctx context.Context, noticeID int64) error
	AdminNotices(ctx context.Context) ([]model.Notice, error)
	InProgress(ctx context.Context) ([]model.Notice, error)
}

type noticeService struct {
	repo repository.NoticeRepository
}

// NewNoticeService creates a new NoticeService
func NewNoticeService(repo repository.NoticeRepository) NoticeService {
	return &noticeService{repo: repo}
}

func validateNoticeInput(in model.NoticeInput) error {
	if strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Date) == "" ||
		in.Gender == "" || in.Price <= 0 {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if !in.Gender.Valid() {
		return fmt.Errorf("%w: invalid gender value", ErrValidation)
	}
	if in.JobType != "" && !in.JobType.Valid() {
		return fmt.Errorf("%w: invalid job type value", ErrValidation)
	}
	return nil
}

func validateAdminNoticeInput(in model.AdminNoticeInput) error {
	if err := validateNoticeInput(in.NoticeInput); err != nil {
		return err
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	return nil
}

func newNotice(owner model.Owner, status model.NoticeStatus, in model.NoticeInput) *model.Notice {
	return &model.Notice{
		Owner:       owner,
		Description: strings.TrimSpace(in.Description),
		Date:        strings.TrimSpace(in.Date),
		Gender:      in.Gender,
		Price:       float64(in.Price),
		Location:    strings.TrimSpace(in.Location),
		JobType:     in.JobType,
		Status:      status,
	}
}

// Create posts a notice for a user. It starts in process and carries the
// owner's phone number as it was at creation time.
func (s *noticeService) Create(ctx context.Context, caller model.Identity, in model.NoticeInput) (*model.Notice, error) {
	if caller.IsAdmin() {
		// admins have no phone number to copy; they post through AdminCreate
		return nil, fmt.Errorf("%w: admins must post notices from the admin panel", ErrForbidden)
	}
	if err := validateNoticeInput(in); err != nil {
		return nil, err
	}

	notice := newNotice(model.UserOwner(caller.ID), model.NoticeStatusProcess, in)
	notice.UserName = caller.Name
	if err := s.repo.Create(ctx, notice); err != nil {
		if errors.Is(err, repository.ErrOwnerNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create notice in repo: %w", err)
	}
	return notice, nil
}

// ListOwn lists the caller's notices, newest first. For an admin caller
// these are the admin-authored notices.
func (s *noticeService) ListOwn(ctx context.Context, caller model.Identity) ([]model.Notice, error) {
	owner := model.UserOwner(caller.ID)
	if caller.IsAdmin() {
		owner = model.AdminAuthored()
	}
	notices, err := s.repo.FindByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get own notices from repo: %w", err)
	}
	return notices, nil
}

// ListPublic is the worker-facing feed: approved notices only
func (s *noticeService) ListPublic(ctx context.Context) ([]model.Notice, error) {
	notices, err := s.repo.FindByStatus(ctx, model.NoticeStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to get public notices from repo: %w", err)
	}
	return notices, nil
}

// Delete removes a notice if the caller owns it or is an admin
func (s *noticeService) Delete(ctx context.Context, noticeID int64, caller model.Identity) error {
	var (
		deleted bool
		err     error
	)
	if caller.IsAdmin() {
		deleted, err = s.repo.Delete(ctx, noticeID)
	} else {
		deleted, err = s.repo.DeleteOwnedBy(ctx, noticeID, caller.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete notice in repo: %w", err)
	}
	if deleted {
		return nil
	}

	// Nothing was removed: tell a missing notice apart from someone else's
	existing, err := s.repo.FindByID(ctx, noticeID)
	if err != nil {
		return fmt.Errorf("failed to find notice for deletion: %w", err)
	}
	if existing == nil {
		return ErrNoticeNotFound
	}
	return ErrForbidden
}

func (s *noticeService) Get(ctx context.Context, noticeID int64) (*model.Notice, error) {
	notice, err := s.repo.FindByID(ctx, noticeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find notice by ID: %w", err)
	}
	if notice == nil {
		return nil, ErrNoticeNotFound
	}
	return notice, nil
}

// Update overwrites every editable field of a notice. There are no partial
// updates: omitted fields fail validation.
func (s *noticeService) Update(ctx context.Context, noticeID int64, in model.AdminNoticeInput) (*model.Notice, error) {
	if err := validateAdminNoticeInput(in); err != nil {
		return nil, err
	}

	notice := newNotice(model.Owner{}, "", in.NoticeInput)
	notice.ID = noticeID
	notice.PhoneNumber = strings.TrimSpace(in.PhoneNumber)

	updated, err := s.repo.Update(ctx, notice)
	if err != nil {
		return nil, fmt.Errorf("failed to update notice in repo: %w", err)
	}
	if !updated {
		return nil, ErrNoticeNotFound
	}
	return s.Get(ctx, noticeID)
}

// AdminCreate posts a notice on behalf of the moderators. It skips moderation.
func (s *noticeService) AdminCreate(ctx context.Context, in model.AdminNoticeInput) (*model.Notice, error) {
	if err := validateAdminNoticeInput(in); err != nil {
		return nil, err
	}

	notice := newNotice(model.AdminAuthored(), model.NoticeStatusCompleted, in.NoticeInput)
	notice.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if err := s.repo.Create(ctx, notice); err != nil {
		return nil, fmt.Errorf("failed to create admin notice in repo: %w", err)
	}
	return notice, nil
}

// Approve moves a notice from process to completed. Any other current
// status is an invalid transition.
func (s *noticeService) Approve(ctx context.Context, noticeID int64) error {
	updated, err := s.repo.UpdateStatus(ctx, noticeID, model.NoticeStatusProcess, model.NoticeStatusCompleted)
	if err != nil {
		return fmt.Errorf("failed to update notice status: %w", err)
	}
	if updated {
		return nil
	}

	existing, err := s.repo.FindByID(ctx, noticeID)
	if err != nil {
		return fmt.Errorf("failed to find notice for approval: %w", err)
	}
	if existing == nil {
		return ErrNoticeNotFound
	}
	return ErrInvalidTransition
}

// AdminNotices returns completed notices only, like the public feed
func (s *noticeService) AdminNotices(ctx context.Context) ([]model.Notice, error) {
	notices, err := s.repo.FindByStatus(ctx, model.NoticeStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed notices for admin: %w", err)
	}
	return notices, nil
}

// InProgress returns notices awaiting moderation
func (s *noticeService) InProgress(ctx context.Context) ([]model.Notice, error) {
	notices, err := s.repo.FindByStatus(ctx, model.NoticeStatusProcess)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending notices for admin: %w", err)
	}
	return notices, nil
}
