package repository

import (
	"context"
	"errors"
	"fmt"

	"job_board/internal/model"

	"github.com/jackc/pgx/v5"
)

// NoticeRepository defines operations for notice data
type NoticeRepository interface {
	Create(ctx context.Context, notice *model.Notice) error
	FindByID(ctx context.Context, id int64) (*model.Notice, error)
	FindByOwner(ctx context.Context, owner model.Owner) ([]model.Notice, error)
	FindByStatus(ctx context.Context, status model.NoticeStatus) ([]model.Notice, error)
	Update(ctx context.Context, notice *model.Notice) (bool, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.NoticeStatus) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteOwnedBy(ctx context.Context, id int64, userID int) (bool, error)
}

type noticeRepository struct {
	db DBTX
}

// NewNoticeRepository creates a new NoticeRepository
func NewNoticeRepository(db DBTX) NoticeRepository {
	return &noticeRepository{db: db}
}

const noticeSelect = `SELECT n.id, n.author_kind, COALESCE(n.user_id, 0), COALESCE(u.name, ''),
            n.description, n.date, n.gender, n.phone_number, n.price, n.location, n.job_type,
            n.status, n.created_at
            FROM notices n LEFT JOIN users u ON n.user_id = u.id`

const noticeOrder = ` ORDER BY n.created_at DESC, n.id DESC`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotice(row rowScanner) (*model.Notice, error) {
	var (
		n                                  model.Notice
		kind, gender, jobType, statusValue string
	)
	err := row.Scan(
		&n.ID, &kind, &n.Owner.UserID, &n.UserName,
		&n.Description, &n.Date, &gender, &n.PhoneNumber, &n.Price, &n.Location, &jobType,
		&statusValue, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.Owner.Kind = model.OwnerKind(kind)
	n.Gender = model.Gender(gender)
	n.JobType = model.JobType(jobType)
	n.Status = model.NoticeStatus(statusValue)
	return &n, nil
}

// Create inserts a notice. For user-owned notices the contact phone is copied
// from the owner's row in the same statement; ErrOwnerNotFound is returned
// when that user no longer exists.
func (r *noticeRepository) Create(ctx context.Context, n *model.Notice) error {
	if n.Owner.IsAdmin() {
		sql := `INSERT INTO notices (author_kind, user_id, description, date, gender, phone_number, price, location, job_type, status)
                VALUES ('admin', NULL, $1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
		err := r.db.QueryRow(ctx, sql,
			n.Description, n.Date, string(n.Gender), n.PhoneNumber, n.Price, n.Location, string(n.JobType), string(n.Status),
		).Scan(&n.ID, &n.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create admin notice: %w", err)
		}
		return nil
	}

	sql := `INSERT INTO notices (author_kind, user_id, description, date, gender, phone_number, price, location, job_type, status)
            SELECT 'user', u.id, $2, $3, $4, u.phone_number, $5, $6, $7, $8 FROM users u WHERE u.id = $1
            RETURNING id, phone_number, created_at`
	err := r.db.QueryRow(ctx, sql,
		n.Owner.UserID, n.Description, n.Date, string(n.Gender), n.Price, n.Location, string(n.JobType), string(n.Status),
	).Scan(&n.ID, &n.PhoneNumber, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOwnerNotFound
		}
		return fmt.Errorf("failed to create notice: %w", err)
	}
	return nil
}

// FindByID retrieves a notice by its ID
func (r *noticeRepository) FindByID(ctx context.Context, id int64) (*model.Notice, error) {
	n, err := scanNotice(r.db.QueryRow(ctx, noticeSelect+` WHERE n.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find notice by ID: %w", err)
	}
	return n, nil
}

// FindByOwner lists notices authored by owner, newest first
func (r *noticeRepository) FindByOwner(ctx context.Context, owner model.Owner) ([]model.Notice, error) {
	if owner.IsAdmin() {
		return r.list(ctx, noticeSelect+` WHERE n.author_kind = 'admin'`+noticeOrder)
	}
	return r.list(ctx, noticeSelect+` WHERE n.author_kind = 'user' AND n.user_id = $1`+noticeOrder, owner.UserID)
}

// FindByStatus lists notices with the given moderation status, newest first
func (r *noticeRepository) FindByStatus(ctx context.Context, status model.NoticeStatus) ([]model.Notice, error) {
	return r.list(ctx, noticeSelect+` WHERE n.status = $1`+noticeOrder, string(status))
}

func (r *noticeRepository) list(ctx context.Context, sql string, args ...any) ([]model.Notice, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notices: %w", err)
	}
	defer rows.Close()

	notices := []model.Notice{}
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notice row: %w", err)
		}
		notices = append(notices, *n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notice rows: %w", err)
	}
	return notices, nil
}

// Update overwrites every editable field. Owner, status and created_at are kept.
func (r *noticeRepository) Update(ctx context.Context, n *model.Notice) (bool, error) {
	sql := `UPDATE notices
            SET description = $1, date = $2, gender = $3, phone_number = $4, price = $5, location = $6, job_type = $7
            WHERE id = $8`
	cmdTag, err := r.db.Exec(ctx, sql,
		n.Description, n.Date, string(n.Gender), n.PhoneNumber, n.Price, n.Location, string(n.JobType), n.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update notice: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// UpdateStatus moves a notice from one status to another in a single
// conditional statement. It reports false when the notice is missing or
// is not currently in the from status.
func (r *noticeRepository) UpdateStatus(ctx context.Context, id int64, from, to model.NoticeStatus) (bool, error) {
	sql := `UPDATE notices SET status = $1 WHERE id = $2 AND status = $3`
	cmdTag, err := r.db.Exec(ctx, sql, string(to), id, string(from))
	if err != nil {
		return false, fmt.Errorf("failed to update notice status: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// Delete removes a notice regardless of owner
func (r *noticeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete notice: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// DeleteOwnedBy removes a notice only if userID authored it
func (r *noticeRepository) DeleteOwnedBy(ctx context.Context, id int64, userID int) (bool, error) {
	sql := `DELETE FROM notices WHERE id = $1 AND author_kind = 'user' AND user_id = $2`
	cmdTag, err := r.db.Exec(ctx, sql, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete notice: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
