package repository

import (
	"context"
	"errors"
	"fmt"

	"job_board/internal/model"

	"github.com/jackc/pgx/v5"
)

// AdminRepository defines operations for moderator accounts
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByLogin(ctx context.Context, login string) (*model.Admin, error)
}

type adminRepository struct {
	db DBTX
}

func NewAdminRepository(db DBTX) AdminRepository {
	return &adminRepository{db: db}
}

// Create inserts an admin account. A taken login yields ErrDuplicateKey.
func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	sql := `INSERT INTO admins (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, admin.Login, admin.PasswordHash).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *adminRepository) FindByLogin(ctx context.Context, login string) (*model.Admin, error) {
	admin := &model.Admin{}
	sql := `SELECT id, login, password_hash, created_at FROM admins WHERE login = $1`
	err := r.db.QueryRow(ctx, sql, login).Scan(&admin.ID, &admin.Login, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find admin by login: %w", err)
	}
	return admin, nil
}
