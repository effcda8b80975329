package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sikhmentors/directory-api/internal/models"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
)

// AdminRepository reads and provisions admin accounts
type AdminRepository struct {
	db DBTX
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db DBTX) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByEmail looks an admin up by case-insensitive email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (a *models.Admin, err error) {
	start := time.Now()
	defer func() { observe("getAdminByEmail", start, err) }()

	var admin models.Admin
	err = r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email),
	).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("admin")
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// Create inserts an admin with an already hashed password
func (r *AdminRepository) Create(ctx context.Context, email, passwordHash string) (a *models.Admin, err error) {
	start := time.Now()
	defer func() { observe("createAdmin", start, err) }()

	admin := models.Admin{Email: strings.TrimSpace(email), PasswordHash: passwordHash}
	err = r.db.QueryRow(ctx,
		`INSERT INTO admins (email, password_hash) VALUES ($1, $2) RETURNING id, created_at`,
		admin.Email, admin.PasswordHash,
	).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		return nil, mapWriteError(err, "admin")
	}
	return &admin, nil
}
