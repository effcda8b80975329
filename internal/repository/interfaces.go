package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sikhmentors/directory-api/internal/models"
)

// DBTX is the subset of *pgxpool.Pool the repositories use
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// MentorStore is the persistence contract for mentor records
type MentorStore interface {
	// List returns mentors matching every set filter field, ordered by id
	List(ctx context.Context, filter models.MentorFilter) ([]*models.Mentor, error)

	// GetByID returns a single mentor or ErrNotFound
	GetByID(ctx context.Context, id int64) (*models.Mentor, error)

	// Create inserts a mentor and returns its id
	Create(ctx context.Context, in *models.MentorInput) (int64, error)

	// Update replaces every non-id field; ErrNotFound when no row matches
	Update(ctx context.Context, id int64, in *models.MentorInput) error

	// Delete removes a mentor; ErrNotFound when no row matches
	Delete(ctx context.Context, id int64) error
}

// AdminStore is the persistence contract for admin accounts
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, email, passwordHash string) (*models.Admin, error)
}

var (
	_ MentorStore = (*MentorRepository)(nil)
	_ AdminStore  = (*AdminRepository)(nil)
)
