package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sikhmentors/directory-api/internal/models"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
	"go.uber.org/zap"
)

const mentorColumns = `id, name, email, university, job_title, employer,
	area_professional_focus, area_sikhi_focus, undergraduate, post_graduate,
	graduation_year, location, favourite_kirtani, favourite_show, favourite_food,
	favourite_hobby, photo_url, bio, created_at, updated_at`

// MentorRepository persists mentors in PostgreSQL
type MentorRepository struct {
	db DBTX
}

// NewMentorRepository creates a new mentor repository
func NewMentorRepository(db DBTX) *MentorRepository {
	return &MentorRepository{db: db}
}

// buildListQuery renders the listing SQL. Substring filters use strpos so
// user input never acts as a LIKE pattern.
func buildListQuery(filter models.MentorFilter) (string, []any) {
	var where []string
	var args []any

	substr := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, fmt.Sprintf("strpos(lower(%s), lower($%d)) > 0", column, len(args)))
	}
	substr("university", filter.University)
	substr("location", filter.Location)
	substr("job_title", filter.Program)

	if filter.GraduationYear.Valid {
		args = append(args, filter.GraduationYear.Year)
		where = append(where, "graduation_year = $"+strconv.Itoa(len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(mentorColumns)
	b.WriteString(" FROM mentors")
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY id ASC")

	return b.String(), args
}

func scanMentor(row pgx.Row) (*models.Mentor, error) {
	var m models.Mentor
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.University, &m.JobTitle, &m.Employer,
		&m.AreaProfessionalFocus, &m.AreaSikhiFocus, &m.Undergraduate, &m.PostGraduate,
		&m.GraduationYear, &m.Location, &m.FavouriteKirtani, &m.FavouriteShow, &m.FavouriteFood,
		&m.FavouriteHobby, &m.PhotoURL, &m.Bio, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// writeArgs orders input fields to match the insert and update statements
func writeArgs(in *models.MentorInput) []any {
	return []any{
		in.Name, in.Email, in.University, in.JobTitle, in.Employer,
		in.AreaProfessionalFocus, in.AreaSikhiFocus, in.Undergraduate, in.PostGraduate,
		in.GraduationYear, in.Location, in.FavouriteKirtani, in.FavouriteShow, in.FavouriteFood,
		in.FavouriteHobby, in.PhotoURL, in.Bio,
	}
}

// List returns the mentors matching filter
func (r *MentorRepository) List(ctx context.Context, filter models.MentorFilter) (mentors []*models.Mentor, err error) {
	start := time.Now()
	defer func() {
		observe("listMentors", start, err, zap.Int("count", len(mentors)), zap.Bool("filtered", !filter.IsEmpty()))
	}()

	query, args := buildListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mentors: %w", err)
	}
	defer rows.Close()

	mentors = make([]*models.Mentor, 0)
	for rows.Next() {
		m, scanErr := scanMentor(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan mentor row: %w", scanErr)
		}
		mentors = append(mentors, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mentor rows: %w", err)
	}

	return mentors, nil
}

// GetByID fetches one mentor
func (r *MentorRepository) GetByID(ctx context.Context, id int64) (m *models.Mentor, err error) {
	start := time.Now()
	defer func() { observe("getMentorByID", start, err, zap.Int64("mentor_id", id)) }()

	m, err = scanMentor(r.db.QueryRow(ctx, "SELECT "+mentorColumns+" FROM mentors WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("mentor")
		}
		return nil, fmt.Errorf("failed to get mentor: %w", err)
	}
	return m, nil
}

// Create inserts a mentor after checking the required fields
func (r *MentorRepository) Create(ctx context.Context, in *models.MentorInput) (id int64, err error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	start := time.Now()
	defer func() { observe("createMentor", start, err, zap.Int64("mentor_id", id)) }()

	query := `
		INSERT INTO mentors (
			name, email, university, job_title, employer,
			area_professional_focus, area_sikhi_focus, undergraduate, post_graduate,
			graduation_year, location, favourite_kirtani, favourite_show, favourite_food,
			favourite_hobby, photo_url, bio
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`
	if err = r.db.QueryRow(ctx, query, writeArgs(in)...).Scan(&id); err != nil {
		return 0, mapWriteError(err, "mentor")
	}
	return id, nil
}

// Update replaces every non-id field of mentor id
func (r *MentorRepository) Update(ctx context.Context, id int64, in *models.MentorInput) (err error) {
	if err := in.Validate(); err != nil {
		return err
	}

	start := time.Now()
	defer func() { observe("updateMentor", start, err, zap.Int64("mentor_id", id)) }()

	query := `
		UPDATE mentors SET
			name = $1, email = $2, university = $3, job_title = $4, employer = $5,
			area_professional_focus = $6, area_sikhi_focus = $7, undergraduate = $8,
			post_graduate = $9, graduation_year = $10, location = $11,
			favourite_kirtani = $12, favourite_show = $13, favourite_food = $14,
			favourite_hobby = $15, photo_url = $16, bio = $17, updated_at = NOW()
		WHERE id = $18
	`
	tag, err := r.db.Exec(ctx, query, append(writeArgs(in), id)...)
	if err != nil {
		return mapWriteError(err, "mentor")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundError("mentor")
	}
	return nil
}

// Delete removes mentor id permanently
func (r *MentorRepository) Delete(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { observe("deleteMentor", start, err, zap.Int64("mentor_id", id)) }()

	tag, err := r.db.Exec(ctx, "DELETE FROM mentors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete mentor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundError("mentor")
	}
	return nil
}
