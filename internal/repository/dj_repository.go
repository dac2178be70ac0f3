package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"stagefront/internal/models"
)

type DJRepository interface {
	Create(ctx context.Context, dj *models.DJ) error
	GetByID(ctx context.Context, id int64) (*models.DJ, error)
	GetBySlug(ctx context.Context, slug string) (*models.DJ, error)
	List(ctx context.Context, limit int, offset int) ([]*models.DJ, error)
	Count(ctx context.Context) (int, error)
	// ListActive returns the public roster: active DJs only.
	ListActive(ctx context.Context) ([]*models.DJ, error)
	Update(ctx context.Context, dj *models.DJ) error
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
}

type djRepository struct {
	db *sql.DB
}

func NewDJRepository(db *sql.DB) DJRepository {
	return &djRepository{db: db}
}

const djColumns = `id, slug, name, title, specialty, experience, performances, bio,
	highlights, instagram, soundcloud, image, image_key, is_active, created_at, updated_at`

func scanDJ(row rowScanner) (*models.DJ, error) {
	var d models.DJ
	var title, specialty, experience, performances, bio, instagram, soundcloud, image, imageKey sql.NullString
	var highlights pq.StringArray

	err := row.Scan(
		&d.ID, &d.Slug, &d.Name, &title, &specialty, &experience, &performances, &bio,
		&highlights, &instagram, &soundcloud, &image, &imageKey, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.Title = nullableString(title)
	d.Specialty = nullableString(specialty)
	d.Experience = nullableString(experience)
	d.Performances = nullableString(performances)
	d.Bio = nullableString(bio)
	d.Highlights = highlights
	d.Instagram = nullableString(instagram)
	d.Soundcloud = nullableString(soundcloud)
	d.Image = nullableString(image)
	d.ImageKey = nullableString(imageKey)
	return &d, nil
}

func (r *djRepository) Create(ctx context.Context, dj *models.DJ) error {
	query := `INSERT INTO djs (slug, name, title, specialty, experience, performances, bio,
			highlights, instagram, soundcloud, image, image_key, is_active, created_at, updated_at)
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14) RETURNING id`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		dj.Slug, dj.Name, dj.Title, dj.Specialty, dj.Experience, dj.Performances, dj.Bio,
		pq.Array(dj.Highlights), dj.Instagram, dj.Soundcloud, dj.Image, dj.ImageKey, dj.IsActive, now,
	).Scan(&dj.ID)
	if err != nil {
		return fmt.Errorf("create dj: %w", err)
	}

	dj.CreatedAt = now
	dj.UpdatedAt = now
	return nil
}

func (r *djRepository) GetByID(ctx context.Context, id int64) (*models.DJ, error) {
	dj, err := scanDJ(r.db.QueryRowContext(ctx, `SELECT `+djColumns+` FROM djs WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get dj by id: %w", err)
	}
	return dj, nil
}

func (r *djRepository) GetBySlug(ctx context.Context, slug string) (*models.DJ, error) {
	dj, err := scanDJ(r.db.QueryRowContext(ctx, `SELECT `+djColumns+` FROM djs WHERE slug = $1`, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get dj by slug: %w", err)
	}
	return dj, nil
}

func (r *djRepository) List(ctx context.Context, limit int, offset int) ([]*models.DJ, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+djColumns+` FROM djs ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list djs: %w", err)
	}
	defer rows.Close()

	return collectDJs(rows)
}

func (r *djRepository) ListActive(ctx context.Context) ([]*models.DJ, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+djColumns+` FROM djs WHERE is_active = TRUE ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list active djs: %w", err)
	}
	defer rows.Close()

	return collectDJs(rows)
}

func collectDJs(rows *sql.Rows) ([]*models.DJ, error) {
	var djs []*models.DJ
	for rows.Next() {
		dj, err := scanDJ(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dj: %w", err)
		}
		djs = append(djs, dj)
	}
	return djs, rows.Err()
}

func (r *djRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM djs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count djs: %w", err)
	}
	return count, nil
}

func (r *djRepository) Update(ctx context.Context, dj *models.DJ) error {
	query := `UPDATE djs SET slug = $1, name = $2, title = $3, specialty = $4, experience = $5,
			performances = $6, bio = $7, highlights = $8, instagram = $9, soundcloud = $10,
			image = $11, image_key = $12, is_active = $13, updated_at = $14
		  WHERE id = $15`

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		dj.Slug, dj.Name, dj.Title, dj.Specialty, dj.Experience, dj.Performances, dj.Bio,
		pq.Array(dj.Highlights), dj.Instagram, dj.Soundcloud, dj.Image, dj.ImageKey, dj.IsActive, now, dj.ID,
	)
	if err != nil {
		return fmt.Errorf("update dj: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	dj.UpdatedAt = now
	return nil
}

func (r *djRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM djs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete dj: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *djRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM djs WHERE slug = $1 AND id != $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check dj slug: %w", err)
	}
	return exists, nil
}
