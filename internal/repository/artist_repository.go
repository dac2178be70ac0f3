package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stagefront/internal/models"
)

type ArtistRepository interface {
	Create(ctx context.Context, artist *models.Artist) error
	GetByID(ctx context.Context, id int64) (*models.Artist, error)
	List(ctx context.Context, limit int, offset int) ([]*models.Artist, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, artist *models.Artist) error
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
}

type artistRepository struct {
	db *sql.DB
}

func NewArtistRepository(db *sql.DB) ArtistRepository {
	return &artistRepository{db: db}
}

const artistColumns = `id, slug, name, instagram, soundcloud, image, image_key, created_at, updated_at`

func (r *artistRepository) Create(ctx context.Context, artist *models.Artist) error {
	query := `INSERT INTO artists (slug, name, instagram, soundcloud, image, image_key, created_at, updated_at)
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		artist.Slug, artist.Name, artist.Instagram, artist.Soundcloud, artist.Image, artist.ImageKey, now,
	).Scan(&artist.ID)
	if err != nil {
		return fmt.Errorf("create artist: %w", err)
	}

	artist.CreatedAt = now
	artist.UpdatedAt = now
	return nil
}

func (r *artistRepository) GetByID(ctx context.Context, id int64) (*models.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists WHERE id = $1`

	artist, err := scanArtistRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get artist by id: %w", err)
	}
	return artist, nil
}

func (r *artistRepository) List(ctx context.Context, limit int, offset int) ([]*models.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	var artists []*models.Artist
	for rows.Next() {
		artist, err := scanArtistRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	return artists, rows.Err()
}

func (r *artistRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM artists").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count artists: %w", err)
	}
	return count, nil
}

func (r *artistRepository) Update(ctx context.Context, artist *models.Artist) error {
	query := `UPDATE artists SET slug = $1, name = $2, instagram = $3, soundcloud = $4,
			image = $5, image_key = $6, updated_at = $7
		  WHERE id = $8`

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		artist.Slug, artist.Name, artist.Instagram, artist.Soundcloud, artist.Image, artist.ImageKey, now, artist.ID,
	)
	if err != nil {
		return fmt.Errorf("update artist: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	artist.UpdatedAt = now
	return nil
}

// Delete removes the artist; event lineups lose the entry via the cascading
// join-table foreign key.
func (r *artistRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM artists WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
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

func (r *artistRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM artists WHERE slug = $1 AND id != $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check artist slug: %w", err)
	}
	return exists, nil
}
