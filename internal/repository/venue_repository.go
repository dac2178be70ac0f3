package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"stagefront/internal/interfaces"
	"stagefront/internal/models"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int64) (*models.Venue, error)
	GetBySlug(ctx context.Context, slug string) (*models.Venue, error)
	List(ctx context.Context, limit int, offset int) ([]*models.Venue, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, venue *models.Venue) error
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
}

type venueRepository struct {
	db *sql.DB
}

func NewVenueRepository(db *sql.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) Create(ctx context.Context, venue *models.Venue) error {
	query := `INSERT INTO venues (slug, name, description, address, address_url, city, country, images, image_keys, created_at, updated_at)
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10) RETURNING id`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		venue.Slug, venue.Name, venue.Description, venue.Address, venue.AddressURL,
		venue.City, venue.Country, pq.Array(venue.Images), pq.Array(venue.ImageKeys), now,
	).Scan(&venue.ID)
	if err != nil {
		return fmt.Errorf("create venue: %w", err)
	}

	venue.CreatedAt = now
	venue.UpdatedAt = now
	return nil
}

func (r *venueRepository) GetByID(ctx context.Context, id int64) (*models.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`

	venue, err := scanVenue(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get venue by id: %w", err)
	}
	return venue, nil
}

func (r *venueRepository) GetBySlug(ctx context.Context, slug string) (*models.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE slug = $1`

	venue, err := scanVenue(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get venue by slug: %w", err)
	}
	return venue, nil
}

func (r *venueRepository) List(ctx context.Context, limit int, offset int) ([]*models.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	var venues []*models.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, venue)
	}
	return venues, rows.Err()
}

func (r *venueRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM venues").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count venues: %w", err)
	}
	return count, nil
}

func (r *venueRepository) Update(ctx context.Context, venue *models.Venue) error {
	query := `UPDATE venues SET slug = $1, name = $2, description = $3, address = $4, address_url = $5,
			city = $6, country = $7, images = $8, image_keys = $9, updated_at = $10
		  WHERE id = $11`

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		venue.Slug, venue.Name, venue.Description, venue.Address, venue.AddressURL,
		venue.City, venue.Country, pq.Array(venue.Images), pq.Array(venue.ImageKeys), now, venue.ID,
	)
	if err != nil {
		return fmt.Errorf("update venue: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	venue.UpdatedAt = now
	return nil
}

// Delete refuses to remove a venue that still has events pointing at it. The
// guard runs server-side so the admin UI's advisory check cannot be bypassed.
func (r *venueRepository) Delete(ctx context.Context, id int64) error {
	var eventCount int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE venue_id = $1`, id).Scan(&eventCount); err != nil {
		return fmt.Errorf("check venue references: %w", err)
	}
	if eventCount > 0 {
		return &interfaces.DeletionBlockedError{
			Resource: "venue",
			References: map[string]int64{
				"events": eventCount,
			},
		}
	}

	result, err := r.db.ExecContext(ctx, "DELETE FROM venues WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
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

func (r *venueRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM venues WHERE slug = $1 AND id != $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check venue slug: %w", err)
	}
	return exists, nil
}
