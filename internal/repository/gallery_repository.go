package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stagefront/internal/models"
)

type GalleryRepository interface {
	// Create and Update persist the gallery row and its full image set in one
	// transaction. Image order indexes are reassigned densely by the caller.
	Create(ctx context.Context, gallery *models.Gallery, images []models.GalleryImage) error
	Update(ctx context.Context, gallery *models.Gallery, images []models.GalleryImage) error
	GetByID(ctx context.Context, id int64) (*models.GalleryWithImages, error)
	GetBySlug(ctx context.Context, slug string) (*models.GalleryWithImages, error)
	List(ctx context.Context, limit int, offset int) ([]*models.Gallery, error)
	ListPublic(ctx context.Context) ([]*models.Gallery, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
}

type galleryRepository struct {
	db *sql.DB
}

func NewGalleryRepository(db *sql.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

const galleryColumns = `id, slug, title, description, date, cover_image, created_at, updated_at`

func scanGallery(row rowScanner) (*models.Gallery, error) {
	var g models.Gallery
	var description, coverImage sql.NullString

	err := row.Scan(&g.ID, &g.Slug, &g.Title, &description, &g.Date, &coverImage, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}

	g.Description = nullableString(description)
	g.CoverImage = nullableString(coverImage)
	return &g, nil
}

func (r *galleryRepository) Create(ctx context.Context, gallery *models.Gallery, images []models.GalleryImage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create gallery: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO galleries (slug, title, description, date, cover_image, created_at, updated_at)
		  VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`

	now := time.Now().UTC()
	err = tx.QueryRowContext(ctx, query,
		gallery.Slug, gallery.Title, gallery.Description, gallery.Date, gallery.CoverImage, now,
	).Scan(&gallery.ID)
	if err != nil {
		return fmt.Errorf("create gallery: %w", err)
	}
	gallery.CreatedAt = now
	gallery.UpdatedAt = now

	if err := replaceGalleryImages(ctx, tx, gallery.ID, images); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create gallery: %w", err)
	}
	return nil
}

func (r *galleryRepository) Update(ctx context.Context, gallery *models.Gallery, images []models.GalleryImage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update gallery: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE galleries SET slug = $1, title = $2, description = $3, date = $4, cover_image = $5, updated_at = $6
		  WHERE id = $7`

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx, query,
		gallery.Slug, gallery.Title, gallery.Description, gallery.Date, gallery.CoverImage, now, gallery.ID,
	)
	if err != nil {
		return fmt.Errorf("update gallery: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	gallery.UpdatedAt = now

	if err := replaceGalleryImages(ctx, tx, gallery.ID, images); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update gallery: %w", err)
	}
	return nil
}

func replaceGalleryImages(ctx context.Context, tx *sql.Tx, galleryID int64, images []models.GalleryImage) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM gallery_images WHERE gallery_id = $1`, galleryID); err != nil {
		return fmt.Errorf("clear gallery images: %w", err)
	}
	for _, img := range images {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO gallery_images (gallery_id, url, key, caption, order_index)
			 VALUES ($1, $2, $3, $4, $5)`,
			galleryID, img.URL, img.Key, img.Caption, img.OrderIndex,
		)
		if err != nil {
			return fmt.Errorf("insert gallery image: %w", err)
		}
	}
	return nil
}

func (r *galleryRepository) GetByID(ctx context.Context, id int64) (*models.GalleryWithImages, error) {
	gallery, err := scanGallery(r.db.QueryRowContext(ctx,
		`SELECT `+galleryColumns+` FROM galleries WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get gallery by id: %w", err)
	}
	return r.withImages(ctx, gallery)
}

func (r *galleryRepository) GetBySlug(ctx context.Context, slug string) (*models.GalleryWithImages, error) {
	gallery, err := scanGallery(r.db.QueryRowContext(ctx,
		`SELECT `+galleryColumns+` FROM galleries WHERE slug = $1`, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get gallery by slug: %w", err)
	}
	return r.withImages(ctx, gallery)
}

func (r *galleryRepository) withImages(ctx context.Context, gallery *models.Gallery) (*models.GalleryWithImages, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, gallery_id, url, key, caption, order_index
		 FROM gallery_images WHERE gallery_id = $1 ORDER BY order_index`, gallery.ID)
	if err != nil {
		return nil, fmt.Errorf("get gallery images: %w", err)
	}
	defer rows.Close()

	result := &models.GalleryWithImages{Gallery: *gallery}
	for rows.Next() {
		var img models.GalleryImage
		var caption sql.NullString
		if err := rows.Scan(&img.ID, &img.GalleryID, &img.URL, &img.Key, &caption, &img.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan gallery image: %w", err)
		}
		img.Caption = nullableString(caption)
		result.Images = append(result.Images, img)
	}
	return result, rows.Err()
}

func (r *galleryRepository) List(ctx context.Context, limit int, offset int) ([]*models.Gallery, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+galleryColumns+` FROM galleries ORDER BY date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list galleries: %w", err)
	}
	defer rows.Close()

	return collectGalleries(rows)
}

func (r *galleryRepository) ListPublic(ctx context.Context) ([]*models.Gallery, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+galleryColumns+` FROM galleries ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list public galleries: %w", err)
	}
	defer rows.Close()

	return collectGalleries(rows)
}

func collectGalleries(rows *sql.Rows) ([]*models.Gallery, error) {
	var galleries []*models.Gallery
	for rows.Next() {
		gallery, err := scanGallery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gallery: %w", err)
		}
		galleries = append(galleries, gallery)
	}
	return galleries, rows.Err()
}

func (r *galleryRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM galleries").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count galleries: %w", err)
	}
	return count, nil
}

func (r *galleryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM galleries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete gallery: %w", err)
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

func (r *galleryRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM galleries WHERE slug = $1 AND id != $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check gallery slug: %w", err)
	}
	return exists, nil
}
