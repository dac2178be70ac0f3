package models

import "time"

type Gallery struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title" validate:"required"`
	Description *string   `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	// CoverImage is denormalized to the first image's URL at save time.
	CoverImage *string   `json:"cover_image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type GalleryImage struct {
	ID        int64   `json:"id"`
	GalleryID int64   `json:"gallery_id"`
	URL       string  `json:"url"`
	Key       string  `json:"-"`
	Caption   *string `json:"caption,omitempty"`
	// OrderIndex is reassigned densely (0..N-1) on every save.
	OrderIndex int `json:"order_index"`
}

type GalleryWithImages struct {
	Gallery
	Images []GalleryImage `json:"images"`
}
