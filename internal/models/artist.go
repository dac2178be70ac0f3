package models

import "time"

type Artist struct {
	ID         int64     `json:"id"`
	Slug       string    `json:"slug"`
	Name       string    `json:"name" validate:"required"`
	Instagram  *string   `json:"instagram,omitempty"`
	Soundcloud *string   `json:"soundcloud,omitempty"`
	Image      *string   `json:"image,omitempty"`
	ImageKey   *string   `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateArtistRequest struct {
	Name       string  `json:"name" validate:"required"`
	Instagram  *string `json:"instagram,omitempty"`
	Soundcloud *string `json:"soundcloud,omitempty"`
	Image      *string `json:"image,omitempty"`
	ImageKey   *string `json:"image_key,omitempty"`
}
