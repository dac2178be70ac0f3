package models

import "time"

// DJ is a roster profile, distinct from a bookable Artist. Only active DJs are
// visible on the public roster.
type DJ struct {
	ID           int64     `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name" validate:"required"`
	Title        *string   `json:"title,omitempty"`
	Specialty    *string   `json:"specialty,omitempty"`
	Experience   *string   `json:"experience,omitempty"`
	Performances *string   `json:"performances,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Highlights   []string  `json:"highlights"`
	Instagram    *string   `json:"instagram,omitempty"`
	Soundcloud   *string   `json:"soundcloud,omitempty"`
	Image        *string   `json:"image,omitempty"`
	ImageKey     *string   `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateDJRequest struct {
	Name         string   `json:"name" validate:"required"`
	Title        *string  `json:"title,omitempty"`
	Specialty    *string  `json:"specialty,omitempty"`
	Experience   *string  `json:"experience,omitempty"`
	Performances *string  `json:"performances,omitempty"`
	Bio          *string  `json:"bio,omitempty"`
	Highlights   []string `json:"highlights"`
	Instagram    *string  `json:"instagram,omitempty"`
	Soundcloud   *string  `json:"soundcloud,omitempty"`
	Image        *string  `json:"image,omitempty"`
	ImageKey     *string  `json:"image_key,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}
