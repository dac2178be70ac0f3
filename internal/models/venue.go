package models

import "time"

type Venue struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name" validate:"required"`
	Description *string   `json:"description,omitempty"`
	Address     *string   `json:"address,omitempty"`
	AddressURL  *string   `json:"address_url,omitempty"`
	City        string    `json:"city" validate:"required"`
	Country     string    `json:"country" validate:"required"`
	Images      []string  `json:"images"`
	ImageKeys   []string  `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateVenueRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description,omitempty"`
	Address     *string  `json:"address,omitempty"`
	AddressURL  *string  `json:"address_url,omitempty"`
	City        string   `json:"city" validate:"required"`
	Country     string   `json:"country" validate:"required"`
	Images      []string `json:"images" validate:"max=3"`
	ImageKeys   []string `json:"image_keys" validate:"max=3"`
}
