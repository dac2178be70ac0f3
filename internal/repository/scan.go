package repository

import (
	"database/sql"

	"github.com/lib/pq"

	"stagefront/internal/models"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var ev models.Event
	var tagline, description, image, imageKey, ticketURL sql.NullString
	var venueID sql.NullInt64

	err := row.Scan(
		&ev.ID, &ev.Slug, &ev.Title, &tagline, &description, &ev.StartTime, &ev.EndTime,
		&image, &imageKey, &ticketURL, &ev.IsTour, &ev.IsPublished, &venueID,
		&ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	ev.Tagline = nullableString(tagline)
	ev.Description = nullableString(description)
	ev.Image = nullableString(image)
	ev.ImageKey = nullableString(imageKey)
	ev.TicketURL = nullableString(ticketURL)
	if venueID.Valid {
		ev.VenueID = &venueID.Int64
	}
	return &ev, nil
}

// scanEventWithVenueRow scans an event left-joined against a slim venue
// projection (id, slug, name, city, country).
func scanEventWithVenueRow(row rowScanner) (*models.EventWithVenue, error) {
	var ev models.EventWithVenue
	var tagline, description, image, imageKey, ticketURL sql.NullString
	var venueID sql.NullInt64
	var vID sql.NullInt64
	var vSlug, vName, vCity, vCountry sql.NullString

	err := row.Scan(
		&ev.ID, &ev.Slug, &ev.Title, &tagline, &description, &ev.StartTime, &ev.EndTime,
		&image, &imageKey, &ticketURL, &ev.IsTour, &ev.IsPublished, &venueID,
		&ev.CreatedAt, &ev.UpdatedAt,
		&vID, &vSlug, &vName, &vCity, &vCountry,
	)
	if err != nil {
		return nil, err
	}

	ev.Tagline = nullableString(tagline)
	ev.Description = nullableString(description)
	ev.Image = nullableString(image)
	ev.ImageKey = nullableString(imageKey)
	ev.TicketURL = nullableString(ticketURL)
	if venueID.Valid {
		ev.VenueID = &venueID.Int64
	}
	if vID.Valid {
		ev.Venue = &models.Venue{
			ID:      vID.Int64,
			Slug:    vSlug.String,
			Name:    vName.String,
			City:    vCity.String,
			Country: vCountry.String,
		}
	}
	return &ev, nil
}

const venueColumns = `id, slug, name, description, address, address_url, city, country,
	images, image_keys, created_at, updated_at`

func scanVenue(row rowScanner) (*models.Venue, error) {
	var v models.Venue
	var description, address, addressURL sql.NullString
	var images, imageKeys pq.StringArray

	err := row.Scan(
		&v.ID, &v.Slug, &v.Name, &description, &address, &addressURL, &v.City, &v.Country,
		&images, &imageKeys, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.Description = nullableString(description)
	v.Address = nullableString(address)
	v.AddressURL = nullableString(addressURL)
	v.Images = images
	v.ImageKeys = imageKeys
	return &v, nil
}

func scanArtistRow(row rowScanner) (*models.Artist, error) {
	var a models.Artist
	var instagram, soundcloud, image, imageKey sql.NullString

	err := row.Scan(&a.ID, &a.Slug, &a.Name, &instagram, &soundcloud, &image, &imageKey, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	a.Instagram = nullableString(instagram)
	a.Soundcloud = nullableString(soundcloud)
	a.Image = nullableString(image)
	a.ImageKey = nullableString(imageKey)
	return &a, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
