package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stagefront/internal/interfaces"
	"stagefront/internal/models"
)

type publicEventRepository struct {
	db *sql.DB
}

func NewPublicEventRepository(db *sql.DB) interfaces.PublicEventRepository {
	return &publicEventRepository{db: db}
}

const publicEventSelect = `SELECT e.id, e.slug, e.title, e.tagline, e.description, e.start_time, e.end_time,
		e.image, e.image_key, e.ticket_url, e.is_tour, e.is_published, e.venue_id, e.created_at, e.updated_at,
		v.id, v.slug, v.name, v.city, v.country
	FROM events e
	LEFT JOIN venues v ON e.venue_id = v.id
	WHERE e.is_published = TRUE`

func (r *publicEventRepository) ListPublished(ctx context.Context) ([]*models.EventWithVenue, error) {
	rows, err := r.db.QueryContext(ctx, publicEventSelect+` ORDER BY e.start_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("list published events: %w", err)
	}
	defer rows.Close()

	return collectPublicEvents(rows)
}

func (r *publicEventRepository) ListUpcoming(ctx context.Context, from time.Time) ([]*models.EventWithVenue, error) {
	rows, err := r.db.QueryContext(ctx,
		publicEventSelect+` AND e.start_time >= $1 ORDER BY e.start_time ASC`, from)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	defer rows.Close()

	return collectPublicEvents(rows)
}

func collectPublicEvents(rows *sql.Rows) ([]*models.EventWithVenue, error) {
	var events []*models.EventWithVenue
	for rows.Next() {
		ev, err := scanEventWithVenueRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan published event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *publicEventRepository) GetBySlug(ctx context.Context, slug string) (*models.EventWithDetails, error) {
	ev, err := scanEvent(r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE slug = $1 AND is_published = TRUE`, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get public event by slug: %w", err)
	}

	details := &models.EventWithDetails{Event: *ev}
	inner := &eventRepository{db: r.db}
	if err := inner.loadRelations(ctx, details); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *publicEventRepository) FindUpcomingStopByCity(ctx context.Context, city string, country string, from time.Time) (*models.StopWithEvent, error) {
	query := `SELECT s.id, s.event_id, s.city, s.country, s.venue_id, s.start_time, s.end_time, s.ticket_url, s.order_index,
			e.id, e.slug, e.title, e.tagline, e.description, e.start_time, e.end_time,
			e.image, e.image_key, e.ticket_url, e.is_tour, e.is_published, e.venue_id, e.created_at, e.updated_at
		  FROM event_stops s
		  JOIN events e ON s.event_id = e.id
		  WHERE e.is_published = TRUE
		    AND LOWER(s.city) = LOWER($1)
		    AND ($2 = '' OR LOWER(s.country) = LOWER($2))
		    AND s.start_time >= $3
		  ORDER BY s.start_time ASC
		  LIMIT 1`

	var result models.StopWithEvent
	var stopVenueID sql.NullInt64
	var stopTicketURL sql.NullString
	var tagline, description, image, imageKey, ticketURL sql.NullString
	var eventVenueID sql.NullInt64

	err := r.db.QueryRowContext(ctx, query, city, country, from).Scan(
		&result.Stop.ID, &result.Stop.EventID, &result.Stop.City, &result.Stop.Country,
		&stopVenueID, &result.Stop.StartTime, &result.Stop.EndTime, &stopTicketURL, &result.Stop.OrderIndex,
		&result.Event.ID, &result.Event.Slug, &result.Event.Title, &tagline, &description,
		&result.Event.StartTime, &result.Event.EndTime, &image, &imageKey, &ticketURL,
		&result.Event.IsTour, &result.Event.IsPublished, &eventVenueID,
		&result.Event.CreatedAt, &result.Event.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find upcoming stop by city: %w", err)
	}

	if stopVenueID.Valid {
		result.Stop.VenueID = &stopVenueID.Int64
	}
	result.Stop.TicketURL = nullableString(stopTicketURL)
	result.Event.Tagline = nullableString(tagline)
	result.Event.Description = nullableString(description)
	result.Event.Image = nullableString(image)
	result.Event.ImageKey = nullableString(imageKey)
	result.Event.TicketURL = nullableString(ticketURL)
	if eventVenueID.Valid {
		result.Event.VenueID = &eventVenueID.Int64
	}

	if result.Stop.VenueID != nil {
		venue, err := scanVenue(r.db.QueryRowContext(ctx,
			`SELECT `+venueColumns+` FROM venues WHERE id = $1`, *result.Stop.VenueID))
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("get stop venue: %w", err)
		}
		result.Venue = venue
	}

	return &result, nil
}
