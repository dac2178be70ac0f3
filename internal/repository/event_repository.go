package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stagefront/internal/interfaces"
	"stagefront/internal/models"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) interfaces.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, slug, title, tagline, description, start_time, end_time,
	image, image_key, ticket_url, is_tour, is_published, venue_id, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, agg *models.NormalizedEvent) (*models.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create event: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO events (slug, title, tagline, description, start_time, end_time,
			image, image_key, ticket_url, is_tour, is_published, venue_id, created_at, updated_at)
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		  RETURNING id`

	ev := agg.Event
	now := time.Now().UTC()
	err = tx.QueryRowContext(ctx, query,
		ev.Slug, ev.Title, ev.Tagline, ev.Description, ev.StartTime, ev.EndTime,
		ev.Image, ev.ImageKey, ev.TicketURL, ev.IsTour, ev.IsPublished, ev.VenueID, now,
	).Scan(&ev.ID)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	ev.CreatedAt = now
	ev.UpdatedAt = now

	if err := replaceArtists(ctx, tx, ev.ID, agg.Artists); err != nil {
		return nil, err
	}
	if err := replaceStops(ctx, tx, ev.ID, ev.IsTour, agg.Stops); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create event: %w", err)
	}
	return &ev, nil
}

func (r *eventRepository) Update(ctx context.Context, agg *models.NormalizedEvent) (*models.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update event: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE events SET slug = $1, title = $2, tagline = $3, description = $4,
			start_time = $5, end_time = $6, image = $7, image_key = $8, ticket_url = $9,
			is_tour = $10, is_published = $11, venue_id = $12, updated_at = $13
		  WHERE id = $14`

	ev := agg.Event
	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx, query,
		ev.Slug, ev.Title, ev.Tagline, ev.Description, ev.StartTime, ev.EndTime,
		ev.Image, ev.ImageKey, ev.TicketURL, ev.IsTour, ev.IsPublished, ev.VenueID, now, ev.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, sql.ErrNoRows
	}
	ev.UpdatedAt = now

	if err := replaceArtists(ctx, tx, ev.ID, agg.Artists); err != nil {
		return nil, err
	}
	if err := replaceStops(ctx, tx, ev.ID, ev.IsTour, agg.Stops); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update event: %w", err)
	}
	return &ev, nil
}

// replaceArtists is a full replace of the lineup, never a merge. Callers
// resubmit the complete desired set on every save.
func replaceArtists(ctx context.Context, tx *sql.Tx, eventID int64, artists []models.EventArtistLink) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_artists WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("clear event artists: %w", err)
	}
	for _, a := range artists {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO event_artists (event_id, artist_id, order_index) VALUES ($1, $2, $3)`,
			eventID, a.ArtistID, a.OrderIndex,
		)
		if err != nil {
			return fmt.Errorf("insert event artist: %w", err)
		}
	}
	return nil
}

// replaceStops deletes all stops for the event and reinserts the submitted
// set. Stops are only persisted for tours.
func replaceStops(ctx context.Context, tx *sql.Tx, eventID int64, isTour bool, stops []models.EventStop) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_stops WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("clear event stops: %w", err)
	}
	if !isTour {
		return nil
	}
	for _, s := range stops {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO event_stops (event_id, city, country, venue_id, start_time, end_time, ticket_url, order_index)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			eventID, s.City, s.Country, s.VenueID, s.StartTime, s.EndTime, s.TicketURL, s.OrderIndex,
		)
		if err != nil {
			return fmt.Errorf("insert event stop: %w", err)
		}
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*models.EventWithDetails, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var details models.EventWithDetails
	ev, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	details.Event = *ev

	if err := r.loadRelations(ctx, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (r *eventRepository) loadRelations(ctx context.Context, details *models.EventWithDetails) error {
	if details.VenueID != nil {
		venue, err := scanVenue(r.db.QueryRowContext(ctx,
			`SELECT `+venueColumns+` FROM venues WHERE id = $1`, *details.VenueID))
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("get event venue: %w", err)
		}
		details.Venue = venue
	}

	artistRows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.slug, a.name, a.instagram, a.soundcloud, a.image, a.image_key, a.created_at, a.updated_at
		 FROM artists a
		 JOIN event_artists ea ON a.id = ea.artist_id
		 WHERE ea.event_id = $1
		 ORDER BY ea.order_index`, details.ID)
	if err != nil {
		return fmt.Errorf("get event artists: %w", err)
	}
	defer artistRows.Close()

	for artistRows.Next() {
		artist, err := scanArtistRow(artistRows)
		if err != nil {
			return fmt.Errorf("scan event artist: %w", err)
		}
		details.Artists = append(details.Artists, *artist)
	}
	if err := artistRows.Err(); err != nil {
		return fmt.Errorf("iterate event artists: %w", err)
	}

	stops, err := queryStops(ctx, r.db, details.ID)
	if err != nil {
		return err
	}
	details.Stops = stops
	return nil
}

func queryStops(ctx context.Context, db *sql.DB, eventID int64) ([]models.EventStop, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, event_id, city, country, venue_id, start_time, end_time, ticket_url, order_index
		 FROM event_stops WHERE event_id = $1 ORDER BY order_index`, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event stops: %w", err)
	}
	defer rows.Close()

	var stops []models.EventStop
	for rows.Next() {
		var s models.EventStop
		var venueID sql.NullInt64
		var ticketURL sql.NullString
		if err := rows.Scan(&s.ID, &s.EventID, &s.City, &s.Country, &venueID, &s.StartTime, &s.EndTime, &ticketURL, &s.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan event stop: %w", err)
		}
		if venueID.Valid {
			s.VenueID = &venueID.Int64
		}
		if ticketURL.Valid {
			s.TicketURL = &ticketURL.String
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

func (r *eventRepository) List(ctx context.Context, limit int, offset int) ([]*models.EventWithVenue, error) {
	query := `SELECT e.id, e.slug, e.title, e.tagline, e.description, e.start_time, e.end_time,
			e.image, e.image_key, e.ticket_url, e.is_tour, e.is_published, e.venue_id, e.created_at, e.updated_at,
			v.id, v.slug, v.name, v.city, v.country
		  FROM events e
		  LEFT JOIN venues v ON e.venue_id = v.id
		  ORDER BY e.start_time DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*models.EventWithVenue
	for rows.Next() {
		ev, err := scanEventWithVenueRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *eventRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

// Delete removes the event row; stops and artist links go with it via the
// cascading foreign keys. Poster cleanup happens in the handler beforehand.
func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
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

func (r *eventRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM events WHERE slug = $1 AND id != $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check event slug: %w", err)
	}
	return exists, nil
}
