package models

import "time"

type Event struct {
	ID          int64      `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Tagline     *string    `json:"tagline,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	Image       *string    `json:"image,omitempty"`
	ImageKey    *string    `json:"-"`
	TicketURL   *string    `json:"ticket_url,omitempty"`
	IsTour      bool       `json:"is_tour"`
	IsPublished bool       `json:"is_published"`
	VenueID     *int64     `json:"venue_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EventStop is a single leg of a tour. Stops are owned by their event: every
// save replaces the full stop set, there is no stand-alone stop edit.
type EventStop struct {
	ID         int64     `json:"id"`
	EventID    int64     `json:"event_id"`
	City       string    `json:"city"`
	Country    string    `json:"country"`
	VenueID    *int64    `json:"venue_id,omitempty"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	TicketURL  *string   `json:"ticket_url,omitempty"`
	OrderIndex int       `json:"order_index"`
}

// EventArtistLink is one row of the event/artist join table. OrderIndex is the
// lineup position on the public page.
type EventArtistLink struct {
	ArtistID   int64 `json:"artist_id"`
	OrderIndex int   `json:"order_index"`
}

// EventWithVenue is the list projection used by the public queries.
type EventWithVenue struct {
	Event
	Venue *Venue `json:"venue,omitempty"`
}

// EventWithDetails is the full aggregate for the admin and public detail pages.
type EventWithDetails struct {
	Event
	Venue   *Venue      `json:"venue,omitempty"`
	Artists []Artist    `json:"artists"`
	Stops   []EventStop `json:"stops"`
}

// StopWithEvent joins an upcoming tour stop with its owning published event,
// used by the for-city lookup. The stop's own venue, times and ticket URL take
// precedence over the event-level fields.
type StopWithEvent struct {
	Stop  EventStop `json:"stop"`
	Event Event     `json:"event"`
	Venue *Venue    `json:"venue,omitempty"`
}
