package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"stagefront/internal/interfaces"
	"stagefront/internal/models"
	"stagefront/internal/repository"
)

type PublicHandler struct {
	events    interfaces.PublicEventRepository
	galleries repository.GalleryRepository
	djs       repository.DJRepository

	// now is swapped out in tests.
	now func() time.Time
}

func NewPublicHandler(events interfaces.PublicEventRepository, galleries repository.GalleryRepository, djs repository.DJRepository) *PublicHandler {
	return &PublicHandler{
		events:    events,
		galleries: galleries,
		djs:       djs,
		now:       time.Now,
	}
}

// publicEvent decorates an event projection with its derived status label.
type publicEvent struct {
	*models.EventWithVenue
	Status models.EventStatus `json:"status"`
}

type publicEventDetail struct {
	*models.EventWithDetails
	Status models.EventStatus `json:"status"`
}

// decorate labels each event. The featured slot is positional: it belongs to
// the first entry of the full published list sorted ascending by start time.
func decorate(events []*models.EventWithVenue, featuredID int64, now time.Time) []publicEvent {
	out := make([]publicEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, publicEvent{
			EventWithVenue: ev,
			Status:         models.DeriveStatus(ev.TicketURL, ev.StartTime, now, ev.ID == featuredID),
		})
	}
	return out
}

// featuredEventID returns the id of the soonest upcoming published event, or
// zero when nothing upcoming exists.
func featuredEventID(events []*models.EventWithVenue, now time.Time) int64 {
	for _, ev := range events {
		if !ev.StartTime.Before(now) {
			return ev.ID
		}
	}
	return 0
}

func (h *PublicHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListPublished(r.Context())
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	now := h.now().UTC()
	writeJSON(w, http.StatusOK, decorate(events, featuredEventID(events, now), now))
}

func (h *PublicHandler) ListUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	now := h.now().UTC()
	events, err := h.events.ListUpcoming(r.Context(), now)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	writeJSON(w, http.StatusOK, decorate(events, featuredEventID(events, now), now))
}

// GetFeaturedEvent returns the soonest upcoming published event, or null when
// nothing is upcoming.
func (h *PublicHandler) GetFeaturedEvent(w http.ResponseWriter, r *http.Request) {
	now := h.now().UTC()
	events, err := h.events.ListUpcoming(r.Context(), now)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	if len(events) == 0 {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	writeJSON(w, http.StatusOK, publicEvent{
		EventWithVenue: events[0],
		Status:         models.DeriveStatus(events[0].TicketURL, events[0].StartTime, now, true),
	})
}

func (h *PublicHandler) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "event slug is required")
		return
	}

	event, err := h.events.GetBySlug(r.Context(), slug)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	now := h.now().UTC()
	upcoming, err := h.events.ListUpcoming(r.Context(), now)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	writeJSON(w, http.StatusOK, publicEventDetail{
		EventWithDetails: event,
		Status:           models.DeriveStatus(event.TicketURL, event.StartTime, now, featuredEventID(upcoming, now) == event.ID),
	})
}

// cityEventResponse is the for-city lookup result. Match records which tier
// produced it: "stop" for a tour stop in the city, "venue_city" for an event
// whose venue is in the city, "soonest" for the global fallback.
type cityEventResponse struct {
	Match string                 `json:"match"`
	Stop  *models.EventStop      `json:"stop,omitempty"`
	Event *models.EventWithVenue `json:"event,omitempty"`
	Venue *models.Venue          `json:"venue,omitempty"`
}

// GetEventForCity resolves the best event for a visitor's city through three
// tiers: an upcoming tour stop in that city, then an upcoming event whose
// venue sits in that city, then the globally soonest upcoming event. An empty
// calendar yields 200 with a null body rather than 404.
func (h *PublicHandler) GetEventForCity(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "city is required")
		return
	}
	country := r.URL.Query().Get("country")

	now := h.now().UTC()

	stop, err := h.events.FindUpcomingStopByCity(r.Context(), city, country, now)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		writeRepoError(w, err, "event")
		return
	}
	if stop != nil {
		writeJSON(w, http.StatusOK, cityEventResponse{
			Match: "stop",
			Stop:  &stop.Stop,
			Event: &models.EventWithVenue{Event: stop.Event},
			Venue: stop.Venue,
		})
		return
	}

	// Later tiers use a date-only bound so an event still counts as upcoming
	// for the whole of its start day.
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	upcoming, err := h.events.ListUpcoming(r.Context(), dayStart)
	if err != nil {
		writeRepoError(w, err, "event")
		return
	}

	for _, ev := range upcoming {
		if ev.Venue != nil && strings.EqualFold(ev.Venue.City, city) && (country == "" || strings.EqualFold(ev.Venue.Country, country)) {
			writeJSON(w, http.StatusOK, cityEventResponse{Match: "venue_city", Event: ev, Venue: ev.Venue})
			return
		}
	}

	if len(upcoming) > 0 {
		writeJSON(w, http.StatusOK, cityEventResponse{Match: "soonest", Event: upcoming[0], Venue: upcoming[0].Venue})
		return
	}

	writeJSON(w, http.StatusOK, nil)
}

func (h *PublicHandler) ListGalleries(w http.ResponseWriter, r *http.Request) {
	galleries, err := h.galleries.ListPublic(r.Context())
	if err != nil {
		writeRepoError(w, err, "gallery")
		return
	}
	if galleries == nil {
		galleries = []*models.Gallery{}
	}
	writeJSON(w, http.StatusOK, galleries)
}

func (h *PublicHandler) GetGalleryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "gallery slug is required")
		return
	}

	gallery, err := h.galleries.GetBySlug(r.Context(), slug)
	if err != nil {
		writeRepoError(w, err, "gallery")
		return
	}

	writeJSON(w, http.StatusOK, gallery)
}

func (h *PublicHandler) ListDJs(w http.ResponseWriter, r *http.Request) {
	djs, err := h.djs.ListActive(r.Context())
	if err != nil {
		writeRepoError(w, err, "dj")
		return
	}
	if djs == nil {
		djs = []*models.DJ{}
	}
	writeJSON(w, http.StatusOK, djs)
}
