package models

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// StopParseMode controls what happens to a tour-stop slot with some but not
// all of its required fields filled in. The admin form submits draft rows, so
// the default is to drop them silently; strict mode surfaces them instead.
type StopParseMode int

const (
	StopParseLenient StopParseMode = iota
	StopParseStrict
)

// ValidationError is a required-field failure detected before any write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// EventForm is the parsed admin event form, prior to validation. Arrays come
// in as indexed flat keys (stops[0][city], artists[1][id], ...).
type EventForm struct {
	ID          int64
	Slug        string
	Title       string
	Tagline     *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Image       *string
	ImageKey    *string
	TicketURL   *string
	IsTour      bool
	IsPublished bool
	VenueID     *int64
	Artists     []EventArtistLink
	Stops       []EventStop
}

// NormalizedEvent is a validated aggregate ready for persistence.
type NormalizedEvent struct {
	Event   Event
	Artists []EventArtistLink
	Stops   []EventStop
}

// ParseEventForm reads the flat indexed form surface into an EventForm.
// Artist and stop slots are walked from index 0 until the first missing index.
func ParseEventForm(values url.Values, mode StopParseMode) (*EventForm, error) {
	form := &EventForm{
		Slug:        values.Get("slug"),
		Title:       values.Get("title"),
		Tagline:     optionalString(values.Get("tagline")),
		Description: optionalString(values.Get("description")),
		Image:       optionalString(values.Get("image")),
		ImageKey:    optionalString(values.Get("imageKey")),
		TicketURL:   optionalString(values.Get("ticketUrl")),
		IsTour:      parseFormBool(values.Get("isTour")),
		IsPublished: parseFormBool(values.Get("isPublished")),
	}

	if raw := values.Get("eventId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &ValidationError{Msg: "invalid eventId"}
		}
		form.ID = id
	}

	if raw := values.Get("venueId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &ValidationError{Msg: "invalid venueId"}
		}
		form.VenueID = &id
	}

	start, err := parseFormTime(values.Get("startTime"))
	if err != nil {
		return nil, &ValidationError{Msg: "invalid startTime"}
	}
	form.StartTime = start

	end, err := parseFormTime(values.Get("endTime"))
	if err != nil {
		return nil, &ValidationError{Msg: "invalid endTime"}
	}
	form.EndTime = end

	for i := 0; ; i++ {
		raw := values.Get(fmt.Sprintf("artists[%d][id]", i))
		if raw == "" {
			break
		}
		artistID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &ValidationError{Msg: fmt.Sprintf("invalid artist id at index %d", i)}
		}
		order := i
		if rawOrder := values.Get(fmt.Sprintf("artists[%d][orderIndex]", i)); rawOrder != "" {
			if n, err := strconv.Atoi(rawOrder); err == nil {
				order = n
			}
		}
		form.Artists = append(form.Artists, EventArtistLink{ArtistID: artistID, OrderIndex: order})
	}

	stops, err := parseStops(values, mode)
	if err != nil {
		return nil, err
	}
	form.Stops = stops

	return form, nil
}

// parseStops walks stop slots until the first one without a city key. A slot
// is kept only when city, country, startTime and endTime are all non-empty;
// in lenient mode anything else is dropped without complaint.
func parseStops(values url.Values, mode StopParseMode) ([]EventStop, error) {
	var stops []EventStop
	for i := 0; ; i++ {
		cityKey := fmt.Sprintf("stops[%d][city]", i)
		if !values.Has(cityKey) {
			break
		}

		city := values.Get(cityKey)
		country := values.Get(fmt.Sprintf("stops[%d][country]", i))
		rawStart := values.Get(fmt.Sprintf("stops[%d][startTime]", i))
		rawEnd := values.Get(fmt.Sprintf("stops[%d][endTime]", i))

		if city == "" || country == "" || rawStart == "" || rawEnd == "" {
			if mode == StopParseStrict {
				return nil, &ValidationError{Msg: fmt.Sprintf("stop %d is incomplete", i)}
			}
			continue
		}

		start, err := parseFormTime(rawStart)
		if err != nil || start == nil {
			if mode == StopParseStrict {
				return nil, &ValidationError{Msg: fmt.Sprintf("stop %d has an invalid start time", i)}
			}
			continue
		}
		end, err := parseFormTime(rawEnd)
		if err != nil || end == nil {
			if mode == StopParseStrict {
				return nil, &ValidationError{Msg: fmt.Sprintf("stop %d has an invalid end time", i)}
			}
			continue
		}

		stop := EventStop{
			City:       city,
			Country:    country,
			StartTime:  *start,
			EndTime:    *end,
			TicketURL:  optionalString(values.Get(fmt.Sprintf("stops[%d][ticketUrl]", i))),
			OrderIndex: len(stops),
		}

		if raw := values.Get(fmt.Sprintf("stops[%d][venueId]", i)); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				stop.VenueID = &id
			}
		}
		if raw := values.Get(fmt.Sprintf("stops[%d][orderIndex]", i)); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				stop.OrderIndex = n
			}
		}

		stops = append(stops, stop)
	}
	return stops, nil
}

// Normalize applies the required-field gate and derives the event's time
// bounds from its stops where needed. A non-tour event must carry explicit
// times; a tour may instead let its stops supply them (min start, max end).
func (f *EventForm) Normalize() (*NormalizedEvent, error) {
	if f.Slug == "" || f.Title == "" {
		return nil, &ValidationError{Msg: "missing required fields"}
	}

	start := f.StartTime
	end := f.EndTime
	if start == nil || end == nil {
		if !f.IsTour || len(f.Stops) == 0 {
			return nil, &ValidationError{Msg: "missing required fields"}
		}
		if start == nil {
			s := minStopStart(f.Stops)
			start = &s
		}
		if end == nil {
			e := maxStopEnd(f.Stops)
			end = &e
		}
	}

	ev := Event{
		ID:          f.ID,
		Slug:        f.Slug,
		Title:       f.Title,
		Tagline:     f.Tagline,
		Description: f.Description,
		StartTime:   *start,
		EndTime:     *end,
		Image:       f.Image,
		ImageKey:    f.ImageKey,
		TicketURL:   f.TicketURL,
		IsTour:      f.IsTour,
		IsPublished: f.IsPublished,
		VenueID:     f.VenueID,
	}

	stops := f.Stops
	if !f.IsTour {
		stops = nil
	}

	return &NormalizedEvent{Event: ev, Artists: f.Artists, Stops: stops}, nil
}

func minStopStart(stops []EventStop) time.Time {
	min := stops[0].StartTime
	for _, s := range stops[1:] {
		if s.StartTime.Before(min) {
			min = s.StartTime
		}
	}
	return min
}

func maxStopEnd(stops []EventStop) time.Time {
	max := stops[0].EndTime
	for _, s := range stops[1:] {
		if s.EndTime.After(max) {
			max = s.EndTime
		}
	}
	return max
}

// parseFormTime accepts RFC 3339 and the HTML datetime-local format the admin
// form submits. Times without an offset are taken as UTC.
func parseFormTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04", raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, fmt.Errorf("unrecognized time format: %q", raw)
}

func parseFormBool(raw string) bool {
	switch raw {
	case "true", "on", "1":
		return true
	}
	return false
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
