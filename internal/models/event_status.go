package models

import "time"

// EventStatus is the display label shown on public event cards. It is derived
// at read time and never stored.
type EventStatus string

const (
	StatusComingSoon EventStatus = "Coming Soon"
	StatusPastEvent  EventStatus = "Past Event"
	StatusFeatured   EventStatus = "Featured"
	StatusOnSale     EventStatus = "On Sale"
)

// DeriveStatus labels an event from its ticket link and start time. The
// featured slot is positional: it belongs to the chronologically soonest
// published event, decided by the caller over a freshly sorted list.
func DeriveStatus(ticketURL *string, startTime time.Time, now time.Time, featured bool) EventStatus {
	if ticketURL == nil || *ticketURL == "" {
		return StatusComingSoon
	}
	if startTime.Before(now) {
		return StatusPastEvent
	}
	if featured {
		return StatusFeatured
	}
	return StatusOnSale
}
