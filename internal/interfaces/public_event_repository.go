package interfaces

import (
	"context"
	"time"

	"stagefront/internal/models"
)

// PublicEventRepository serves the published-only read projections. All
// listing methods sort ascending by start time.
type PublicEventRepository interface {
	ListPublished(ctx context.Context) ([]*models.EventWithVenue, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]*models.EventWithVenue, error)
	GetBySlug(ctx context.Context, slug string) (*models.EventWithDetails, error)
	// FindUpcomingStopByCity returns the soonest upcoming stop of a published
	// tour in the given city (case-insensitive), or sql.ErrNoRows.
	FindUpcomingStopByCity(ctx context.Context, city string, country string, from time.Time) (*models.StopWithEvent, error)
}
