package interfaces

import (
	"context"

	"stagefront/internal/models"
)

// EventRepository persists the event aggregate. Create and Update run the row
// write plus the full artist-link and stop replacement in one transaction.
type EventRepository interface {
	Create(ctx context.Context, agg *models.NormalizedEvent) (*models.Event, error)
	Update(ctx context.Context, agg *models.NormalizedEvent) (*models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.EventWithDetails, error)
	List(ctx context.Context, limit int, offset int) ([]*models.EventWithVenue, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
}
