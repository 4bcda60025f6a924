package ports

import (
	"context"

	"itinerary-optimizer-service/internal/domain"
)

// Port: a boundary for retrieving attraction reference data from a database.
type AttractionRepository interface {
	// Retrieve all attractions available for itinerary planning.
	ListAttractions(ctx context.Context) ([]*domain.Attraction, error)
}
