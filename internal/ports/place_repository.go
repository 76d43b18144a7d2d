package ports

import (
	"context"

	"recon-planner-service/internal/domain"
)

// Port: a boundary for retrieving the static place catalog from a data source.
type PlaceRepository interface {
	// Retrieve all catalog places available for planning.
	ListPlaces(ctx context.Context) ([]domain.Place, error)
}
