package practitionerRepo

import (
	"context"

	"medagenda/models"
)

// PractitionerRepository defines data access for practitioner records.
// Lookups return (nil, nil) when no record matches so callers can map
// absence to their own not-found semantics.
type PractitionerRepository interface {
	Create(ctx context.Context, p *models.Practitioner) error
	GetByID(ctx context.Context, id string) (*models.Practitioner, error)
	List(ctx context.Context) ([]models.Practitioner, error)
	EnsureIndexes() error
}
