package patientRepo

import (
	"context"

	"medagenda/models"
)

// PatientRepository defines data access for patient records. GetByID
// returns (nil, nil) when no record matches.
type PatientRepository interface {
	Create(ctx context.Context, p *models.Patient) error
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	EnsureIndexes() error
}
