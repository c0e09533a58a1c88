package auditRepo

import (
	"context"

	"medagenda/models"
)

// AuditRepository persists administrative override records. Overrides are
// the one path that can move an appointment outside the normal transition
// table, so every use leaves a row here.
type AuditRepository interface {
	Append(ctx context.Context, entry *models.OverrideAudit) error
	ListByAppointment(ctx context.Context, appointmentID string) ([]models.OverrideAudit, error)
}
