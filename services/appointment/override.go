package appointment

import (
	"context"
	"fmt"
	"time"

	"medagenda/models"
	"medagenda/services/realtime"
	"medagenda/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Override forces an appointment into an arbitrary state, skipping the
// normal transition rules. Admin only; every override leaves an audit
// record.
func (s *DefaultAppointmentService) Override(ctx context.Context, id string, to models.AppointmentStatus, actor models.Actor) (*models.Appointment, error) {
	if actor.Role != models.RoleAdmin {
		return nil, utils.NewForbidden("only admins can override appointment state")
	}
	if !to.Valid() {
		return nil, utils.NewValidation(fmt.Sprintf("unknown status: %s", to))
	}

	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := appt.Status

	updated, err := s.Repo.UpdateAppointmentStatus(ctx, appt.ID, to)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if updated == nil {
		return nil, utils.NewNotFound("appointment not found")
	}

	audit := &models.OverrideAudit{
		ID:            uuid.New().String(),
		AppointmentID: updated.ID,
		Actor:         actor.ID,
		From:          from,
		To:            to,
		At:            time.Now(),
	}
	if err := s.AuditRepo.Append(ctx, audit); err != nil {
		// The override already happened; losing the trail is a logged
		// incident, not a rollback.
		utils.GetLogger().Error("failed to record override audit",
			zap.String("appointmentID", updated.ID), zap.Error(err))
	}

	// An override can flip the slot between occupied and free.
	s.Availability.InvalidateCache(ctx, updated.PractitionerID, updated.Date)
	s.Realtime.PushToPractitioner(updated.PractitionerID, realtime.EventAppointmentUpdated, updated)
	if to == models.StatusCancelled {
		s.dispatchEvent(models.EventCancellation, updated)
	} else {
		s.dispatchEvent(models.EventUpdate, updated)
	}
	return updated, nil
}
