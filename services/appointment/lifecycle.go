package appointment

import (
	"context"
	"fmt"

	"medagenda/models"
	"medagenda/services/realtime"
	"medagenda/utils"
)

// Transition advances an appointment through its lifecycle. Each action has
// its own permission rule and precondition; the status write itself is a
// single conditional update in the repository.
func (s *DefaultAppointmentService) Transition(ctx context.Context, id string, action models.TransitionAction, actor models.Actor) (*models.Appointment, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch action {
	case models.ActionArrive:
		return s.arrive(ctx, appt, actor)
	case models.ActionComplete:
		return s.complete(ctx, appt, actor)
	case models.ActionCancel:
		return s.cancel(ctx, appt, actor)
	default:
		return nil, utils.NewValidation(fmt.Sprintf("unknown action: %s", action))
	}
}

// arrive moves agendada -> en_espera. Front desk only: check-in records a
// physical arrival.
func (s *DefaultAppointmentService) arrive(ctx context.Context, appt *models.Appointment, actor models.Actor) (*models.Appointment, error) {
	if actor.Role != models.RoleFrontDesk && actor.Role != models.RoleAdmin {
		return nil, utils.NewForbidden("only front desk can check a patient in")
	}
	if appt.Status != models.StatusScheduled {
		return nil, utils.NewInvalidTransition(fmt.Sprintf("cannot check in an appointment in state %s", appt.Status))
	}

	updated, err := s.Repo.UpdateAppointmentStatus(ctx, appt.ID, models.StatusWaiting)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if updated == nil {
		return nil, utils.NewNotFound("appointment not found")
	}

	s.Realtime.PushToPractitioner(updated.PractitionerID, realtime.EventPatientWaiting, updated)
	return updated, nil
}

// complete moves en_espera -> atendida. Only the practitioner who owns the
// appointment may mark it attended.
func (s *DefaultAppointmentService) complete(ctx context.Context, appt *models.Appointment, actor models.Actor) (*models.Appointment, error) {
	switch actor.Role {
	case models.RoleAdmin:
	case models.RolePractitioner:
		if actor.ID != appt.PractitionerID {
			return nil, utils.NewForbidden("appointment belongs to another practitioner")
		}
	default:
		return nil, utils.NewForbidden("only the attending practitioner can complete an appointment")
	}
	if appt.Status != models.StatusWaiting {
		return nil, utils.NewInvalidTransition(fmt.Sprintf("cannot complete an appointment in state %s", appt.Status))
	}

	updated, err := s.Repo.UpdateAppointmentStatus(ctx, appt.ID, models.StatusCompleted)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if updated == nil {
		return nil, utils.NewNotFound("appointment not found")
	}

	s.Realtime.PushToPractitioner(updated.PractitionerID, realtime.EventAppointmentUpdated, updated)
	s.dispatchEvent(models.EventUpdate, updated)
	return updated, nil
}

// cancel moves any non-terminal state -> cancelada and releases the slot.
// The patient may cancel their own appointment, the practitioner theirs, and
// front desk or admin anyone's.
func (s *DefaultAppointmentService) cancel(ctx context.Context, appt *models.Appointment, actor models.Actor) (*models.Appointment, error) {
	if err := requireOwnershipOrStaff(appt, actor); err != nil {
		return nil, err
	}
	if appt.Status.Terminal() {
		return nil, utils.NewInvalidTransition(fmt.Sprintf("cannot cancel an appointment in state %s", appt.Status))
	}

	updated, err := s.Repo.UpdateAppointmentStatus(ctx, appt.ID, models.StatusCancelled)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if updated == nil {
		return nil, utils.NewNotFound("appointment not found")
	}

	// Cancellation frees the slot again.
	s.Availability.InvalidateCache(ctx, updated.PractitionerID, updated.Date)
	s.Realtime.PushToPractitioner(updated.PractitionerID, realtime.EventAppointmentUpdated, updated)
	s.dispatchEvent(models.EventCancellation, updated)
	return updated, nil
}

// requireOwnershipOrStaff enforces the shared rule for cancel and
// reschedule: the involved patient, the involved practitioner, front desk,
// or admin.
func requireOwnershipOrStaff(appt *models.Appointment, actor models.Actor) error {
	switch actor.Role {
	case models.RoleAdmin, models.RoleFrontDesk:
		return nil
	case models.RolePatient:
		if actor.ID == appt.PatientID {
			return nil
		}
	case models.RolePractitioner:
		if actor.ID == appt.PractitionerID {
			return nil
		}
	}
	return utils.NewForbidden("not allowed to modify this appointment")
}
