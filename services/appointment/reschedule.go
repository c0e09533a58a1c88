package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	schedulerRepo "medagenda/database/repository/scheduler"
	"medagenda/models"
	"medagenda/services/realtime"
	"medagenda/utils"
)

// Reschedule moves an appointment to a new start time. The new slot must be
// free; the appointment's current interval does not count against itself, so
// moving within the same slot or to an adjacent one is allowed. Terminal
// appointments cannot be moved.
func (s *DefaultAppointmentService) Reschedule(ctx context.Context, id string, newStart time.Time, actor models.Actor) (*models.Appointment, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnershipOrStaff(appt, actor); err != nil {
		return nil, err
	}
	if appt.Status.Terminal() {
		return nil, utils.NewInvalidTransition(fmt.Sprintf("cannot reschedule an appointment in state %s", appt.Status))
	}

	duration := appt.End - appt.Start
	date, minute := utils.SplitInstant(newStart)

	updated, err := s.Repo.RescheduleAppointmentIfFree(ctx, appt.ID, date, minute, minute+duration)
	if err != nil {
		if errors.Is(err, schedulerRepo.ErrSlotTaken) {
			return nil, utils.NewConflict("practitioner not available at that time")
		}
		return nil, utils.NewInternal(err)
	}
	if updated == nil {
		return nil, utils.NewNotFound("appointment not found")
	}

	// Both the vacated date and the new one changed.
	s.Availability.InvalidateCache(ctx, appt.PractitionerID, appt.Date)
	if date != appt.Date {
		s.Availability.InvalidateCache(ctx, appt.PractitionerID, date)
	}

	s.Realtime.PushToPractitioner(updated.PractitionerID, realtime.EventAppointmentUpdated, updated)
	s.dispatchEvent(models.EventUpdate, updated)
	s.scheduleReminder(updated)
	return updated, nil
}
