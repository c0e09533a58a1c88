package appointment

import (
	"context"
	"errors"
	"time"

	schedulerRepo "medagenda/database/repository/scheduler"
	"medagenda/models"
	"medagenda/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create books a new appointment. The occupancy check and the insert run
// inside the repository's transaction, so two requests racing for the same
// practitioner and slot cannot both commit. Notification and reminder
// dispatch happen off the critical path and never affect the outcome.
func (s *DefaultAppointmentService) Create(ctx context.Context, practitionerID, patientID string, start time.Time) (*models.Appointment, error) {
	pract, err := s.PractitionerRepo.GetByID(ctx, practitionerID)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if pract == nil {
		return nil, utils.NewNotFound("practitioner not found")
	}

	patient, err := s.PatientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if patient == nil {
		return nil, utils.NewNotFound("patient not found")
	}

	date, minute := utils.SplitInstant(start)
	appt := &models.Appointment{
		ID:             uuid.New().String(),
		PractitionerID: practitionerID,
		PatientID:      patientID,
		Date:           date,
		Start:          minute,
		End:            minute + pract.SlotDuration,
		Status:         models.StatusScheduled,
		Active:         true,
		CreatedAt:      time.Now(),
	}

	if err := s.Repo.CreateAppointmentIfFree(ctx, appt); err != nil {
		if errors.Is(err, schedulerRepo.ErrSlotTaken) {
			return nil, utils.NewConflict("practitioner not available at that time")
		}
		return nil, utils.NewInternal(err)
	}

	s.Availability.InvalidateCache(ctx, practitionerID, date)
	s.dispatchEvent(models.EventConfirmation, appt)
	s.scheduleReminder(appt)

	return appt, nil
}

// GetByID fetches a single appointment.
func (s *DefaultAppointmentService) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if appt == nil {
		return nil, utils.NewNotFound("appointment not found")
	}
	return appt, nil
}

// ListByPatient returns a patient's appointments, newest first.
func (s *DefaultAppointmentService) ListByPatient(ctx context.Context, patientID string, page, limit int64) ([]models.Appointment, int64, error) {
	appts, total, err := s.Repo.ListAppointmentsByPatient(ctx, patientID, page, limit)
	if err != nil {
		return nil, 0, utils.NewInternal(err)
	}
	return appts, total, nil
}

// ListByPractitioner returns a practitioner's agenda, optionally for one
// date.
func (s *DefaultAppointmentService) ListByPractitioner(ctx context.Context, practitionerID, date string, page, limit int64) ([]models.Appointment, int64, error) {
	if date != "" && !utils.ValidDate(date) {
		return nil, 0, utils.NewValidation("invalid date: expected YYYY-MM-DD")
	}
	appts, total, err := s.Repo.ListAppointmentsByPractitioner(ctx, practitionerID, date, page, limit)
	if err != nil {
		return nil, 0, utils.NewInternal(err)
	}
	return appts, total, nil
}

// dispatchEvent sends a lifecycle notification without blocking the caller.
// Failures are logged and contained here.
func (s *DefaultAppointmentService) dispatchEvent(kind models.AppointmentEventKind, appt *models.Appointment) {
	if s.Notifier == nil {
		return
	}
	snapshot := *appt
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Notifier.SendAppointmentEvent(ctx, kind, &snapshot); err != nil {
			utils.GetLogger().Warn("appointment notification failed",
				zap.String("kind", string(kind)),
				zap.String("appointmentID", snapshot.ID),
				zap.Error(err))
		}
	}()
}

// scheduleReminder enqueues the pre-visit reminder, best-effort.
func (s *DefaultAppointmentService) scheduleReminder(appt *models.Appointment) {
	if s.Reminders == nil {
		return
	}
	snapshot := *appt
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Reminders.ScheduleAppointmentReminder(ctx, &snapshot); err != nil {
			utils.GetLogger().Warn("failed to schedule appointment reminder",
				zap.String("appointmentID", snapshot.ID), zap.Error(err))
		}
	}()
}
