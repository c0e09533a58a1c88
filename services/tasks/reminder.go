// Package tasks builds and schedules asynq tasks for deferred work.
package tasks

import (
	"context"
	"encoding/json"
	"time"

	"medagenda/models"
	"medagenda/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask wraps a reminder payload into an asynq task scheduled for
// fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues a reminder task a fixed number of hours
// before each appointment.
type AsynqReminderScheduler struct {
	Client    *asynq.Client
	LeadHours int
}

func (s *AsynqReminderScheduler) ScheduleAppointmentReminder(ctx context.Context, appt *models.Appointment) error {
	startsAt, err := utils.CombineDate(appt.Date, appt.Start)
	if err != nil {
		return err
	}
	fireAt := startsAt.Add(-time.Duration(s.LeadHours) * time.Hour)
	if fireAt.Before(time.Now()) {
		// Booked inside the lead window; a reminder now would be noise.
		utils.GetLogger().Debug("skipping reminder inside lead window",
			zap.String("appointmentID", appt.ID))
		return nil
	}

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		FireDate:      fireAt.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return err
	}
	return nil
}
