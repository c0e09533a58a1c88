package appointment

import (
	"context"
	"time"

	auditRepo "medagenda/database/repository/audit"
	patientRepo "medagenda/database/repository/patient"
	practitionerRepo "medagenda/database/repository/practitioner"
	schedulerRepo "medagenda/database/repository/scheduler"
	"medagenda/models"
	"medagenda/services/notification"
	"medagenda/services/realtime"
	"medagenda/services/scheduling"
)

// ReminderScheduler enqueues a future reminder for an appointment. The
// asynq-backed implementation lives in services/tasks.
type ReminderScheduler interface {
	ScheduleAppointmentReminder(ctx context.Context, appt *models.Appointment) error
}

// AppointmentService owns the appointment lifecycle: booking, the state
// machine, rescheduling and the privileged administrative override.
type AppointmentService interface {
	Create(ctx context.Context, practitionerID, patientID string, start time.Time) (*models.Appointment, error)
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	Transition(ctx context.Context, id string, action models.TransitionAction, actor models.Actor) (*models.Appointment, error)
	Reschedule(ctx context.Context, id string, newStart time.Time, actor models.Actor) (*models.Appointment, error)
	Override(ctx context.Context, id string, to models.AppointmentStatus, actor models.Actor) (*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string, page, limit int64) ([]models.Appointment, int64, error)
	ListByPractitioner(ctx context.Context, practitionerID, date string, page, limit int64) ([]models.Appointment, int64, error)
}

// DefaultAppointmentService implements AppointmentService.
type DefaultAppointmentService struct {
	Repo             schedulerRepo.SchedulerRepository
	PractitionerRepo practitionerRepo.PractitionerRepository
	PatientRepo      patientRepo.PatientRepository
	AuditRepo        auditRepo.AuditRepository
	Availability     scheduling.AvailabilityService
	Notifier         notification.NotificationService
	Realtime         realtime.RealtimeService
	Reminders        ReminderScheduler
}
