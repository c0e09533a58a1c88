package notification

import (
	"context"

	"medagenda/models"
)

// EmailSender is the interface for delivering email messages. The SMTP
// implementation lives in email.go; tests substitute fakes.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// NotificationService dispatches appointment lifecycle events to patients.
// Every method is best-effort from the caller's point of view: callers log
// the returned error and never let it affect the primary operation.
type NotificationService interface {
	SendAppointmentEvent(ctx context.Context, kind models.AppointmentEventKind, appt *models.Appointment) error
}
