package notification

import (
	"context"
	"fmt"

	patientRepo "medagenda/database/repository/patient"
	practitionerRepo "medagenda/database/repository/practitioner"
	"medagenda/models"
	"medagenda/utils"

	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation. When Sender
// is nil (SMTP unconfigured) dispatch degrades to logging only, which keeps
// local and test environments free of delivery dependencies.
type DefaultNotificationService struct {
	Patients      patientRepo.PatientRepository
	Practitioners practitionerRepo.PractitionerRepository
	Sender        EmailSender
}

// SendAppointmentEvent renders and delivers the email for one lifecycle
// event.
func (s *DefaultNotificationService) SendAppointmentEvent(ctx context.Context, kind models.AppointmentEventKind, appt *models.Appointment) error {
	patient, err := s.Patients.GetByID(ctx, appt.PatientID)
	if err != nil {
		return fmt.Errorf("resolve patient %s: %w", appt.PatientID, err)
	}
	if patient == nil || patient.Email == "" {
		return fmt.Errorf("patient %s has no deliverable address", appt.PatientID)
	}

	practName := appt.PractitionerID
	if pract, err := s.Practitioners.GetByID(ctx, appt.PractitionerID); err == nil && pract != nil {
		practName = pract.Name
	}

	subject, body := renderAppointmentEmail(kind, appt, patient.Name, practName)

	if s.Sender == nil {
		utils.GetLogger().Info("email delivery disabled, logging appointment event",
			zap.String("kind", string(kind)),
			zap.String("appointmentID", appt.ID),
			zap.String("subject", subject))
		return nil
	}

	if err := s.Sender.SendEmail(ctx, patient.Email, subject, body); err != nil {
		return fmt.Errorf("send %s email for appointment %s: %w", kind, appt.ID, err)
	}
	return nil
}

// renderAppointmentEmail produces the patient-facing subject and body for
// an event. Copy stays in the clinic's locale.
func renderAppointmentEmail(kind models.AppointmentEventKind, appt *models.Appointment, patientName, practitionerName string) (subject, body string) {
	when := fmt.Sprintf("%s a las %s", appt.Date, utils.FormatClock(appt.Start))

	switch kind {
	case models.EventConfirmation:
		subject = fmt.Sprintf("Confirmación de cita - %s", when)
		body = fmt.Sprintf("Hola %s,\n\nSu cita con %s ha sido agendada para el %s.\n\nPor favor llegue 10 minutos antes.",
			patientName, practitionerName, when)
	case models.EventUpdate:
		subject = fmt.Sprintf("Actualización de cita - %s", when)
		body = fmt.Sprintf("Hola %s,\n\nSu cita con %s ha sido reprogramada. Nueva fecha: %s.",
			patientName, practitionerName, when)
	case models.EventReminder:
		subject = fmt.Sprintf("Recordatorio de cita - %s", when)
		body = fmt.Sprintf("Hola %s,\n\nLe recordamos su cita con %s el %s.",
			patientName, practitionerName, when)
	case models.EventCancellation:
		subject = fmt.Sprintf("Cancelación de cita - %s", when)
		body = fmt.Sprintf("Hola %s,\n\nSu cita con %s del %s ha sido cancelada.",
			patientName, practitionerName, when)
	default:
		subject = fmt.Sprintf("Cita - %s", when)
		body = fmt.Sprintf("Hola %s,\n\nHay una novedad sobre su cita del %s.", patientName, when)
	}
	return subject, body
}
