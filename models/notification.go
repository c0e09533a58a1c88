package models

// AppointmentEventKind classifies outbound appointment notifications.
type AppointmentEventKind string

const (
	EventConfirmation AppointmentEventKind = "confirmation"
	EventUpdate       AppointmentEventKind = "update"
	EventReminder     AppointmentEventKind = "reminder"
	EventCancellation AppointmentEventKind = "cancellation"
)

// ReminderPayload is the asynq task payload for a scheduled appointment
// reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	FireDate      string `json:"fireDate"`
}
