package schedulerRepo

import (
	"context"
	"errors"

	"medagenda/models"
)

// Guard failures surfaced by the transactional write paths. Services map
// these to their caller-facing conflict errors.
var (
	// ErrSlotTaken means the requested interval overlaps an active
	// appointment or a blocked interval for the practitioner.
	ErrSlotTaken = errors.New("slot already occupied")
	// ErrBookingOverlap means a blocked interval being written overlaps an
	// active appointment.
	ErrBookingOverlap = errors.New("blocked interval overlaps an active appointment")
	// ErrAppointmentsExist means the day cannot be closed because active
	// appointments remain on it.
	ErrAppointmentsExist = errors.New("active appointments exist on this date")
)

// SchedulerRepository defines the data access methods used by the
// scheduling engine. The three *IfFree / guarded write methods run their
// occupancy check and their write inside a single MongoDB transaction, so
// concurrent bookings for the same practitioner and date serialize at the
// store; a partial unique index on (practitioner_id, date, start) over
// active appointments backs the same invariant.
type SchedulerRepository interface {
	// GetAppointmentByID returns (nil, nil) when no appointment matches.
	GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error)
	// ListActiveAppointments returns all non-cancelled appointments for a
	// practitioner on a date, in no guaranteed order.
	ListActiveAppointments(ctx context.Context, practitionerID, date string) ([]models.Appointment, error)
	// ListAppointmentsByPractitioner returns a practitioner's appointments,
	// optionally restricted to one date (empty date means all), paginated.
	ListAppointmentsByPractitioner(ctx context.Context, practitionerID, date string, page, limit int64) ([]models.Appointment, int64, error)
	// ListAppointmentsByPatient returns a patient's appointments, paginated.
	ListAppointmentsByPatient(ctx context.Context, patientID string, page, limit int64) ([]models.Appointment, int64, error)

	// GetBlockedIntervals retrieves blocked intervals for a practitioner on a given date.
	GetBlockedIntervals(ctx context.Context, practitionerID, date string) ([]models.Blocked, error)

	// CreateAppointmentIfFree inserts the appointment unless its interval
	// overlaps an active appointment or blocked interval; then ErrSlotTaken.
	CreateAppointmentIfFree(ctx context.Context, appt *models.Appointment) error
	// RescheduleAppointmentIfFree moves an appointment to a new interval
	// under the same guard, excluding the appointment's own interval.
	RescheduleAppointmentIfFree(ctx context.Context, id, date string, start, end int) (*models.Appointment, error)
	// UpdateAppointmentStatus sets the lifecycle state (and the derived
	// active flag). Returns (nil, nil) when no appointment matches.
	UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error)

	// ReplaceBlockedIntervals overwrites the full set of blocked intervals
	// for practitioner+date; ErrBookingOverlap when any new interval
	// overlaps an active appointment.
	ReplaceBlockedIntervals(ctx context.Context, practitionerID, date string, blocks []models.Blocked) error
	// CloseDay replaces the day's blocked intervals with the single given
	// block; ErrAppointmentsExist when any active appointment remains.
	CloseDay(ctx context.Context, practitionerID, date string, block models.Blocked) error

	EnsureIndexes() error
}
