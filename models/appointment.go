package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "agendada"  // initial state after booking
	StatusWaiting   AppointmentStatus = "en_espera" // patient has checked in at the front desk
	StatusCompleted AppointmentStatus = "atendida"  // terminal
	StatusCancelled AppointmentStatus = "cancelada" // terminal, reachable from any non-terminal state
)

// Terminal reports whether no further transition may leave the state.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Valid reports whether s is one of the known lifecycle states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusWaiting, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a booked visit. Times are minutes from midnight on Date
// ("YYYY-MM-DD"); End is always Start plus the practitioner's slot
// duration. Appointments are never deleted: cancellation flips Status and
// Active, and only Active records count toward occupancy.
type Appointment struct {
	ID             string            `bson:"id" json:"id"`
	PractitionerID string            `bson:"practitioner_id" json:"practitioner_id"`
	PatientID      string            `bson:"patient_id" json:"patient_id"`
	Date           string            `bson:"date" json:"date"`
	Start          int               `bson:"start" json:"start"`
	End            int               `bson:"end" json:"end"`
	Status         AppointmentStatus `bson:"status" json:"status"`
	Active         bool              `bson:"active" json:"active"` // false iff Status == cancelada; backs the uniqueness index
	CreatedAt      time.Time         `bson:"created_at" json:"created_at"`
}

// TransitionAction names the operations of the appointment state machine.
type TransitionAction string

const (
	ActionArrive   TransitionAction = "arrive"   // front desk marks the patient as checked in
	ActionComplete TransitionAction = "complete" // assigned practitioner marks the visit done
	ActionCancel   TransitionAction = "cancel"
)

// Actor identifies who is requesting an appointment operation.
type Actor struct {
	ID   string
	Role string // "patient", "practitioner", "frontdesk" or "admin"
}

const (
	RolePatient      = "patient"
	RolePractitioner = "practitioner"
	RoleFrontDesk    = "frontdesk"
	RoleAdmin        = "admin"
)

// OverrideAudit records a privileged administrative state override. The
// override path is the only one that can produce state sequences outside
// the normal transition table, so every use is persisted.
type OverrideAudit struct {
	ID            string            `bson:"id" json:"id"`
	AppointmentID string            `bson:"appointment_id" json:"appointment_id"`
	Actor         string            `bson:"actor" json:"actor"`
	From          AppointmentStatus `bson:"from" json:"from"`
	To            AppointmentStatus `bson:"to" json:"to"`
	At            time.Time         `bson:"at" json:"at"`
}
