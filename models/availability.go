package models

// Slot is a candidate fixed-duration booking window, minutes from midnight.
type Slot struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// BookedSlot is a slot occupied by an appointment, annotated for display.
type BookedSlot struct {
	Slot          `bson:",inline"`
	AppointmentID string `json:"appointment_id"`
	PatientName   string `json:"patient_name,omitempty"`
}

// DailyAvailability is the derived per-practitioner calendar view for one
// date: every candidate slot partitioned by what, if anything, occupies it.
// It is computed on demand and never persisted.
type DailyAvailability struct {
	PractitionerID string       `json:"practitioner_id"`
	Date           string       `json:"date"`
	Available      []Slot       `json:"available_slots"`
	Blocked        []Slot       `json:"blocked_slots"`
	Booked         []BookedSlot `json:"booked_slots"`
}
