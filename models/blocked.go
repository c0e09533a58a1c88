package models

import "time"

// Blocked marks a period during which a practitioner takes no appointments
// on a given date, independent of any booking.
type Blocked struct {
	ID             string    `bson:"id" json:"id"`
	PractitionerID string    `bson:"practitioner_id" json:"practitioner_id"`
	Date           string    `bson:"date" json:"date"`   // e.g. "2025-06-01"
	Start          int       `bson:"start" json:"start"` // minutes from midnight
	End            int       `bson:"end" json:"end"`
	Reason         string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
