package models

import "time"

// Practitioner represents a clinician whose calendar the engine manages.
// Working hours and slot duration are configuration carried on the record;
// every appointment booked with a practitioner uses their SlotDuration.
type Practitioner struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Specialty    string    `bson:"specialty" json:"specialty"`
	SlotDuration int       `bson:"slot_duration" json:"slot_duration"` // minutes per appointment
	DayStart     int       `bson:"day_start" json:"day_start"`         // minutes from midnight (480 = 08:00)
	DayEnd       int       `bson:"day_end" json:"day_end"`             // minutes from midnight (1020 = 17:00)
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Patient holds the minimal identity the engine needs to reference a
// patient and reach them with appointment notifications. Credential and
// profile management lives outside this service.
type Patient struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
