package schedulerRepo

import (
	"context"
	"fmt"
	"time"

	"medagenda/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListAppointmentsByPractitioner returns a practitioner's appointments,
// newest first, optionally restricted to one date.
func (repo *MongoSchedulerRepo) ListAppointmentsByPractitioner(ctx context.Context, practitionerID, date string, page, limit int64) ([]models.Appointment, int64, error) {
	filter := bson.M{"practitioner_id": practitionerID}
	if date != "" {
		filter["date"] = date
	}
	return repo.pagedAppointments(ctx, filter, page, limit)
}

// ListAppointmentsByPatient returns a patient's appointments, newest first.
func (repo *MongoSchedulerRepo) ListAppointmentsByPatient(ctx context.Context, patientID string, page, limit int64) ([]models.Appointment, int64, error) {
	return repo.pagedAppointments(ctx, bson.M{"patient_id": patientID}, page, limit)
}

func (repo *MongoSchedulerRepo) pagedAppointments(ctx context.Context, filter bson.M, page, limit int64) ([]models.Appointment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	total, err := repo.appointmentColl.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting appointments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "start", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := repo.appointmentColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, 0, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, total, nil
}
