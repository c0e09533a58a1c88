package schedulerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medagenda/database"
	"medagenda/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSchedulerRepo implements SchedulerRepository using MongoDB.
type MongoSchedulerRepo struct {
	appointmentColl *mongo.Collection
	blockedColl     *mongo.Collection
}

// NewMongoSchedulerRepo constructs a new instance of MongoSchedulerRepo.
func NewMongoSchedulerRepo() SchedulerRepository {
	db := database.DB()
	return &MongoSchedulerRepo{
		appointmentColl: db.Collection("appointments"),
		blockedColl:     db.Collection("blocked"),
	}
}

func (repo *MongoSchedulerRepo) GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := repo.appointmentColl.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// ListActiveAppointments retrieves all non-cancelled appointments for a
// practitioner on a date.
func (repo *MongoSchedulerRepo) ListActiveAppointments(ctx context.Context, practitionerID, date string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"practitioner_id": practitionerID, "date": date, "active": true}
	cursor, err := repo.appointmentColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching active appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// GetBlockedIntervals retrieves all blocked intervals for a given practitioner and date.
func (repo *MongoSchedulerRepo) GetBlockedIntervals(ctx context.Context, practitionerID, date string) ([]models.Blocked, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"practitioner_id": practitionerID, "date": date}
	cursor, err := repo.blockedColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching blocked intervals: %w", err)
	}
	defer cursor.Close(ctx)

	var blocked []models.Blocked
	if err := cursor.All(ctx, &blocked); err != nil {
		return nil, fmt.Errorf("error decoding blocked intervals: %w", err)
	}
	return blocked, nil
}

// UpdateAppointmentStatus sets the lifecycle state and keeps the active
// flag in sync (active == not cancelled).
func (repo *MongoSchedulerRepo) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status": status,
		"active": status != models.StatusCancelled,
	}}
	res := repo.appointmentColl.FindOneAndUpdate(ctx, bson.M{"id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var appt models.Appointment
	if err := res.Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating appointment status: %w", err)
	}
	return &appt, nil
}
