package auditRepo

import (
	"context"
	"fmt"
	"time"

	"medagenda/database"
	"medagenda/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAuditRepo implements AuditRepository using MongoDB.
type MongoAuditRepo struct {
	coll *mongo.Collection
}

// NewMongoAuditRepo constructs a new instance of MongoAuditRepo.
func NewMongoAuditRepo() AuditRepository {
	return &MongoAuditRepo{
		coll: database.DB().Collection("audit"),
	}
}

func (repo *MongoAuditRepo) Append(ctx context.Context, entry *models.OverrideAudit) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("error inserting audit entry: %w", err)
	}
	return nil
}

func (repo *MongoAuditRepo) ListByAppointment(ctx context.Context, appointmentID string) ([]models.OverrideAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"appointment_id": appointmentID},
		options.Find().SetSort(bson.D{{Key: "at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.OverrideAudit
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding audit entries: %w", err)
	}
	return entries, nil
}
