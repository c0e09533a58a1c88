package schedulerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medagenda/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// overlapFilter matches documents on practitioner+date whose half-open
// [start, end) interval intersects the given one.
func overlapFilter(practitionerID, date string, start, end int) bson.M {
	return bson.M{
		"practitioner_id": practitionerID,
		"date":            date,
		"start":           bson.M{"$lt": end},
		"end":             bson.M{"$gt": start},
	}
}

func (repo *MongoSchedulerRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := repo.appointmentColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// hasOccupiedOverlap reports, inside the session, whether any active
// appointment (other than excludeID) or blocked interval intersects the
// interval.
func (repo *MongoSchedulerRepo) hasOccupiedOverlap(sc mongo.SessionContext, practitionerID, date string, start, end int, excludeID string) (bool, error) {
	apptFilter := overlapFilter(practitionerID, date, start, end)
	apptFilter["active"] = true
	if excludeID != "" {
		apptFilter["id"] = bson.M{"$ne": excludeID}
	}
	n, err := repo.appointmentColl.CountDocuments(sc, apptFilter)
	if err != nil {
		return false, fmt.Errorf("error counting overlapping appointments: %w", err)
	}
	if n > 0 {
		return true, nil
	}

	n, err = repo.blockedColl.CountDocuments(sc, overlapFilter(practitionerID, date, start, end))
	if err != nil {
		return false, fmt.Errorf("error counting overlapping blocked intervals: %w", err)
	}
	return n > 0, nil
}

// CreateAppointmentIfFree checks occupancy and inserts within one
// transaction. A duplicate-key error from the active-appointment uniqueness
// index is reported as ErrSlotTaken as well, so two bookings racing for the
// same slot cannot both succeed even outside a transactional deployment.
func (repo *MongoSchedulerRepo) CreateAppointmentIfFree(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		taken, err := repo.hasOccupiedOverlap(sc, appt.PractitionerID, appt.Date, appt.Start, appt.End, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}
		if _, err := repo.appointmentColl.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		if errors.Is(err, ErrSlotTaken) {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// RescheduleAppointmentIfFree moves an appointment under the same guard,
// excluding the appointment's own current interval from the check.
func (repo *MongoSchedulerRepo) RescheduleAppointmentIfFree(ctx context.Context, id, date string, start, end int) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var updated models.Appointment
	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var current models.Appointment
		if err := repo.appointmentColl.FindOne(sc, bson.M{"id": id}).Decode(&current); err != nil {
			return fmt.Errorf("error fetching appointment for reschedule: %w", err)
		}

		taken, err := repo.hasOccupiedOverlap(sc, current.PractitionerID, date, start, end, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}

		update := bson.M{"$set": bson.M{"date": date, "start": start, "end": end}}
		if _, err := repo.appointmentColl.UpdateOne(sc, bson.M{"id": id}, update); err != nil {
			return fmt.Errorf("update appointment failed: %w", err)
		}

		updated = current
		updated.Date = date
		updated.Start = start
		updated.End = end
		return nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) || errors.Is(err, ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("reschedule transaction failed: %w", err)
	}
	return &updated, nil
}

// ReplaceBlockedIntervals overwrites the blocked set for practitioner+date,
// refusing when any new interval intersects an active appointment.
func (repo *MongoSchedulerRepo) ReplaceBlockedIntervals(ctx context.Context, practitionerID, date string, blocks []models.Blocked) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		for _, b := range blocks {
			filter := overlapFilter(practitionerID, date, b.Start, b.End)
			filter["active"] = true
			n, err := repo.appointmentColl.CountDocuments(sc, filter)
			if err != nil {
				return fmt.Errorf("error counting overlapping appointments: %w", err)
			}
			if n > 0 {
				return ErrBookingOverlap
			}
		}
		return repo.replaceBlocks(sc, practitionerID, date, blocks)
	})
	if err != nil {
		if errors.Is(err, ErrBookingOverlap) {
			return ErrBookingOverlap
		}
		return fmt.Errorf("blocked interval transaction failed: %w", err)
	}
	return nil
}

// CloseDay replaces the day's blocked intervals with the single given
// full-workday block, refusing when any active appointment remains.
func (repo *MongoSchedulerRepo) CloseDay(ctx context.Context, practitionerID, date string, block models.Blocked) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{"practitioner_id": practitionerID, "date": date, "active": true}
		n, err := repo.appointmentColl.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("error counting active appointments: %w", err)
		}
		if n > 0 {
			return ErrAppointmentsExist
		}
		return repo.replaceBlocks(sc, practitionerID, date, []models.Blocked{block})
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentsExist) {
			return ErrAppointmentsExist
		}
		return fmt.Errorf("close day transaction failed: %w", err)
	}
	return nil
}

// replaceBlocks wholesale-replaces the blocked set for practitioner+date
// within the session. Blocks are never merged incrementally.
func (repo *MongoSchedulerRepo) replaceBlocks(sc mongo.SessionContext, practitionerID, date string, blocks []models.Blocked) error {
	if _, err := repo.blockedColl.DeleteMany(sc, bson.M{"practitioner_id": practitionerID, "date": date}); err != nil {
		return fmt.Errorf("delete existing blocked intervals failed: %w", err)
	}
	if len(blocks) == 0 {
		return nil
	}
	docs := make([]interface{}, len(blocks))
	for i, b := range blocks {
		docs[i] = b
	}
	if _, err := repo.blockedColl.InsertMany(sc, docs); err != nil {
		return fmt.Errorf("insert blocked intervals failed: %w", err)
	}
	return nil
}
