// Package blocking manages practitioner-declared unavailability: ad-hoc
// blocked intervals and whole-day closures.
package blocking

import (
	"context"
	"errors"
	"fmt"
	"time"

	practitionerRepo "medagenda/database/repository/practitioner"
	schedulerRepo "medagenda/database/repository/scheduler"
	"medagenda/models"
	"medagenda/services/scheduling"
	"medagenda/utils"

	"github.com/google/uuid"
)

// BlockingService maintains the blocked intervals for a practitioner's day.
type BlockingService interface {
	// SetBlockedIntervals replaces the practitioner's blocked intervals for
	// a date with the given set. Intervals that overlap an active
	// appointment are rejected wholesale.
	SetBlockedIntervals(ctx context.Context, practitionerID, date string, intervals []models.Slot, reason string) ([]models.Blocked, error)

	// GetBlockedIntervals lists the blocked intervals for a date.
	GetBlockedIntervals(ctx context.Context, practitionerID, date string) ([]models.Blocked, error)

	// CloseDay blocks the practitioner's entire working day. Refused while
	// any active appointment remains on that date.
	CloseDay(ctx context.Context, practitionerID, date, reason string) (*models.Blocked, error)
}

type DefaultBlockingService struct {
	Repo             schedulerRepo.SchedulerRepository
	PractitionerRepo practitionerRepo.PractitionerRepository
	Availability     scheduling.AvailabilityService
}

func (s *DefaultBlockingService) SetBlockedIntervals(ctx context.Context, practitionerID, date string, intervals []models.Slot, reason string) ([]models.Blocked, error) {
	pract, err := s.practitioner(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	if !utils.ValidDate(date) {
		return nil, utils.NewValidation("invalid date: expected YYYY-MM-DD")
	}

	blocks := make([]models.Blocked, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Start >= iv.End {
			return nil, utils.NewValidation(fmt.Sprintf("interval %s-%s is empty",
				utils.FormatClock(iv.Start), utils.FormatClock(iv.End)))
		}
		if iv.Start < pract.DayStart || iv.End > pract.DayEnd {
			return nil, utils.NewValidation(fmt.Sprintf("interval %s-%s falls outside the working day",
				utils.FormatClock(iv.Start), utils.FormatClock(iv.End)))
		}
		blocks = append(blocks, models.Blocked{
			ID:             uuid.New().String(),
			PractitionerID: practitionerID,
			Date:           date,
			Start:          iv.Start,
			End:            iv.End,
			Reason:         reason,
			CreatedAt:      time.Now(),
		})
	}

	if err := s.Repo.ReplaceBlockedIntervals(ctx, practitionerID, date, blocks); err != nil {
		if errors.Is(err, schedulerRepo.ErrBookingOverlap) {
			return nil, utils.NewConflict("a blocked interval overlaps an existing appointment")
		}
		return nil, utils.NewInternal(err)
	}

	s.Availability.InvalidateCache(ctx, practitionerID, date)
	return blocks, nil
}

func (s *DefaultBlockingService) GetBlockedIntervals(ctx context.Context, practitionerID, date string) ([]models.Blocked, error) {
	if !utils.ValidDate(date) {
		return nil, utils.NewValidation("invalid date: expected YYYY-MM-DD")
	}
	blocks, err := s.Repo.GetBlockedIntervals(ctx, practitionerID, date)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return blocks, nil
}

func (s *DefaultBlockingService) CloseDay(ctx context.Context, practitionerID, date, reason string) (*models.Blocked, error) {
	pract, err := s.practitioner(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	if !utils.ValidDate(date) {
		return nil, utils.NewValidation("invalid date: expected YYYY-MM-DD")
	}
	if reason == "" {
		reason = "día cerrado"
	}

	block := &models.Blocked{
		ID:             uuid.New().String(),
		PractitionerID: practitionerID,
		Date:           date,
		Start:          pract.DayStart,
		End:            pract.DayEnd,
		Reason:         reason,
		CreatedAt:      time.Now(),
	}

	if err := s.Repo.CloseDay(ctx, practitionerID, date, *block); err != nil {
		if errors.Is(err, schedulerRepo.ErrAppointmentsExist) {
			return nil, utils.NewConflict("cannot close a day with active appointments")
		}
		return nil, utils.NewInternal(err)
	}

	s.Availability.InvalidateCache(ctx, practitionerID, date)
	return block, nil
}

func (s *DefaultBlockingService) practitioner(ctx context.Context, id string) (*models.Practitioner, error) {
	pract, err := s.PractitionerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if pract == nil {
		return nil, utils.NewNotFound("practitioner not found")
	}
	return pract, nil
}
