package scheduling

import (
	"context"
	"fmt"

	"medagenda/models"
)

// OccupiedIntervals returns every interval during which the practitioner is
// unavailable on the date: the union of non-cancelled appointments and
// declared blocked intervals. Callers get no ordering guarantee.
func (s *DefaultAvailabilityService) OccupiedIntervals(ctx context.Context, practitionerID, date string) ([]models.Slot, error) {
	appts, err := s.Repo.ListActiveAppointments(ctx, practitionerID, date)
	if err != nil {
		return nil, fmt.Errorf("fetch active appointments: %w", err)
	}
	blocked, err := s.Repo.GetBlockedIntervals(ctx, practitionerID, date)
	if err != nil {
		return nil, fmt.Errorf("fetch blocked intervals: %w", err)
	}

	occupied := make([]models.Slot, 0, len(appts)+len(blocked))
	for _, a := range appts {
		occupied = append(occupied, models.Slot{Start: a.Start, End: a.End})
	}
	for _, b := range blocked {
		occupied = append(occupied, models.Slot{Start: b.Start, End: b.End})
	}
	return occupied, nil
}
