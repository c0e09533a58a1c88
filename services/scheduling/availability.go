package scheduling

import (
	"context"
	"encoding/json"
	"fmt"

	patientRepo "medagenda/database/repository/patient"
	practitionerRepo "medagenda/database/repository/practitioner"
	schedulerRepo "medagenda/database/repository/scheduler"
	"medagenda/models"
	"medagenda/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityService computes bookable windows from a practitioner's
// working day, their appointments and their blocked intervals.
type AvailabilityService interface {
	GetAvailability(ctx context.Context, practitionerID, date string) (*models.DailyAvailability, error)
	GetDailyAgenda(ctx context.Context, date string) (map[string]*models.DailyAvailability, error)
	OccupiedIntervals(ctx context.Context, practitionerID, date string) ([]models.Slot, error)
	InvalidateCache(ctx context.Context, practitionerID, date string)
}

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	Repo             schedulerRepo.SchedulerRepository
	PractitionerRepo practitionerRepo.PractitionerRepository
	PatientRepo      patientRepo.PatientRepository
	Cache            *redis.Client // nil disables snapshot caching
}

// GetAvailability partitions the practitioner's candidate slots for the
// date into available, blocked and booked. A slot overlapping both a block
// and a booking is reported as blocked; either way it is never available.
func (s *DefaultAvailabilityService) GetAvailability(ctx context.Context, practitionerID, date string) (*models.DailyAvailability, error) {
	if !utils.ValidDate(date) {
		return nil, utils.NewValidation(fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", date))
	}

	if snap := s.cachedSnapshot(ctx, practitionerID, date); snap != nil {
		return snap, nil
	}

	pract, err := s.PractitionerRepo.GetByID(ctx, practitionerID)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if pract == nil {
		return nil, utils.NewNotFound("practitioner not found")
	}

	appts, err := s.Repo.ListActiveAppointments(ctx, practitionerID, date)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	blocked, err := s.Repo.GetBlockedIntervals(ctx, practitionerID, date)
	if err != nil {
		return nil, utils.NewInternal(err)
	}

	blockedIntervals := make([]models.Slot, len(blocked))
	for i, b := range blocked {
		blockedIntervals[i] = models.Slot{Start: b.Start, End: b.End}
	}

	snap := &models.DailyAvailability{
		PractitionerID: practitionerID,
		Date:           date,
		Available:      []models.Slot{},
		Blocked:        []models.Slot{},
		Booked:         []models.BookedSlot{},
	}

	for _, slot := range GenerateCandidateSlots(pract.DayStart, pract.DayEnd, pract.SlotDuration) {
		if OverlapsAny(slot, blockedIntervals) {
			snap.Blocked = append(snap.Blocked, slot)
			continue
		}
		if appt := firstOverlapping(slot, appts); appt != nil {
			snap.Booked = append(snap.Booked, models.BookedSlot{
				Slot:          slot,
				AppointmentID: appt.ID,
				PatientName:   s.patientName(ctx, appt.PatientID),
			})
			continue
		}
		snap.Available = append(snap.Available, slot)
	}

	s.storeSnapshot(ctx, snap)
	return snap, nil
}

// GetDailyAgenda computes availability for every practitioner on a date.
func (s *DefaultAvailabilityService) GetDailyAgenda(ctx context.Context, date string) (map[string]*models.DailyAvailability, error) {
	practitioners, err := s.PractitionerRepo.List(ctx)
	if err != nil {
		return nil, utils.NewInternal(err)
	}

	agenda := make(map[string]*models.DailyAvailability, len(practitioners))
	for _, p := range practitioners {
		snap, err := s.GetAvailability(ctx, p.ID, date)
		if err != nil {
			return nil, err
		}
		agenda[p.ID] = snap
	}
	return agenda, nil
}

// InvalidateCache drops the cached snapshot for practitioner+date. Called
// by every write path that changes occupancy.
func (s *DefaultAvailabilityService) InvalidateCache(ctx context.Context, practitionerID, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, availabilityKey(practitionerID, date)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("practitionerID", practitionerID), zap.String("date", date), zap.Error(err))
	}
}

func availabilityKey(practitionerID, date string) string {
	return utils.AvailabilityCachePrefix + practitionerID + ":" + date
}

func (s *DefaultAvailabilityService) cachedSnapshot(ctx context.Context, practitionerID, date string) *models.DailyAvailability {
	if s.Cache == nil {
		return nil
	}
	raw, err := s.Cache.Get(ctx, availabilityKey(practitionerID, date)).Result()
	if err != nil {
		return nil
	}
	var snap models.DailyAvailability
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil
	}
	return &snap
}

func (s *DefaultAvailabilityService) storeSnapshot(ctx context.Context, snap *models.DailyAvailability) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, availabilityKey(snap.PractitionerID, snap.Date), raw, utils.AvailabilityCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache availability snapshot", zap.Error(err))
	}
}

func (s *DefaultAvailabilityService) patientName(ctx context.Context, patientID string) string {
	if s.PatientRepo == nil {
		return ""
	}
	p, err := s.PatientRepo.GetByID(ctx, patientID)
	if err != nil || p == nil {
		return ""
	}
	return p.Name
}

func firstOverlapping(slot models.Slot, appts []models.Appointment) *models.Appointment {
	for i := range appts {
		if Overlaps(slot.Start, slot.End, appts[i].Start, appts[i].End) {
			return &appts[i]
		}
	}
	return nil
}
