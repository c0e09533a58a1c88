package blocking

import (
	"context"
	"sync"
	"testing"

	practitionerRepo "medagenda/database/repository/practitioner"
	schedulerRepo "medagenda/database/repository/scheduler"
	"medagenda/models"
	"medagenda/services/scheduling"
	"medagenda/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSchedulerRepo struct {
	schedulerRepo.SchedulerRepository
	mu           sync.Mutex
	appointments []models.Appointment
	blocked      map[string][]models.Blocked // practitionerID+date
}

func newMemSchedulerRepo() *memSchedulerRepo {
	return &memSchedulerRepo{blocked: make(map[string][]models.Blocked)}
}

func key(practitionerID, date string) string { return practitionerID + "/" + date }

func (r *memSchedulerRepo) activeOverlap(practitionerID, date string, start, end int) bool {
	for _, a := range r.appointments {
		if a.Active && a.PractitionerID == practitionerID && a.Date == date &&
			scheduling.Overlaps(start, end, a.Start, a.End) {
			return true
		}
	}
	return false
}

func (r *memSchedulerRepo) ReplaceBlockedIntervals(ctx context.Context, practitionerID, date string, blocks []models.Blocked) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range blocks {
		if r.activeOverlap(practitionerID, date, b.Start, b.End) {
			return schedulerRepo.ErrBookingOverlap
		}
	}
	r.blocked[key(practitionerID, date)] = blocks
	return nil
}

func (r *memSchedulerRepo) CloseDay(ctx context.Context, practitionerID, date string, block models.Blocked) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appointments {
		if a.Active && a.PractitionerID == practitionerID && a.Date == date {
			return schedulerRepo.ErrAppointmentsExist
		}
	}
	r.blocked[key(practitionerID, date)] = []models.Blocked{block}
	return nil
}

func (r *memSchedulerRepo) GetBlockedIntervals(ctx context.Context, practitionerID, date string) ([]models.Blocked, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blocked[key(practitionerID, date)], nil
}

type memPractitionerRepo struct {
	practitionerRepo.PractitionerRepository
}

func (r *memPractitionerRepo) GetByID(ctx context.Context, id string) (*models.Practitioner, error) {
	if id != "pr-1" {
		return nil, nil
	}
	return &models.Practitioner{ID: "pr-1", Name: "Dra. García", SlotDuration: 30, DayStart: 480, DayEnd: 1020}, nil
}

type noopAvailability struct {
	scheduling.AvailabilityService
}

func (noopAvailability) InvalidateCache(ctx context.Context, practitionerID, date string) {}

func newTestService(repo *memSchedulerRepo) *DefaultBlockingService {
	return &DefaultBlockingService{
		Repo:             repo,
		PractitionerRepo: &memPractitionerRepo{},
		Availability:     noopAvailability{},
	}
}

func TestSetBlockedIntervalsReplacesSet(t *testing.T) {
	repo := newMemSchedulerRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.SetBlockedIntervals(ctx, "pr-1", "2026-09-01",
		[]models.Slot{{Start: 600, End: 660}}, "comida")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "comida", first[0].Reason)

	// A second call discards the first set entirely.
	second, err := svc.SetBlockedIntervals(ctx, "pr-1", "2026-09-01",
		[]models.Slot{{Start: 900, End: 930}}, "")
	require.NoError(t, err)
	require.Len(t, second, 1)

	stored, err := svc.GetBlockedIntervals(ctx, "pr-1", "2026-09-01")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 900, stored[0].Start)
}

func TestSetBlockedIntervalsEmptySetClears(t *testing.T) {
	repo := newMemSchedulerRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.SetBlockedIntervals(ctx, "pr-1", "2026-09-01",
		[]models.Slot{{Start: 600, End: 660}}, "")
	require.NoError(t, err)

	_, err = svc.SetBlockedIntervals(ctx, "pr-1", "2026-09-01", nil, "")
	require.NoError(t, err)

	stored, err := svc.GetBlockedIntervals(ctx, "pr-1", "2026-09-01")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSetBlockedIntervalsValidation(t *testing.T) {
	svc := newTestService(newMemSchedulerRepo())
	ctx := context.Background()

	cases := []struct {
		name      string
		intervals []models.Slot
	}{
		{"empty interval", []models.Slot{{Start: 600, End: 600}}},
		{"inverted interval", []models.Slot{{Start: 660, End: 600}}},
		{"before opening", []models.Slot{{Start: 400, End: 500}}},
		{"past closing", []models.Slot{{Start: 1000, End: 1080}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SetBlockedIntervals(ctx, "pr-1", "2026-09-01", tc.intervals, "")
			require.Error(t, err)
			assert.Equal(t, utils.KindValidation, utils.AsAppError(err).Kind)
		})
	}

	_, err := svc.SetBlockedIntervals(ctx, "pr-1", "bad-date", []models.Slot{{Start: 600, End: 660}}, "")
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.AsAppError(err).Kind)

	_, err = svc.SetBlockedIntervals(ctx, "pr-missing", "2026-09-01", []models.Slot{{Start: 600, End: 660}}, "")
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.AsAppError(err).Kind)
}

func TestSetBlockedIntervalsRejectsAppointmentOverlap(t *testing.T) {
	repo := newMemSchedulerRepo()
	repo.appointments = []models.Appointment{
		{ID: "ap-1", PractitionerID: "pr-1", Date: "2026-09-01",
			Start: 600, End: 630, Status: models.StatusScheduled, Active: true},
	}
	svc := newTestService(repo)

	_, err := svc.SetBlockedIntervals(context.Background(), "pr-1", "2026-09-01",
		[]models.Slot{{Start: 570, End: 630}}, "")
	require.Error(t, err)
	assert.Equal(t, utils.KindConflict, utils.AsAppError(err).Kind)

	// Nothing was written.
	stored, err := svc.GetBlockedIntervals(context.Background(), "pr-1", "2026-09-01")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSetBlockedIntervalsIgnoresCancelled(t *testing.T) {
	repo := newMemSchedulerRepo()
	repo.appointments = []models.Appointment{
		{ID: "ap-1", PractitionerID: "pr-1", Date: "2026-09-01",
			Start: 600, End: 630, Status: models.StatusCancelled, Active: false},
	}
	svc := newTestService(repo)

	_, err := svc.SetBlockedIntervals(context.Background(), "pr-1", "2026-09-01",
		[]models.Slot{{Start: 600, End: 630}}, "")
	require.NoError(t, err)
}

func TestCloseDayBlocksWholeWorkingDay(t *testing.T) {
	repo := newMemSchedulerRepo()
	svc := newTestService(repo)

	block, err := svc.CloseDay(context.Background(), "pr-1", "2026-09-01", "congreso")
	require.NoError(t, err)
	assert.Equal(t, 480, block.Start)
	assert.Equal(t, 1020, block.End)
	assert.Equal(t, "congreso", block.Reason)

	stored, err := svc.GetBlockedIntervals(context.Background(), "pr-1", "2026-09-01")
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestCloseDayDefaultReason(t *testing.T) {
	svc := newTestService(newMemSchedulerRepo())

	block, err := svc.CloseDay(context.Background(), "pr-1", "2026-09-01", "")
	require.NoError(t, err)
	assert.Equal(t, "día cerrado", block.Reason)
}

func TestCloseDayRefusedWithActiveAppointments(t *testing.T) {
	repo := newMemSchedulerRepo()
	repo.appointments = []models.Appointment{
		{ID: "ap-1", PractitionerID: "pr-1", Date: "2026-09-01",
			Start: 600, End: 630, Status: models.StatusScheduled, Active: true},
	}
	svc := newTestService(repo)

	_, err := svc.CloseDay(context.Background(), "pr-1", "2026-09-01", "")
	require.Error(t, err)
	assert.Equal(t, utils.KindConflict, utils.AsAppError(err).Kind)
}
