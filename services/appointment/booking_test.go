package appointment

import (
	"context"
	"testing"
	"time"

	"medagenda/models"
	"medagenda/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInstant(t *testing.T, date string, minute int) time.Time {
	t.Helper()
	instant, err := utils.CombineDate(date, minute)
	require.NoError(t, err)
	return instant
}

func TestCreateBooksFreeSlot(t *testing.T) {
	f := newFixture()

	appt, err := f.svc.Create(context.Background(), "pr-1", "pa-1", mustInstant(t, "2026-09-01", 600))
	require.NoError(t, err)

	assert.Equal(t, models.StatusScheduled, appt.Status)
	assert.True(t, appt.Active)
	assert.Equal(t, "2026-09-01", appt.Date)
	assert.Equal(t, 600, appt.Start)
	assert.Equal(t, 630, appt.End)

	assert.Contains(t, f.avail.keys(), "pr-1/2026-09-01")
	assert.Eventually(t, func() bool {
		return len(f.notifier.kinds()) == 1 && f.notifier.kinds()[0] == models.EventConfirmation
	}, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return len(f.reminders.scheduled()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCreateRejectsOccupiedSlot(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), "pr-1", "pa-1", mustInstant(t, "2026-09-01", 600))
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), "pr-1", "pa-1", mustInstant(t, "2026-09-01", 600))
	require.Error(t, err)
	assert.Equal(t, utils.KindConflict, utils.AsAppError(err).Kind)
}

func TestCreateRejectsBlockedSlot(t *testing.T) {
	f := newFixture()
	f.repo.blocked = []models.Blocked{
		{PractitionerID: "pr-1", Date: "2026-09-01", Start: 600, End: 660},
	}

	_, err := f.svc.Create(context.Background(), "pr-1", "pa-1", mustInstant(t, "2026-09-01", 630))
	require.Error(t, err)
	assert.Equal(t, utils.KindConflict, utils.AsAppError(err).Kind)
}

func TestCreateAdjacentSlotsDoNotConflict(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), "pr-1", "pa-1", mustInstant(t, "2026-09-01", 600))
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), "pr-1", "pa-1", mustInstant(t, "2026-09-01", 630))
	require.NoError(t, err)
}

func TestCreateUnknownParticipants(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), "pr-missing", "pa-1", mustInstant(t, "2026-09-01", 600))
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.AsAppError(err).Kind)

	_, err = f.svc.Create(context.Background(), "pr-1", "pa-missing", mustInstant(t, "2026-09-01", 600))
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.AsAppError(err).Kind)
}

func TestCreateSurvivesNotifierFailure(t *testing.T) {
	f := newFixture()
	f.notifier.err = assert.AnError

	appt, err := f.svc.Create(context.Background(), "pr-1", "pa-1", mustInstant(t, "2026-09-01", 600))
	require.NoError(t, err)
	require.NotNil(t, appt)

	// The booking stands even though delivery failed.
	stored, err := f.svc.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, stored.Status)
}

func TestRebookingCancelledSlot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.Create(ctx, "pr-1", "pa-1", mustInstant(t, "2026-09-01", 600))
	require.NoError(t, err)

	_, err = f.svc.Transition(ctx, first.ID, models.ActionCancel, models.Actor{ID: "pa-1", Role: models.RolePatient})
	require.NoError(t, err)

	// The cancelled appointment no longer occupies the interval.
	second, err := f.svc.Create(ctx, "pr-1", "pa-1", mustInstant(t, "2026-09-01", 600))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}
