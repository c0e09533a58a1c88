package appointment

import (
	"context"
	"testing"
	"time"

	"medagenda/models"
	"medagenda/services/realtime"
	"medagenda/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	frontDesk    = models.Actor{ID: "fd-1", Role: models.RoleFrontDesk}
	admin        = models.Actor{ID: "adm-1", Role: models.RoleAdmin}
	drGarcia     = models.Actor{ID: "pr-1", Role: models.RolePractitioner}
	otherDoctor  = models.Actor{ID: "pr-2", Role: models.RolePractitioner}
	anaLopez     = models.Actor{ID: "pa-1", Role: models.RolePatient}
	otherPatient = models.Actor{ID: "pa-2", Role: models.RolePatient}
)

func bookScheduled(t *testing.T, f *testFixture) *models.Appointment {
	t.Helper()
	appt, err := f.svc.Create(context.Background(), "pr-1", "pa-1", mustInstant(t, "2026-09-01", 600))
	require.NoError(t, err)
	return appt
}

func TestFullLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	appt := bookScheduled(t, f)

	waiting, err := f.svc.Transition(ctx, appt.ID, models.ActionArrive, frontDesk)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, waiting.Status)
	assert.Contains(t, f.realtime.pushed(), realtime.EventPatientWaiting)

	done, err := f.svc.Transition(ctx, appt.ID, models.ActionComplete, drGarcia)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.True(t, done.Active)
}

func TestTransitionPermissions(t *testing.T) {
	cases := []struct {
		name   string
		action models.TransitionAction
		actor  models.Actor
	}{
		{"patient cannot check in", models.ActionArrive, anaLopez},
		{"practitioner cannot check in", models.ActionArrive, drGarcia},
		{"front desk cannot complete", models.ActionComplete, frontDesk},
		{"patient cannot complete", models.ActionComplete, anaLopez},
		{"other patient cannot cancel", models.ActionCancel, otherPatient},
		{"other practitioner cannot cancel", models.ActionCancel, otherDoctor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			appt := bookScheduled(t, f)

			_, err := f.svc.Transition(context.Background(), appt.ID, tc.action, tc.actor)
			require.Error(t, err)
			assert.Equal(t, utils.KindForbidden, utils.AsAppError(err).Kind)
		})
	}
}

func TestCompleteRequiresOwningPractitioner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	appt := bookScheduled(t, f)

	_, err := f.svc.Transition(ctx, appt.ID, models.ActionArrive, frontDesk)
	require.NoError(t, err)

	_, err = f.svc.Transition(ctx, appt.ID, models.ActionComplete, otherDoctor)
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.AsAppError(err).Kind)

	_, err = f.svc.Transition(ctx, appt.ID, models.ActionComplete, drGarcia)
	require.NoError(t, err)
}

func TestTransitionPreconditions(t *testing.T) {
	t.Run("cannot complete before check in", func(t *testing.T) {
		f := newFixture()
		appt := bookScheduled(t, f)

		_, err := f.svc.Transition(context.Background(), appt.ID, models.ActionComplete, drGarcia)
		require.Error(t, err)
		assert.Equal(t, utils.KindInvalidTransition, utils.AsAppError(err).Kind)
	})

	t.Run("cannot check in twice", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		appt := bookScheduled(t, f)

		_, err := f.svc.Transition(ctx, appt.ID, models.ActionArrive, frontDesk)
		require.NoError(t, err)
		_, err = f.svc.Transition(ctx, appt.ID, models.ActionArrive, frontDesk)
		require.Error(t, err)
		assert.Equal(t, utils.KindInvalidTransition, utils.AsAppError(err).Kind)
	})

	t.Run("terminal states reject everything", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		appt := bookScheduled(t, f)

		_, err := f.svc.Transition(ctx, appt.ID, models.ActionCancel, anaLopez)
		require.NoError(t, err)

		for _, action := range []models.TransitionAction{models.ActionArrive, models.ActionCancel} {
			_, err = f.svc.Transition(ctx, appt.ID, action, admin)
			require.Error(t, err)
			assert.Equal(t, utils.KindInvalidTransition, utils.AsAppError(err).Kind)
		}
	})
}

func TestCancelFromWaiting(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	appt := bookScheduled(t, f)

	_, err := f.svc.Transition(ctx, appt.ID, models.ActionArrive, frontDesk)
	require.NoError(t, err)

	cancelled, err := f.svc.Transition(ctx, appt.ID, models.ActionCancel, frontDesk)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.False(t, cancelled.Active)

	assert.Eventually(t, func() bool {
		kinds := f.notifier.kinds()
		return len(kinds) > 0 && kinds[len(kinds)-1] == models.EventCancellation
	}, time.Second, 10*time.Millisecond)
}

func TestTransitionUnknownAppointment(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Transition(context.Background(), "nope", models.ActionArrive, frontDesk)
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.AsAppError(err).Kind)
}

func TestRescheduleMovesAppointment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	appt := bookScheduled(t, f)

	moved, err := f.svc.Reschedule(ctx, appt.ID, mustInstant(t, "2026-09-02", 480), anaLopez)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-02", moved.Date)
	assert.Equal(t, 480, moved.Start)
	assert.Equal(t, 510, moved.End)

	// Both the vacated and the new date were invalidated.
	keys := f.avail.keys()
	assert.Contains(t, keys, "pr-1/2026-09-01")
	assert.Contains(t, keys, "pr-1/2026-09-02")

	// The old interval is free again.
	_, err = f.svc.Create(ctx, "pr-1", "pa-1", mustInstant(t, "2026-09-01", 600))
	require.NoError(t, err)
}

func TestRescheduleRejectsOccupiedTarget(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first := bookScheduled(t, f)
	second, err := f.svc.Create(ctx, "pr-1", "pa-1", mustInstant(t, "2026-09-01", 630))
	require.NoError(t, err)

	_, err = f.svc.Reschedule(ctx, second.ID, mustInstant(t, "2026-09-01", 600), anaLopez)
	require.Error(t, err)
	assert.Equal(t, utils.KindConflict, utils.AsAppError(err).Kind)
	_ = first
}

func TestRescheduleWithinOwnInterval(t *testing.T) {
	f := newFixture()
	appt := bookScheduled(t, f)

	// Moving onto its own current slot is a no-op, not a conflict.
	moved, err := f.svc.Reschedule(context.Background(), appt.ID, mustInstant(t, "2026-09-01", 600), anaLopez)
	require.NoError(t, err)
	assert.Equal(t, 600, moved.Start)
}

func TestRescheduleTerminalRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	appt := bookScheduled(t, f)

	_, err := f.svc.Transition(ctx, appt.ID, models.ActionCancel, anaLopez)
	require.NoError(t, err)

	_, err = f.svc.Reschedule(ctx, appt.ID, mustInstant(t, "2026-09-02", 480), anaLopez)
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidTransition, utils.AsAppError(err).Kind)
}

func TestOverrideRequiresAdmin(t *testing.T) {
	f := newFixture()
	appt := bookScheduled(t, f)

	for _, actor := range []models.Actor{anaLopez, drGarcia, frontDesk} {
		_, err := f.svc.Override(context.Background(), appt.ID, models.StatusCompleted, actor)
		require.Error(t, err)
		assert.Equal(t, utils.KindForbidden, utils.AsAppError(err).Kind)
	}
}

func TestOverrideSkipsTransitionRulesAndAudits(t *testing.T) {
	f := newFixture()
	appt := bookScheduled(t, f)

	// agendada -> atendida is not reachable through the normal table.
	forced, err := f.svc.Override(context.Background(), appt.ID, models.StatusCompleted, admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, forced.Status)

	entries := f.audit.list()
	require.Len(t, entries, 1)
	assert.Equal(t, appt.ID, entries[0].AppointmentID)
	assert.Equal(t, admin.ID, entries[0].Actor)
	assert.Equal(t, models.StatusScheduled, entries[0].From)
	assert.Equal(t, models.StatusCompleted, entries[0].To)
}

func TestOverrideRejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	appt := bookScheduled(t, f)

	_, err := f.svc.Override(context.Background(), appt.ID, "perdida", admin)
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.AsAppError(err).Kind)
	assert.Empty(t, f.audit.list())
}
