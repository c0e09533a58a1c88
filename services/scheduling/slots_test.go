package scheduling

import (
	"testing"

	"medagenda/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCandidateSlots(t *testing.T) {
	t.Run("standard working day", func(t *testing.T) {
		// 08:00-17:00 at 30 minutes yields 18 slots.
		slots := GenerateCandidateSlots(480, 1020, 30)
		require.Len(t, slots, 18)
		assert.Equal(t, models.Slot{Start: 480, End: 510}, slots[0])
		assert.Equal(t, models.Slot{Start: 990, End: 1020}, slots[17])
	})

	t.Run("slots are contiguous and non-overlapping", func(t *testing.T) {
		slots := GenerateCandidateSlots(480, 1020, 45)
		for i := 1; i < len(slots); i++ {
			assert.Equal(t, slots[i-1].End, slots[i].Start)
		}
	})

	t.Run("trailing partial slot is discarded", func(t *testing.T) {
		// 100 minutes at 45 fits twice with 10 minutes left over.
		slots := GenerateCandidateSlots(0, 100, 45)
		require.Len(t, slots, 2)
		assert.Equal(t, 90, slots[1].End)
	})

	t.Run("slot count is floor of window over duration", func(t *testing.T) {
		for _, duration := range []int{10, 15, 20, 30, 45, 60} {
			open, close := 480, 1020
			slots := GenerateCandidateSlots(open, close, duration)
			assert.Len(t, slots, (close-open)/duration)
		}
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		assert.Nil(t, GenerateCandidateSlots(480, 1020, 0))
		assert.Nil(t, GenerateCandidateSlots(480, 1020, -30))
		assert.Nil(t, GenerateCandidateSlots(600, 600, 30))
		assert.Nil(t, GenerateCandidateSlots(700, 600, 30))
	})
}
