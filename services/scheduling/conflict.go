package scheduling

import "medagenda/models"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// OverlapsAny reports whether the slot intersects any of the intervals.
func OverlapsAny(slot models.Slot, intervals []models.Slot) bool {
	for _, iv := range intervals {
		if Overlaps(slot.Start, slot.End, iv.Start, iv.End) {
			return true
		}
	}
	return false
}
