package scheduling

import "medagenda/models"

// GenerateCandidateSlots produces the ordered slot lattice between open and
// close (minutes from midnight): the first slot starts at open, each next
// slot starts duration minutes later, and a trailing slot whose end would
// pass close is dropped. The generator holds no state between calls.
func GenerateCandidateSlots(open, close, duration int) []models.Slot {
	if duration <= 0 || open >= close {
		return nil
	}
	var slots []models.Slot
	for start := open; start+duration <= close; start += duration {
		slots = append(slots, models.Slot{Start: start, End: start + duration})
	}
	return slots
}
