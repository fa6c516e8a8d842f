package scheduler

import (
	"fmt"

	"github.com/emmalawson/stagecall/pkg/core/model"
)

// ValidationError describes one internal consistency violation in a
// finished schedule. The generator re-checks its own output before
// reporting success; a violation means the generator misbehaved, not that
// the inputs were infeasible.
type ValidationError struct {
	SlotID      string
	GroupID     string
	Rule        string
	Description string
}

// Validate re-checks a finished schedule against the allocation rules:
// no entry may outgrow the window it was drawn from, no slot may hand out
// more minutes than it has, and every group's allocations plus its
// reported remainder must equal its request. An empty slice means the
// schedule is sound.
func Validate(outcome *Outcome, groups []model.DanceGroup, slots []model.VenueSlot) []ValidationError {
	var errors []ValidationError

	allocatedBySlot := make(map[string]int, len(slots))
	allocatedByGroup := make(map[string]int, len(groups))
	for _, entry := range outcome.Entries {
		allocatedBySlot[entry.SlotID] += entry.Minutes
		allocatedByGroup[entry.GroupID] += entry.Minutes

		if entry.Minutes <= 0 {
			errors = append(errors, ValidationError{
				SlotID:      entry.SlotID,
				GroupID:     entry.GroupID,
				Rule:        "allocation-bound",
				Description: fmt.Sprintf("entry allocates %d minutes", entry.Minutes),
			})
		}
		if entry.Minutes > entry.Window.Duration() {
			errors = append(errors, ValidationError{
				SlotID:  entry.SlotID,
				GroupID: entry.GroupID,
				Rule:    "allocation-bound",
				Description: fmt.Sprintf("entry allocates %d minutes from a %d minute window",
					entry.Minutes, entry.Window.Duration()),
			})
		}
	}

	for _, slot := range slots {
		if allocated := allocatedBySlot[slot.ID]; allocated > slot.Window.Duration() {
			errors = append(errors, ValidationError{
				SlotID: slot.ID,
				Rule:   "slot-capacity",
				Description: fmt.Sprintf("slot allocates %d minutes but only has %d",
					allocated, slot.Window.Duration()),
			})
		}
	}

	remainderByGroup := make(map[string]int, len(outcome.UnderScheduled))
	for _, r := range outcome.UnderScheduled {
		remainderByGroup[r.GroupID] = r.MinutesRemaining
	}
	for _, g := range groups {
		got := allocatedByGroup[g.ID] + remainderByGroup[g.ID]
		if got != g.RequestedMinutes {
			errors = append(errors, ValidationError{
				GroupID: g.ID,
				Rule:    "request-accounting",
				Description: fmt.Sprintf("allocated %d + remaining %d does not equal the %d requested",
					allocatedByGroup[g.ID], remainderByGroup[g.ID], g.RequestedMinutes),
			})
		}
	}

	return errors
}
