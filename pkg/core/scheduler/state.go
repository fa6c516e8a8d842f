package scheduler

import "github.com/emmalawson/stagecall/pkg/core/model"

// scheduleState is the mutable ledger of one scheduling run: minutes
// still owed per group and venue minutes still bookable per slot. It is
// created fresh for every run and threaded through the slot fold, never
// shared.
type scheduleState struct {
	remaining map[string]int
	capacity  map[string]int
}

func newScheduleState(groups []model.DanceGroup, slots []model.VenueSlot) *scheduleState {
	state := &scheduleState{
		remaining: make(map[string]int, len(groups)),
		capacity:  make(map[string]int, len(slots)),
	}
	for _, g := range groups {
		state.remaining[g.ID] = g.RequestedMinutes
	}
	for _, s := range slots {
		state.capacity[s.ID] = s.Window.Duration()
	}
	return state
}
