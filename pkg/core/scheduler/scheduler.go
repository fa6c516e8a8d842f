// Package scheduler turns scored groups and dated venue slots into a
// rehearsal schedule. It is a deterministic fold over the slots in
// chronological order: most constrained group first, full-company coverage
// preferred, leftover minutes carried to the next slot.
package scheduler

import (
	"fmt"
	"sort"

	"github.com/emmalawson/stagecall/pkg/core/conflict"
	"github.com/emmalawson/stagecall/pkg/core/interval"
	"github.com/emmalawson/stagecall/pkg/core/model"
	"github.com/emmalawson/stagecall/pkg/core/scoring"
)

// Coverage tags who is in the room for an allocation.
type Coverage string

const (
	// CoverageFull means the leader and the entire roster are free.
	CoverageFull Coverage = "full"
	// CoverageLeaderOnly means the leader is free but some dancers are not.
	CoverageLeaderOnly Coverage = "leader_only"
)

// Entry is one allocation of rehearsal minutes to a group inside a slot.
// Window is the free stretch the minutes were drawn from; Minutes never
// exceeds its duration.
type Entry struct {
	SlotID   string
	GroupID  string
	Coverage Coverage
	Window   interval.TimeInterval
	Minutes  int
}

// Remainder is a group that ended the run short of its request.
type Remainder struct {
	GroupID          string
	MinutesRemaining int
}

// Outcome is the result of a scheduling run.
type Outcome struct {
	// Entries in allocation order: chronological by slot, rank order
	// within a slot.
	Entries []Entry

	// UnderScheduled lists groups with minutes still owed, by group ID.
	// Running out of venue capacity is an expected outcome, not an error.
	UnderScheduled []Remainder

	// ValidationErrors contains internal consistency violations found in
	// the finished schedule. Any entry here is a scheduling bug.
	ValidationErrors []ValidationError

	// Success means every group got its requested minutes and the
	// schedule passed validation.
	Success bool
}

// Inputs bundles everything a scheduling run folds over. Ranked must come
// from scoring.Rank over exactly the groups being scheduled.
type Inputs struct {
	Profiles []conflict.Profile
	Groups   []model.DanceGroup
	Ranked   []scoring.Score
	Slots    []model.VenueSlot
}

// Generate produces the schedule. It never mutates its inputs and returns
// an error only for broken wiring between groups and scores; running out
// of capacity is reported through the outcome instead.
func Generate(in Inputs) (*Outcome, error) {
	order, err := scheduleOrder(in.Groups, in.Ranked)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]conflict.Profile, len(in.Profiles))
	for _, p := range in.Profiles {
		profiles[p.Person.ID] = p
	}

	slots := make([]model.VenueSlot, len(in.Slots))
	copy(slots, in.Slots)
	model.SortSlots(slots)

	state := newScheduleState(in.Groups, slots)
	outcome := &Outcome{}

	for _, slot := range slots {
		for _, group := range order {
			if state.remaining[group.ID] == 0 || state.capacity[slot.ID] == 0 {
				continue
			}

			window, coverage, ok := bestWindow(profiles, group, slot)
			if !ok {
				continue
			}

			minutes := state.remaining[group.ID]
			if d := window.Duration(); d < minutes {
				minutes = d
			}
			if c := state.capacity[slot.ID]; c < minutes {
				minutes = c
			}

			state.remaining[group.ID] -= minutes
			state.capacity[slot.ID] -= minutes
			outcome.Entries = append(outcome.Entries, Entry{
				SlotID:   slot.ID,
				GroupID:  group.ID,
				Coverage: coverage,
				Window:   window,
				Minutes:  minutes,
			})
		}
	}

	for _, group := range in.Groups {
		if left := state.remaining[group.ID]; left > 0 {
			outcome.UnderScheduled = append(outcome.UnderScheduled,
				Remainder{GroupID: group.ID, MinutesRemaining: left})
		}
	}
	sort.Slice(outcome.UnderScheduled, func(i, j int) bool {
		return outcome.UnderScheduled[i].GroupID < outcome.UnderScheduled[j].GroupID
	})

	outcome.ValidationErrors = Validate(outcome, in.Groups, slots)
	outcome.Success = len(outcome.UnderScheduled) == 0 && len(outcome.ValidationErrors) == 0
	return outcome, nil
}

// scheduleOrder resolves the ranked scores back to groups. Every group
// must be scored and every score must name a group; a mismatch means the
// caller scored a different group set than it is scheduling.
func scheduleOrder(groups []model.DanceGroup, ranked []scoring.Score) ([]model.DanceGroup, error) {
	byID := make(map[string]model.DanceGroup, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}

	order := make([]model.DanceGroup, 0, len(ranked))
	seen := make(map[string]bool, len(ranked))
	for _, score := range ranked {
		g, ok := byID[score.GroupID]
		if !ok {
			return nil, fmt.Errorf("ranked group %q is not being scheduled", score.GroupID)
		}
		if seen[score.GroupID] {
			return nil, fmt.Errorf("group %q is ranked twice", score.GroupID)
		}
		seen[score.GroupID] = true
		order = append(order, g)
	}
	for _, g := range groups {
		if !seen[g.ID] {
			return nil, fmt.Errorf("group %q has no priority score", g.ID)
		}
	}
	return order, nil
}

// bestWindow picks the stretch to draw minutes from: the widest
// full-coverage window when one exists, otherwise the widest leader-only
// window. Ties go to the earliest window.
func bestWindow(profiles map[string]conflict.Profile, group model.DanceGroup, slot model.VenueSlot) (interval.TimeInterval, Coverage, bool) {
	leaderFree := freeFor(profiles, group.LeaderID, slot)

	full := leaderFree
	for _, memberID := range group.Roster {
		full = interval.IntersectAll(full, freeFor(profiles, memberID, slot))
	}

	if window, ok := widest(full); ok {
		return window, CoverageFull, true
	}
	if window, ok := widest(leaderFree); ok {
		return window, CoverageLeaderOnly, true
	}
	return interval.TimeInterval{}, "", false
}

func freeFor(profiles map[string]conflict.Profile, personID string, slot model.VenueSlot) []interval.TimeInterval {
	profile, ok := profiles[personID]
	if !ok {
		return nil
	}
	return conflict.FreeWindows(profile, slot)
}

func widest(windows []interval.TimeInterval) (interval.TimeInterval, bool) {
	best := interval.TimeInterval{}
	found := false
	for _, w := range windows {
		if w.Duration() == 0 {
			continue
		}
		if !found || w.Duration() > best.Duration() {
			best = w
			found = true
		}
	}
	return best, found
}
