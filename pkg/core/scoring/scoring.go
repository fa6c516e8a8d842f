// Package scoring measures how hard each dance group is to schedule.
// Feasibility captures the share of venue time the whole group can use at
// once; participation captures how present the roster is across the run.
// Scheduling priority goes to the groups with the least room to move.
package scoring

import (
	"github.com/emmalawson/stagecall/pkg/core/conflict"
	"github.com/emmalawson/stagecall/pkg/core/interval"
	"github.com/emmalawson/stagecall/pkg/core/model"
)

// DefaultEpsilon is the priority gap, on the 0-10 scale, under which two
// groups count as equally constrained and participation decides.
const DefaultEpsilon = 0.05

// Score is one group's scheduling measures. Priority is Feasibility on a
// 0-10 scale; a low score means the group has few usable minutes and
// should be placed early.
type Score struct {
	GroupID       string
	Priority      float64
	Feasibility   float64
	Participation float64
}

// Compute scores every group against the slots. Profiles must cover each
// group's leader and roster; missing profiles read as fully unavailable,
// matching the conflict layer's treatment of bad data.
func Compute(profiles []conflict.Profile, groups []model.DanceGroup, slots []model.VenueSlot) []Score {
	byID := make(map[string]conflict.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.Person.ID] = p
	}

	totalMinutes := 0
	for _, slot := range slots {
		totalMinutes += slot.Window.Duration()
	}

	scores := make([]Score, 0, len(groups))
	for _, g := range groups {
		scores = append(scores, scoreGroup(byID, g, slots, totalMinutes))
	}
	return scores
}

func scoreGroup(byID map[string]conflict.Profile, g model.DanceGroup, slots []model.VenueSlot, totalMinutes int) Score {
	score := Score{GroupID: g.ID}

	feasibleMinutes := 0
	memberMinutes := 0
	for _, slot := range slots {
		together := freeFor(byID, g.LeaderID, slot)
		for _, memberID := range g.Roster {
			free := freeFor(byID, memberID, slot)
			memberMinutes += interval.TotalDuration(free)
			together = interval.IntersectAll(together, free)
		}
		feasibleMinutes += interval.TotalDuration(together)
	}

	if totalMinutes > 0 {
		score.Feasibility = float64(feasibleMinutes) / float64(totalMinutes)
	}
	score.Priority = score.Feasibility * 10

	// Vacuously full: with no dancers or no venue time there is nobody
	// whose attendance could fall short.
	score.Participation = 1
	if denom := len(g.Roster) * totalMinutes; denom > 0 {
		score.Participation = float64(memberMinutes) / float64(denom)
	}
	return score
}

func freeFor(byID map[string]conflict.Profile, personID string, slot model.VenueSlot) []interval.TimeInterval {
	profile, ok := byID[personID]
	if !ok {
		return nil
	}
	return conflict.FreeWindows(profile, slot)
}
