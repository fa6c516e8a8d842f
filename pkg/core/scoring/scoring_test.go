package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmalawson/stagecall/pkg/core/conflict"
	"github.com/emmalawson/stagecall/pkg/core/grammar"
	"github.com/emmalawson/stagecall/pkg/core/interval"
	"github.com/emmalawson/stagecall/pkg/core/model"
)

var testParser = grammar.NewParser(grammar.Options{ProductionYear: 2026})

// Monday and Tuesday evening slots, 180 minutes each.
func twoSlots() []model.VenueSlot {
	return []model.VenueSlot{
		{ID: "mon", Venue: "Main Stage", Date: interval.Date(2026, time.March, 2),
			Window: interval.TimeInterval{Start: 18 * 60, End: 21 * 60}},
		{ID: "tue", Venue: "Main Stage", Date: interval.Date(2026, time.March, 3),
			Window: interval.TimeInterval{Start: 18 * 60, End: 21 * 60}},
	}
}

func profilesOf(persons ...model.Person) []conflict.Profile {
	return conflict.BuildProfiles(testParser, persons)
}

func TestCompute_FullyFreeGroupScoresTen(t *testing.T) {
	profiles := profilesOf(
		model.Person{ID: "lead"},
		model.Person{ID: "d1"},
	)
	groups := []model.DanceGroup{{ID: "g1", LeaderID: "lead", Roster: []string{"d1"}}}

	scores := Compute(profiles, groups, twoSlots())

	require.Len(t, scores, 1)
	assert.Equal(t, 1.0, scores[0].Feasibility)
	assert.Equal(t, 10.0, scores[0].Priority)
	assert.Equal(t, 1.0, scores[0].Participation)
}

func TestCompute_BlockedLeaderZeroesFeasibility(t *testing.T) {
	profiles := profilesOf(
		model.Person{ID: "lead", Availability: "monday, tuesday"},
		model.Person{ID: "d1"},
	)
	groups := []model.DanceGroup{{ID: "g1", LeaderID: "lead", Roster: []string{"d1"}}}

	scores := Compute(profiles, groups, twoSlots())

	assert.Zero(t, scores[0].Feasibility)
	assert.Zero(t, scores[0].Priority)
	// The dancer is still fully present; participation is about the
	// roster, not the leader.
	assert.Equal(t, 1.0, scores[0].Participation)
}

func TestCompute_PartiallyBlockedRoster(t *testing.T) {
	// d2 loses all of Monday: the group can only meet in full on Tuesday.
	profiles := profilesOf(
		model.Person{ID: "lead"},
		model.Person{ID: "d1"},
		model.Person{ID: "d2", Availability: "monday"},
	)
	groups := []model.DanceGroup{{ID: "g1", LeaderID: "lead", Roster: []string{"d1", "d2"}}}

	scores := Compute(profiles, groups, twoSlots())

	assert.InDelta(t, 0.5, scores[0].Feasibility, 1e-9)
	assert.InDelta(t, 5.0, scores[0].Priority, 1e-9)
	// d1 contributes 360 free minutes, d2 contributes 180, out of 720.
	assert.InDelta(t, 0.75, scores[0].Participation, 1e-9)
}

func TestCompute_FeasibilityUsesOverlapNotSum(t *testing.T) {
	// Each dancer is free a different half of the slot; together they
	// have no common minute with the leader present.
	profiles := profilesOf(
		model.Person{ID: "lead"},
		model.Person{ID: "d1", Availability: "m before 7:30pm, tu"},
		model.Person{ID: "d2", Availability: "m after 7:30pm, tu"},
	)
	slots := twoSlots()[:1]
	groups := []model.DanceGroup{{ID: "g1", LeaderID: "lead", Roster: []string{"d1", "d2"}}}

	scores := Compute(profiles, groups, slots)

	assert.Zero(t, scores[0].Feasibility)
	assert.InDelta(t, 0.5, scores[0].Participation, 1e-9)
}

func TestCompute_MissingProfileReadsAsUnavailable(t *testing.T) {
	profiles := profilesOf(model.Person{ID: "lead"})
	groups := []model.DanceGroup{{ID: "g1", LeaderID: "lead", Roster: []string{"ghost"}}}

	scores := Compute(profiles, groups, twoSlots())

	assert.Zero(t, scores[0].Feasibility)
	assert.Zero(t, scores[0].Participation)
}

func TestCompute_EmptyRosterFollowsLeaderOnly(t *testing.T) {
	profiles := profilesOf(model.Person{ID: "lead", Availability: "monday"})
	groups := []model.DanceGroup{{ID: "solo", LeaderID: "lead"}}

	scores := Compute(profiles, groups, twoSlots())

	assert.InDelta(t, 0.5, scores[0].Feasibility, 1e-9)
	assert.Equal(t, 1.0, scores[0].Participation)
}

func TestCompute_NoSlotsScoresZero(t *testing.T) {
	profiles := profilesOf(model.Person{ID: "lead"})
	groups := []model.DanceGroup{{ID: "g1", LeaderID: "lead"}}

	scores := Compute(profiles, groups, nil)

	assert.Zero(t, scores[0].Feasibility)
	assert.Zero(t, scores[0].Priority)
}

func TestCompute_ScoresStayInRange(t *testing.T) {
	profiles := profilesOf(
		model.Person{ID: "lead", Availability: "m after 7pm"},
		model.Person{ID: "d1", Availability: "tu before 8pm"},
		model.Person{ID: "d2", Availability: "Mar 2 2026"},
	)
	groups := []model.DanceGroup{
		{ID: "g1", LeaderID: "lead", Roster: []string{"d1", "d2"}},
		{ID: "g2", LeaderID: "d1", Roster: []string{"d2"}},
	}

	for _, s := range Compute(profiles, groups, twoSlots()) {
		assert.GreaterOrEqual(t, s.Priority, 0.0)
		assert.LessOrEqual(t, s.Priority, 10.0)
		assert.GreaterOrEqual(t, s.Participation, 0.0)
		assert.LessOrEqual(t, s.Participation, 1.0)
	}
}

func TestRank_MostConstrainedFirst(t *testing.T) {
	scores := []Score{
		{GroupID: "easy", Priority: 9.2, Participation: 0.9},
		{GroupID: "hard", Priority: 1.5, Participation: 0.8},
		{GroupID: "mid", Priority: 5.0, Participation: 0.5},
	}

	ranked := Rank(scores, DefaultEpsilon)

	assert.Equal(t, []string{"hard", "mid", "easy"}, groupIDs(ranked))
}

func TestRank_NearTieFallsToParticipation(t *testing.T) {
	scores := []Score{
		{GroupID: "present", Priority: 5.00, Participation: 0.9},
		{GroupID: "absent", Priority: 5.04, Participation: 0.2},
	}

	ranked := Rank(scores, DefaultEpsilon)

	// Priorities are within epsilon; the group whose dancers show up
	// less goes first.
	assert.Equal(t, []string{"absent", "present"}, groupIDs(ranked))
}

func TestRank_ClearGapIgnoresParticipation(t *testing.T) {
	scores := []Score{
		{GroupID: "a", Priority: 5.0, Participation: 0.9},
		{GroupID: "b", Priority: 5.2, Participation: 0.1},
	}

	ranked := Rank(scores, DefaultEpsilon)

	assert.Equal(t, []string{"a", "b"}, groupIDs(ranked))
}

func TestRank_GroupIDBreaksExactTies(t *testing.T) {
	scores := []Score{
		{GroupID: "b", Priority: 5.0, Participation: 0.5},
		{GroupID: "a", Priority: 5.0, Participation: 0.5},
	}

	ranked := Rank(scores, DefaultEpsilon)

	assert.Equal(t, []string{"a", "b"}, groupIDs(ranked))
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	scores := []Score{
		{GroupID: "b", Priority: 9.0},
		{GroupID: "a", Priority: 1.0},
	}

	Rank(scores, DefaultEpsilon)

	assert.Equal(t, "b", scores[0].GroupID)
}

func groupIDs(scores []Score) []string {
	ids := make([]string, 0, len(scores))
	for _, s := range scores {
		ids = append(ids, s.GroupID)
	}
	return ids
}
