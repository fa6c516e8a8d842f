package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmalawson/stagecall/pkg/core/interval"
)

func validProduction() *Production {
	return &Production{
		Persons: []Person{
			{ID: "casey", Name: "Casey"},
			{ID: "jordan", Name: "Jordan"},
			{ID: "riley", Name: "Riley"},
		},
		Groups: []DanceGroup{
			{ID: "opening", LeaderID: "casey", Roster: []string{"jordan", "riley"}, RequestedMinutes: 90},
		},
		Slots: []VenueSlot{
			{ID: "s1", Venue: "Main Stage", Date: interval.Date(2026, time.March, 2),
				Window: interval.TimeInterval{Start: 18 * 60, End: 21 * 60}},
		},
	}
}

func TestValidate_AcceptsConsistentProduction(t *testing.T) {
	assert.NoError(t, validProduction().Validate())
}

func TestValidate_RejectsUnknownLeader(t *testing.T) {
	p := validProduction()
	p.Groups[0].LeaderID = "nobody"

	err := p.Validate()

	require.Error(t, err)
	ierr, ok := err.(*IntegrityError)
	require.True(t, ok)
	assert.Equal(t, "group", ierr.Kind)
	assert.Equal(t, "opening", ierr.ID)
	assert.Contains(t, ierr.Reason, `leader "nobody"`)
}

func TestValidate_RejectsUnknownRosterMember(t *testing.T) {
	p := validProduction()
	p.Groups[0].Roster = append(p.Groups[0].Roster, "ghost")

	err := p.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `roster member "ghost"`)
}

func TestValidate_RejectsDuplicateIDs(t *testing.T) {
	p := validProduction()
	p.Persons = append(p.Persons, Person{ID: "casey", Name: "Casey Two"})
	require.ErrorContains(t, p.Validate(), "duplicate person ID")

	p = validProduction()
	p.Groups = append(p.Groups, p.Groups[0])
	require.ErrorContains(t, p.Validate(), "duplicate group ID")

	p = validProduction()
	p.Slots = append(p.Slots, p.Slots[0])
	require.ErrorContains(t, p.Validate(), "duplicate slot ID")
}

func TestValidate_RejectsEmptySlotWindow(t *testing.T) {
	p := validProduction()
	p.Slots[0].Window = interval.TimeInterval{Start: 19 * 60, End: 19 * 60}

	require.ErrorContains(t, p.Validate(), "no usable duration")
}

func TestValidate_RejectsNegativeRequestedMinutes(t *testing.T) {
	p := validProduction()
	p.Groups[0].RequestedMinutes = -30

	require.ErrorContains(t, p.Validate(), "negative")
}

func TestIsLeader(t *testing.T) {
	p := validProduction()

	assert.True(t, p.IsLeader("casey"))
	assert.False(t, p.IsLeader("jordan"))
}

func TestSortSlots_ChronologicalThenVenue(t *testing.T) {
	mar2 := interval.Date(2026, time.March, 2)
	mar3 := interval.Date(2026, time.March, 3)
	slots := []VenueSlot{
		{ID: "d", Venue: "Annex", Date: mar3, Window: interval.TimeInterval{Start: 600, End: 720}},
		{ID: "c", Venue: "Main Stage", Date: mar2, Window: interval.TimeInterval{Start: 1080, End: 1260}},
		{ID: "b", Venue: "Annex", Date: mar2, Window: interval.TimeInterval{Start: 1080, End: 1200}},
		{ID: "a", Venue: "Annex", Date: mar2, Window: interval.TimeInterval{Start: 600, End: 720}},
	}

	SortSlots(slots)

	got := make([]string, 0, len(slots))
	for _, s := range slots {
		got = append(got, s.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestVenueSlot_Weekday(t *testing.T) {
	s := VenueSlot{Date: interval.Date(2026, time.March, 2)}
	assert.Equal(t, time.Monday, s.Weekday())
}
