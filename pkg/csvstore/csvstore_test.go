package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmalawson/stagecall/pkg/db"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetPersons(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "persons.csv",
		"id,name,availability\n"+
			"casey,Casey,\"monday, w 2-4\"\n"+
			",Jordan,\n"+
			"riley,,f after 5pm\n")
	store := New(path, "", "")

	persons, err := store.GetPersons(context.Background())

	require.NoError(t, err)
	require.Len(t, persons, 3)
	assert.Equal(t, db.PersonRecord{ID: "casey", Name: "Casey", Availability: "monday, w 2-4"}, persons[0])
	// Missing ID falls back to the name; missing name falls back to the ID.
	assert.Equal(t, db.PersonRecord{ID: "Jordan", Name: "Jordan"}, persons[1])
	assert.Equal(t, db.PersonRecord{ID: "riley", Name: "riley", Availability: "f after 5pm"}, persons[2])
}

func TestGetPersons_RowWithoutIdentity(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "persons.csv", "id,name\n,,\n")
	store := New(path, "", "")

	_, err := store.GetPersons(context.Background())

	require.ErrorContains(t, err, "row 2 has neither id nor name")
}

func TestGetPersons_MissingNameColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "persons.csv", "id,availability\ncasey,monday\n")
	store := New(path, "", "")

	_, err := store.GetPersons(context.Background())

	require.ErrorContains(t, err, `missing the "name" column`)
}

func TestGetGroups(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "groups.csv",
		"id,name,leader_id,roster,requested_minutes\n"+
			"opening,Opening Number,casey,jordan; riley,120\n"+
			"finale,,casey,,\n")
	store := New("", path, "")

	groups, err := store.GetGroups(context.Background())

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, db.GroupRecord{
		ID: "opening", Name: "Opening Number", LeaderID: "casey",
		Roster: []string{"jordan", "riley"}, RequestedMinutes: 120,
	}, groups[0])
	assert.Equal(t, db.GroupRecord{ID: "finale", Name: "finale", LeaderID: "casey"}, groups[1])
}

func TestGetGroups_BadMinutes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "groups.csv",
		"id,leader_id,requested_minutes\nopening,casey,ninety\n")
	store := New("", path, "")

	_, err := store.GetGroups(context.Background())

	require.ErrorContains(t, err, `invalid requested_minutes "ninety"`)
}

func TestGetSlots(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "slots.csv",
		"id,venue,date,start,end\n"+
			"s1,Main Stage,2026-03-02,18:00,21:00\n"+
			",Annex,2026-03-03,10:00,12:30\n")
	store := New("", "", path)

	slots, err := store.GetSlots(context.Background())

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, db.SlotRecord{
		ID: "s1", Venue: "Main Stage", Date: "2026-03-02",
		StartMinute: 1080, EndMinute: 1260,
	}, slots[0])
	assert.Equal(t, "annex-2026-03-03-1000", slots[1].ID)
	assert.Equal(t, 750, slots[1].EndMinute)
}

func TestGetSlots_BadDate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "slots.csv",
		"venue,date,start,end\nMain Stage,03/02/2026,18:00,21:00\n")
	store := New("", "", path)

	_, err := store.GetSlots(context.Background())

	require.ErrorContains(t, err, "want YYYY-MM-DD")
}

func TestGetSlots_BadClock(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "slots.csv",
		"venue,date,start,end\nMain Stage,2026-03-02,6pm,21:00\n")
	store := New("", "", path)

	_, err := store.GetSlots(context.Background())

	require.ErrorContains(t, err, "invalid clock time")
}

func TestInsertSlots_MergesWithoutDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slots.csv")
	store := New("", "", path)
	ctx := context.Background()

	first := []db.SlotRecord{
		{ID: "s1", Venue: "Main Stage", Date: "2026-03-02", StartMinute: 1080, EndMinute: 1260},
	}
	require.NoError(t, store.InsertSlots(ctx, first))

	second := []db.SlotRecord{
		{ID: "s1", Venue: "Main Stage", Date: "2026-03-02", StartMinute: 1080, EndMinute: 1260},
		{ID: "s2", Venue: "Annex", Date: "2026-03-03", StartMinute: 600, EndMinute: 750},
	}
	require.NoError(t, store.InsertSlots(ctx, second))

	slots, err := store.GetSlots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "s1", slots[0].ID)
	assert.Equal(t, "s2", slots[1].ID)
}

func TestGetSlots_MissingFile(t *testing.T) {
	store := New("", "", filepath.Join(t.TempDir(), "absent.csv"))

	_, err := store.GetSlots(context.Background())

	require.Error(t, err)
}
