package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emmalawson/stagecall/pkg/db"
)

func seededScheduleStore() *mockScheduleStore {
	return &mockScheduleStore{
		runs: []db.ScheduleRunRecord{
			{ID: "run-2", CreatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), ProductionYear: 2026, Success: true},
			{ID: "run-1", CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), ProductionYear: 2026, Success: false},
		},
		entries: map[string][]db.ScheduleEntryRecord{
			"run-2": {
				{ID: "e1", RunID: "run-2", SlotID: "main-stage-2026-03-02-1800", GroupID: "g1", Coverage: "full", WindowStart: 1080, WindowEnd: 1200, Minutes: 120},
				{ID: "e2", RunID: "run-2", SlotID: "annex-2026-03-03-1000", GroupID: "g2", Coverage: "leader_only", WindowStart: 600, WindowEnd: 660, Minutes: 60},
			},
		},
	}
}

func TestViewScheduleRuns_ListsRunsOnly(t *testing.T) {
	store := seededScheduleStore()

	history, err := ViewScheduleRuns(context.Background(), store, zap.NewNop(), "")
	require.NoError(t, err)

	require.Len(t, history.Runs, 2)
	assert.Equal(t, "run-2", history.Runs[0].ID)
	assert.Empty(t, history.Entries)
}

func TestViewScheduleRuns_FetchesEntriesForSelectedRun(t *testing.T) {
	store := seededScheduleStore()

	history, err := ViewScheduleRuns(context.Background(), store, zap.NewNop(), "run-2")
	require.NoError(t, err)

	require.Len(t, history.Entries, 2)
	assert.Equal(t, "g1", history.Entries[0].GroupID)
	assert.Equal(t, "leader_only", history.Entries[1].Coverage)
}

func TestViewScheduleRuns_UnknownRunHasNoEntries(t *testing.T) {
	store := seededScheduleStore()

	history, err := ViewScheduleRuns(context.Background(), store, zap.NewNop(), "run-9")
	require.NoError(t, err)

	assert.Len(t, history.Runs, 2)
	assert.Empty(t, history.Entries)
}

func TestViewScheduleRuns_RunsErrorPropagates(t *testing.T) {
	store := seededScheduleStore()
	store.runsErr = errors.New("connection refused")

	_, err := ViewScheduleRuns(context.Background(), store, zap.NewNop(), "")
	require.ErrorContains(t, err, "failed to fetch schedule runs")
}

func TestViewScheduleRuns_EntriesErrorPropagates(t *testing.T) {
	store := seededScheduleStore()
	store.entriesErr = errors.New("connection refused")

	_, err := ViewScheduleRuns(context.Background(), store, zap.NewNop(), "run-2")
	require.ErrorContains(t, err, "failed to fetch schedule entries")
}
