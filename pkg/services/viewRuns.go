package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/emmalawson/stagecall/pkg/db"
)

// RunHistory lists persisted schedule runs, plus the entries of one
// selected run.
type RunHistory struct {
	Runs    []db.ScheduleRunRecord
	Entries []db.ScheduleEntryRecord
}

// ViewScheduleRuns fetches persisted runs, newest first. When runID is
// non-empty that run's entries come back too.
func ViewScheduleRuns(ctx context.Context, store db.ScheduleStore, logger *zap.Logger, runID string) (*RunHistory, error) {
	runs, err := store.GetScheduleRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule runs: %w", err)
	}

	history := &RunHistory{Runs: runs}
	if runID != "" {
		if history.Entries, err = store.GetScheduleEntries(ctx, runID); err != nil {
			return nil, fmt.Errorf("failed to fetch schedule entries: %w", err)
		}
	}

	logger.Info("Schedule history fetched",
		zap.Int("runs", len(runs)),
		zap.Int("entries", len(history.Entries)))

	return history, nil
}
