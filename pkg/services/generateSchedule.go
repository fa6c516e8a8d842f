package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emmalawson/stagecall/pkg/core/scheduler"
	"github.com/emmalawson/stagecall/pkg/db"
)

// ScheduleResult carries a generated schedule, the catalog it was built
// from, and whether the run was persisted.
type ScheduleResult struct {
	RunID     string
	Catalog   *CatalogResult
	Outcome   *scheduler.Outcome
	Persisted bool
}

// GenerateSchedule runs the full pipeline: load, analyze, catalog, rank,
// schedule. When a schedule store is given the run is persisted
// atomically with its entries and remainders; a nil store makes the run
// a dry run. An under-filled schedule is an outcome, not an error
func GenerateSchedule(ctx context.Context, store db.ProductionStore, schedules db.ScheduleStore, logger *zap.Logger, productionYear int, epsilon float64) (*ScheduleResult, error) {
	catalogResult, err := BuildCatalog(ctx, store, logger, productionYear, epsilon)
	if err != nil {
		return nil, err
	}

	data := catalogResult.Analysis.Data
	outcome, err := scheduler.Generate(scheduler.Inputs{
		Profiles: data.Profiles,
		Groups:   data.Production.Groups,
		Ranked:   catalogResult.Ranked,
		Slots:    data.Production.Slots,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}

	result := &ScheduleResult{
		RunID:   uuid.New().String(),
		Catalog: catalogResult,
		Outcome: outcome,
	}

	logger.Info("Schedule generated",
		zap.String("run_id", result.RunID),
		zap.Int("entries", len(outcome.Entries)),
		zap.Int("under_scheduled", len(outcome.UnderScheduled)),
		zap.Bool("success", outcome.Success))

	for _, r := range outcome.UnderScheduled {
		logger.Warn("Group left under-scheduled",
			zap.String("group_id", r.GroupID),
			zap.Int("minutes_remaining", r.MinutesRemaining))
	}
	for _, v := range outcome.ValidationErrors {
		logger.Error("Generated schedule failed validation",
			zap.String("slot_id", v.SlotID),
			zap.String("group_id", v.GroupID),
			zap.String("rule", v.Rule),
			zap.String("description", v.Description))
	}

	if schedules == nil {
		logger.Debug("No schedule store configured, skipping persistence")
		return result, nil
	}

	run := db.ScheduleRunRecord{
		ID:             result.RunID,
		CreatedAt:      time.Now().UTC(),
		ProductionYear: productionYear,
		Success:        outcome.Success,
	}
	entries := make([]db.ScheduleEntryRecord, 0, len(outcome.Entries))
	for _, e := range outcome.Entries {
		entries = append(entries, db.ScheduleEntryRecord{
			ID:          uuid.New().String(),
			RunID:       run.ID,
			SlotID:      e.SlotID,
			GroupID:     e.GroupID,
			Coverage:    string(e.Coverage),
			WindowStart: e.Window.Start,
			WindowEnd:   e.Window.End,
			Minutes:     e.Minutes,
		})
	}
	remainders := make([]db.RemainderRecord, 0, len(outcome.UnderScheduled))
	for _, r := range outcome.UnderScheduled {
		remainders = append(remainders, db.RemainderRecord{
			RunID:            run.ID,
			GroupID:          r.GroupID,
			MinutesRemaining: r.MinutesRemaining,
		})
	}

	if err := schedules.InsertScheduleRun(ctx, run, entries, remainders); err != nil {
		return nil, fmt.Errorf("failed to persist schedule run: %w", err)
	}
	result.Persisted = true

	logger.Info("Schedule run persisted", zap.String("run_id", run.ID))

	return result, nil
}
