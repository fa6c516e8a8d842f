package postgres

import (
	"context"
	"fmt"

	"github.com/emmalawson/stagecall/pkg/db"
)

// InsertScheduleRun persists a run with its entries and remainders in one
// transaction; a half-written run never becomes visible.
func (d *DB) InsertScheduleRun(ctx context.Context, run db.ScheduleRunRecord, entries []db.ScheduleEntryRecord, remainders []db.RemainderRecord) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO schedule_run (id, created_at, production_year, success)
		VALUES ($1, $2, $3, $4)
	`, run.ID, run.CreatedAt, run.ProductionYear, run.Success)
	if err != nil {
		return fmt.Errorf("failed to insert schedule run %s: %w", run.ID, err)
	}

	for _, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO schedule_entry (id, run_id, slot_id, group_id, coverage, window_start, window_end, minutes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, e.ID, e.RunID, e.SlotID, e.GroupID, e.Coverage, e.WindowStart, e.WindowEnd, e.Minutes)
		if err != nil {
			return fmt.Errorf("failed to insert schedule entry for group %s: %w", e.GroupID, err)
		}
	}

	for _, r := range remainders {
		_, err := tx.Exec(ctx, `
			INSERT INTO schedule_remainder (run_id, group_id, minutes_remaining)
			VALUES ($1, $2, $3)
		`, r.RunID, r.GroupID, r.MinutesRemaining)
		if err != nil {
			return fmt.Errorf("failed to insert schedule remainder for group %s: %w", r.GroupID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetScheduleRuns retrieves all persisted runs, newest first.
func (d *DB) GetScheduleRuns(ctx context.Context) ([]db.ScheduleRunRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, created_at, production_year, success
		FROM schedule_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule runs: %w", err)
	}
	defer rows.Close()

	var runs []db.ScheduleRunRecord
	for rows.Next() {
		var r db.ScheduleRunRecord
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.ProductionYear, &r.Success); err != nil {
			return nil, fmt.Errorf("failed to scan schedule run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule runs: %w", err)
	}

	return runs, nil
}

// GetScheduleEntries retrieves a run's entries in allocation order.
func (d *DB) GetScheduleEntries(ctx context.Context, runID string) ([]db.ScheduleEntryRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT e.id, e.run_id, e.slot_id, e.group_id, e.coverage, e.window_start, e.window_end, e.minutes
		FROM schedule_entry e
		JOIN venue_slot s ON s.id = e.slot_id
		WHERE e.run_id = $1
		ORDER BY s.slot_date, s.start_minute, s.venue, e.id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []db.ScheduleEntryRecord
	for rows.Next() {
		var e db.ScheduleEntryRecord
		if err := rows.Scan(&e.ID, &e.RunID, &e.SlotID, &e.GroupID, &e.Coverage, &e.WindowStart, &e.WindowEnd, &e.Minutes); err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule entries: %w", err)
	}

	return entries, nil
}
