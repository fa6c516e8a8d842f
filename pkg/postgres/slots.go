package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/emmalawson/stagecall/pkg/db"
)

// GetSlots retrieves all venue slot records in chronological order.
func (d *DB) GetSlots(ctx context.Context) ([]db.SlotRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, venue, slot_date, start_minute, end_minute
		FROM venue_slot
		ORDER BY slot_date, start_minute, venue, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query venue slots: %w", err)
	}
	defer rows.Close()

	var slots []db.SlotRecord
	for rows.Next() {
		var s db.SlotRecord
		var date time.Time
		if err := rows.Scan(&s.ID, &s.Venue, &date, &s.StartMinute, &s.EndMinute); err != nil {
			return nil, fmt.Errorf("failed to scan venue slot: %w", err)
		}
		s.Date = date.Format(db.DateFormat)
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating venue slots: %w", err)
	}

	return slots, nil
}

// InsertSlots inserts venue slot records in one transaction. Existing IDs
// are skipped so expanding the same venue templates twice is harmless.
func (d *DB) InsertSlots(ctx context.Context, slots []db.SlotRecord) error {
	if len(slots) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range slots {
		date, err := time.Parse(db.DateFormat, s.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q for slot %s: %w", s.Date, s.ID, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO venue_slot (id, venue, slot_date, start_minute, end_minute)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`, s.ID, s.Venue, date, s.StartMinute, s.EndMinute)
		if err != nil {
			return fmt.Errorf("failed to insert venue slot %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
