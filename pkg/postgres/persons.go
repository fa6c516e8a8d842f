package postgres

import (
	"context"
	"fmt"

	"github.com/emmalawson/stagecall/pkg/db"
)

// GetPersons retrieves all person records ordered by ID.
func (d *DB) GetPersons(ctx context.Context) ([]db.PersonRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, availability
		FROM person
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	defer rows.Close()

	var persons []db.PersonRecord
	for rows.Next() {
		var p db.PersonRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.Availability); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating persons: %w", err)
	}

	return persons, nil
}

// InsertPersons inserts person records in one transaction.
func (d *DB) InsertPersons(ctx context.Context, persons []db.PersonRecord) error {
	if len(persons) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range persons {
		_, err := tx.Exec(ctx, `
			INSERT INTO person (id, name, availability)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = $2, availability = $3
		`, p.ID, p.Name, p.Availability)
		if err != nil {
			return fmt.Errorf("failed to insert person %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
