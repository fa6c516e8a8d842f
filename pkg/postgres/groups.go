package postgres

import (
	"context"
	"fmt"

	"github.com/emmalawson/stagecall/pkg/db"
)

// GetGroups retrieves all dance group records with their rosters, ordered
// by group ID. Roster order follows the stored position.
func (d *DB) GetGroups(ctx context.Context) ([]db.GroupRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, leader_id, requested_minutes
		FROM dance_group
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dance groups: %w", err)
	}
	defer rows.Close()

	var groups []db.GroupRecord
	index := make(map[string]int)
	for rows.Next() {
		var g db.GroupRecord
		if err := rows.Scan(&g.ID, &g.Name, &g.LeaderID, &g.RequestedMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan dance group: %w", err)
		}
		index[g.ID] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dance groups: %w", err)
	}
	rows.Close()

	rosterRows, err := d.pool.Query(ctx, `
		SELECT group_id, person_id
		FROM group_roster
		ORDER BY group_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query group rosters: %w", err)
	}
	defer rosterRows.Close()

	for rosterRows.Next() {
		var groupID, personID string
		if err := rosterRows.Scan(&groupID, &personID); err != nil {
			return nil, fmt.Errorf("failed to scan roster member: %w", err)
		}
		i, ok := index[groupID]
		if !ok {
			return nil, fmt.Errorf("roster references unknown group %s", groupID)
		}
		groups[i].Roster = append(groups[i].Roster, personID)
	}
	if err := rosterRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rosters: %w", err)
	}

	return groups, nil
}

// InsertGroups inserts group records and their rosters in one
// transaction, replacing any existing roster for a re-imported group.
func (d *DB) InsertGroups(ctx context.Context, groups []db.GroupRecord) error {
	if len(groups) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, g := range groups {
		_, err := tx.Exec(ctx, `
			INSERT INTO dance_group (id, name, leader_id, requested_minutes)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET name = $2, leader_id = $3, requested_minutes = $4
		`, g.ID, g.Name, g.LeaderID, g.RequestedMinutes)
		if err != nil {
			return fmt.Errorf("failed to insert dance group %s: %w", g.ID, err)
		}

		_, err = tx.Exec(ctx, `DELETE FROM group_roster WHERE group_id = $1`, g.ID)
		if err != nil {
			return fmt.Errorf("failed to clear roster for group %s: %w", g.ID, err)
		}
		for pos, personID := range g.Roster {
			_, err := tx.Exec(ctx, `
				INSERT INTO group_roster (group_id, person_id, position)
				VALUES ($1, $2, $3)
			`, g.ID, personID, pos)
			if err != nil {
				return fmt.Errorf("failed to insert roster member %s of group %s: %w", personID, g.ID, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
