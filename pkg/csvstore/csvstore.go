// Package csvstore implements the db input stores on plain CSV files,
// one file per table with a header row. It is the zero-infrastructure
// backend: a production fits in three files a stage manager can edit.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/emmalawson/stagecall/pkg/core/interval"
	"github.com/emmalawson/stagecall/pkg/db"
)

// Store reads production data from CSV files. Paths may be empty when
// the corresponding table is not needed by a command.
type Store struct {
	PersonsPath string
	GroupsPath  string
	SlotsPath   string
}

// New builds a store over the three table files.
func New(personsPath, groupsPath, slotsPath string) *Store {
	return &Store{
		PersonsPath: personsPath,
		GroupsPath:  groupsPath,
		SlotsPath:   slotsPath,
	}
}

// table is one parsed CSV file: a header index plus data rows.
type table struct {
	path    string
	columns map[string]int
	rows    [][]string
}

func readTable(path string, required ...string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty: expected a header row", path)
	}

	t := &table{path: path, columns: make(map[string]int), rows: records[1:]}
	for i, name := range records[0] {
		t.columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := t.columns[name]; !ok {
			return nil, fmt.Errorf("%s is missing the %q column", path, name)
		}
	}
	return t, nil
}

// cell returns the trimmed value of a named column, empty when the row is
// short or the column is absent.
func (t *table) cell(row []string, name string) string {
	i, ok := t.columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// GetPersons reads the persons file. A row's ID falls back to its name,
// so hand-kept files can identify people by name alone.
func (s *Store) GetPersons(ctx context.Context) ([]db.PersonRecord, error) {
	t, err := readTable(s.PersonsPath, "name")
	if err != nil {
		return nil, err
	}

	persons := make([]db.PersonRecord, 0, len(t.rows))
	for i, row := range t.rows {
		p := db.PersonRecord{
			ID:           t.cell(row, "id"),
			Name:         t.cell(row, "name"),
			Availability: t.cell(row, "availability"),
		}
		if p.ID == "" {
			p.ID = p.Name
		}
		if p.ID == "" {
			return nil, fmt.Errorf("%s row %d has neither id nor name", s.PersonsPath, i+2)
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		persons = append(persons, p)
	}
	return persons, nil
}

// GetGroups reads the groups file. The roster column holds person IDs
// separated by semicolons; commas belong to the constraint grammar.
func (s *Store) GetGroups(ctx context.Context) ([]db.GroupRecord, error) {
	t, err := readTable(s.GroupsPath, "id", "leader_id")
	if err != nil {
		return nil, err
	}

	groups := make([]db.GroupRecord, 0, len(t.rows))
	for i, row := range t.rows {
		g := db.GroupRecord{
			ID:       t.cell(row, "id"),
			Name:     t.cell(row, "name"),
			LeaderID: t.cell(row, "leader_id"),
		}
		if g.ID == "" {
			return nil, fmt.Errorf("%s row %d has no id", s.GroupsPath, i+2)
		}
		if g.Name == "" {
			g.Name = g.ID
		}

		for _, member := range strings.Split(t.cell(row, "roster"), ";") {
			if member = strings.TrimSpace(member); member != "" {
				g.Roster = append(g.Roster, member)
			}
		}

		if raw := t.cell(row, "requested_minutes"); raw != "" {
			minutes, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: invalid requested_minutes %q", s.GroupsPath, i+2, raw)
			}
			g.RequestedMinutes = minutes
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// GetSlots reads the slots file. Dates are YYYY-MM-DD and times 24-hour
// HH:MM; a missing ID is derived from venue, date and start time.
func (s *Store) GetSlots(ctx context.Context) ([]db.SlotRecord, error) {
	t, err := readTable(s.SlotsPath, "venue", "date", "start", "end")
	if err != nil {
		return nil, err
	}

	slots := make([]db.SlotRecord, 0, len(t.rows))
	for i, row := range t.rows {
		rec := db.SlotRecord{
			ID:    t.cell(row, "id"),
			Venue: t.cell(row, "venue"),
			Date:  t.cell(row, "date"),
		}
		if _, err := time.Parse(db.DateFormat, rec.Date); err != nil {
			return nil, fmt.Errorf("%s row %d: invalid date %q: want YYYY-MM-DD", s.SlotsPath, i+2, rec.Date)
		}

		if rec.StartMinute, err = interval.ParseMinute(t.cell(row, "start")); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", s.SlotsPath, i+2, err)
		}
		if rec.EndMinute, err = interval.ParseMinute(t.cell(row, "end")); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", s.SlotsPath, i+2, err)
		}

		if rec.ID == "" {
			rec.ID = db.SlotID(rec.Venue, rec.Date, rec.StartMinute)
		}
		slots = append(slots, rec)
	}
	return slots, nil
}

// InsertSlots appends slots not already present and rewrites the file.
// Template expansion can run repeatedly without duplicating rows.
func (s *Store) InsertSlots(ctx context.Context, slots []db.SlotRecord) error {
	existing, err := s.GetSlots(ctx)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		existing = nil
	}

	seen := make(map[string]bool, len(existing))
	merged := existing
	for _, rec := range existing {
		seen[rec.ID] = true
	}
	for _, rec := range slots {
		if !seen[rec.ID] {
			seen[rec.ID] = true
			merged = append(merged, rec)
		}
	}

	file, err := os.Create(s.SlotsPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.SlotsPath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"id", "venue", "date", "start", "end"}); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", s.SlotsPath, err)
	}
	for _, rec := range merged {
		row := []string{
			rec.ID,
			rec.Venue,
			rec.Date,
			interval.FormatMinute(rec.StartMinute),
			interval.FormatMinute(rec.EndMinute),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write slot %s to %s: %w", rec.ID, s.SlotsPath, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", s.SlotsPath, err)
	}
	return nil
}
