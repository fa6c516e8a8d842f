package sheetsclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/emmalawson/stagecall/pkg/core/interval"
	"github.com/emmalawson/stagecall/pkg/db"
)

// Tabs names the spreadsheet tabs holding the three input tables.
type Tabs struct {
	Persons string
	Groups  string
	Slots   string
}

// Store reads production records from a single spreadsheet and appends
// expanded venue slots back to it. It implements db.ProductionStore.
type Store struct {
	client        *Client
	spreadsheetID string
	tabs          Tabs
}

// NewStore creates a store over one spreadsheet.
func NewStore(client *Client, spreadsheetID string, tabs Tabs) *Store {
	return &Store{client: client, spreadsheetID: spreadsheetID, tabs: tabs}
}

// GetPersons retrieves and parses the persons tab
func (s *Store) GetPersons(ctx context.Context) ([]db.PersonRecord, error) {
	values, err := s.client.GetValues(s.spreadsheetID, s.tabs.Persons)
	if err != nil {
		return nil, fmt.Errorf("failed to get person data: %w", err)
	}

	persons, err := parsePersons(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse persons: %w", err)
	}

	return persons, nil
}

// GetGroups retrieves and parses the groups tab
func (s *Store) GetGroups(ctx context.Context) ([]db.GroupRecord, error) {
	values, err := s.client.GetValues(s.spreadsheetID, s.tabs.Groups)
	if err != nil {
		return nil, fmt.Errorf("failed to get group data: %w", err)
	}

	groups, err := parseGroups(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse groups: %w", err)
	}

	return groups, nil
}

// GetSlots retrieves and parses the venue slots tab
func (s *Store) GetSlots(ctx context.Context) ([]db.SlotRecord, error) {
	values, err := s.client.GetValues(s.spreadsheetID, s.tabs.Slots)
	if err != nil {
		return nil, fmt.Errorf("failed to get slot data: %w", err)
	}

	slots, err := parseSlots(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse slots: %w", err)
	}

	return slots, nil
}

// InsertSlots appends slots not already present in the slots tab, laying
// cells out in the tab's own column order. Template expansion can run
// repeatedly without duplicating rows.
func (s *Store) InsertSlots(ctx context.Context, slots []db.SlotRecord) error {
	values, err := s.client.GetValues(s.spreadsheetID, s.tabs.Slots)
	if err != nil {
		return fmt.Errorf("failed to get slot data: %w", err)
	}

	existing, err := parseSlots(values)
	if err != nil {
		return fmt.Errorf("failed to parse slots: %w", err)
	}

	t, err := newSheetTable(values, "venue", "date", "start", "end")
	if err != nil {
		return fmt.Errorf("failed to parse slots: %w", err)
	}

	seen := make(map[string]bool, len(existing))
	for _, rec := range existing {
		seen[rec.ID] = true
	}

	rows := make([][]interface{}, 0, len(slots))
	for _, rec := range slots {
		if seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		rows = append(rows, t.row(map[string]string{
			"id":    rec.ID,
			"venue": rec.Venue,
			"date":  rec.Date,
			"start": interval.FormatMinute(rec.StartMinute),
			"end":   interval.FormatMinute(rec.EndMinute),
		}))
	}
	if len(rows) == 0 {
		return nil
	}

	if err := s.client.AppendRows(s.spreadsheetID, s.tabs.Slots, rows); err != nil {
		return fmt.Errorf("failed to append slots: %w", err)
	}

	return nil
}

// sheetTable indexes a tab's rows by lowercased header names so column
// order in the spreadsheet does not matter.
type sheetTable struct {
	columns map[string]int
	rows    [][]interface{}
}

func newSheetTable(values [][]interface{}, required ...string) (*sheetTable, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no header row found")
	}

	t := &sheetTable{columns: make(map[string]int, len(values[0])), rows: values[1:]}
	for i, cell := range values[0] {
		if name, ok := cell.(string); ok {
			t.columns[strings.ToLower(strings.TrimSpace(name))] = i
		}
	}
	for _, name := range required {
		if _, ok := t.columns[name]; !ok {
			return nil, fmt.Errorf("missing required field in header: %s", name)
		}
	}

	return t, nil
}

func (t *sheetTable) cell(row []interface{}, name string) string {
	i, ok := t.columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	if str, ok := row[i].(string); ok {
		return strings.TrimSpace(str)
	}
	return ""
}

// row lays the named cells out in this table's column order. Names the
// header does not carry are dropped.
func (t *sheetTable) row(cells map[string]string) []interface{} {
	width := 0
	for _, i := range t.columns {
		if i+1 > width {
			width = i + 1
		}
	}

	row := make([]interface{}, width)
	for i := range row {
		row[i] = ""
	}
	for name, value := range cells {
		if i, ok := t.columns[name]; ok {
			row[i] = value
		}
	}

	return row
}

// parsePersons converts raw spreadsheet data into person records. Rows
// with no identity and no availability are padding and get skipped.
func parsePersons(values [][]interface{}) ([]db.PersonRecord, error) {
	t, err := newSheetTable(values, "name")
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
		if p.ID == "" && p.Name == "" {
			if p.Availability == "" {
				continue
			}
			return nil, fmt.Errorf("row %d has neither id nor name", i+2)
		}
		if p.ID == "" {
			p.ID = p.Name
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		persons = append(persons, p)
	}

	return persons, nil
}

// parseGroups converts raw spreadsheet data into group records. The
// roster column holds person IDs separated by semicolons; commas belong
// to the constraint grammar.
func parseGroups(values [][]interface{}) ([]db.GroupRecord, error) {
	t, err := newSheetTable(values, "id", "leader_id")
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
			if g.LeaderID == "" && t.cell(row, "roster") == "" {
				continue
			}
			return nil, fmt.Errorf("row %d has no id", i+2)
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
				return nil, fmt.Errorf("row %d: invalid requested_minutes %q", i+2, raw)
			}
			g.RequestedMinutes = minutes
		}
		groups = append(groups, g)
	}

	return groups, nil
}

// parseSlots converts raw spreadsheet data into slot records. Dates are
// YYYY-MM-DD and times 24-hour HH:MM; a missing ID is derived from venue,
// date and start time.
func parseSlots(values [][]interface{}) ([]db.SlotRecord, error) {
	t, err := newSheetTable(values, "venue", "date", "start", "end")
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
		if rec.ID == "" && rec.Venue == "" && rec.Date == "" {
			continue
		}
		if _, err := time.Parse(db.DateFormat, rec.Date); err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: want YYYY-MM-DD", i+2, rec.Date)
		}

		if rec.StartMinute, err = interval.ParseMinute(t.cell(row, "start")); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if rec.EndMinute, err = interval.ParseMinute(t.cell(row, "end")); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		if rec.ID == "" {
			rec.ID = db.SlotID(rec.Venue, rec.Date, rec.StartMinute)
		}
		slots = append(slots, rec)
	}

	return slots, nil
}
