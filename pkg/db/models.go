// Package db defines the storage records and store interfaces shared by
// every backend: CSV files, Google Sheets, and PostgreSQL. Records mirror
// table rows; converting them into core model entities happens in the
// service layer.
package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/emmalawson/stagecall/pkg/core/interval"
)

// DateFormat is the civil date layout used in every backend.
const DateFormat = "2006-01-02"

// SlotID derives a stable, readable slot ID from the slot's natural key.
// Imports that re-expand the same venue calendar produce the same IDs, so
// backends can treat slot inserts as idempotent.
func SlotID(venue, date string, startMinute int) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(venue), " ", "-"))
	return fmt.Sprintf("%s-%s-%s", slug, date, strings.ReplaceAll(interval.FormatMinute(startMinute), ":", ""))
}

// PersonRecord represents a company member row. Availability is the raw
// constraint text, stored exactly as entered.
type PersonRecord struct {
	ID           string
	Name         string
	Availability string
}

// GroupRecord represents a dance group row. Roster holds person IDs in
// roster order; backends that store the roster relationally assemble it.
type GroupRecord struct {
	ID               string
	Name             string
	LeaderID         string
	Roster           []string
	RequestedMinutes int
}

// SlotRecord represents a venue slot row. Date uses DateFormat; the
// window is stored as minutes of day.
type SlotRecord struct {
	ID          string
	Venue       string
	Date        string
	StartMinute int
	EndMinute   int
}

// ScheduleRunRecord represents one persisted scheduling run.
type ScheduleRunRecord struct {
	ID             string
	CreatedAt      time.Time
	ProductionYear int
	Success        bool
}

// ScheduleEntryRecord represents one allocation within a run.
type ScheduleEntryRecord struct {
	ID          string
	RunID       string
	SlotID      string
	GroupID     string
	Coverage    string
	WindowStart int
	WindowEnd   int
	Minutes     int
}

// RemainderRecord represents a group left short of its request in a run.
type RemainderRecord struct {
	RunID            string
	GroupID          string
	MinutesRemaining int
}
