package db

import "context"

// PersonStore defines person table reads.
type PersonStore interface {
	GetPersons(ctx context.Context) ([]PersonRecord, error)
}

// GroupStore defines dance group table reads.
type GroupStore interface {
	GetGroups(ctx context.Context) ([]GroupRecord, error)
}

// SlotStore defines venue slot operations. InsertSlots is used when
// recurring venue templates are expanded into concrete dated slots.
type SlotStore interface {
	GetSlots(ctx context.Context) ([]SlotRecord, error)
	InsertSlots(ctx context.Context, slots []SlotRecord) error
}

// ProductionStore covers the three input tables a scheduling run reads.
type ProductionStore interface {
	PersonStore
	GroupStore
	SlotStore
}

// ScheduleStore defines persisted schedule run operations. A run and its
// entries and remainders are written atomically.
type ScheduleStore interface {
	InsertScheduleRun(ctx context.Context, run ScheduleRunRecord, entries []ScheduleEntryRecord, remainders []RemainderRecord) error
	GetScheduleRuns(ctx context.Context) ([]ScheduleRunRecord, error)
	GetScheduleEntries(ctx context.Context, runID string) ([]ScheduleEntryRecord, error)
}

// Database defines the full set of operations a backend can serve. The
// PostgreSQL store implements all of it; the CSV and Sheets stores
// implement the input side.
type Database interface {
	ProductionStore
	ScheduleStore
}
