package conflict

import (
	"github.com/emmalawson/stagecall/pkg/core/grammar"
	"github.com/emmalawson/stagecall/pkg/core/model"
)

// Entry is one cell of the conflict matrix.
type Entry struct {
	PersonID   string
	SlotID     string
	Conflicted bool

	// Matching holds the constraints that caused the conflict, in
	// insertion order. Empty when the conflict comes from unparseable
	// availability text.
	Matching []grammar.Constraint
}

// Report is the complete conflict matrix over every (person, slot) pair,
// with aggregate counts for reporting. It is recomputed from source on
// every run, never persisted as authoritative state.
type Report struct {
	Entries []Entry

	ConflictsByPerson map[string]int
	ConflictsBySlot   map[string]int

	// Rate is conflicted cells over total cells, zero for an empty matrix.
	Rate float64

	cells map[cellKey]int
}

type cellKey struct {
	person string
	slot   string
}

// Conflicted reports the matrix cell for the pair. Unknown pairs read as
// not conflicted.
func (r *Report) Conflicted(personID, slotID string) bool {
	idx, ok := r.cells[cellKey{person: personID, slot: slotID}]
	if !ok {
		return false
	}
	return r.Entries[idx].Conflicted
}

// Analyze builds the full matrix in profile-major, slot-minor order.
// Leaders are recorded exactly like dancers; the catalog layer is what
// treats a leader's conflict specially.
func Analyze(profiles []Profile, slots []model.VenueSlot) *Report {
	report := &Report{
		Entries:           make([]Entry, 0, len(profiles)*len(slots)),
		ConflictsByPerson: make(map[string]int, len(profiles)),
		ConflictsBySlot:   make(map[string]int, len(slots)),
		cells:             make(map[cellKey]int, len(profiles)*len(slots)),
	}

	for _, slot := range slots {
		report.ConflictsBySlot[slot.ID] = 0
	}

	conflicted := 0
	for _, profile := range profiles {
		report.ConflictsByPerson[profile.Person.ID] = 0
		for _, slot := range slots {
			entry := Entry{PersonID: profile.Person.ID, SlotID: slot.ID}
			if profile.HasInvalidTokens() {
				entry.Conflicted = true
			} else if matched := Matching(profile, slot); len(matched) > 0 {
				entry.Conflicted = true
				entry.Matching = matched
			}

			if entry.Conflicted {
				conflicted++
				report.ConflictsByPerson[profile.Person.ID]++
				report.ConflictsBySlot[slot.ID]++
			}
			report.cells[cellKey{person: entry.PersonID, slot: entry.SlotID}] = len(report.Entries)
			report.Entries = append(report.Entries, entry)
		}
	}

	if len(report.Entries) > 0 {
		report.Rate = float64(conflicted) / float64(len(report.Entries))
	}
	return report
}
