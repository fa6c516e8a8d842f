// Package catalog classifies every dance group against every venue slot:
// can the group rehearse there at full strength, partially, or not at all
// because its leader is blocked.
package catalog

import (
	"fmt"
	"sort"

	"github.com/emmalawson/stagecall/pkg/core/conflict"
	"github.com/emmalawson/stagecall/pkg/core/model"
)

// Status classifies one (group, slot) pairing.
type Status string

const (
	// StatusConflictFree means the leader and the whole roster can attend.
	StatusConflictFree Status = "conflict_free"
	// StatusPartial means the leader can attend but some dancers cannot.
	StatusPartial Status = "partial"
	// StatusLeaderBlocked means the leader cannot attend. Roster
	// availability is irrelevant; nobody runs the room.
	StatusLeaderBlocked Status = "leader_blocked"
)

// GroupEntry is the catalog's verdict on one group at one slot. Fraction
// is the share of the roster free to attend, and is reported even for
// leader-blocked groups. Missing lists the unavailable roster members in
// roster order.
type GroupEntry struct {
	GroupID  string
	Status   Status
	Fraction float64
	Missing  []string
}

// SlotCatalog buckets every group's standing at one slot. Partial entries
// are ordered best attendance first, ties broken by group ID; the other
// buckets are ordered by group ID.
type SlotCatalog struct {
	Slot          model.VenueSlot
	ConflictFree  []GroupEntry
	Partial       []GroupEntry
	LeaderBlocked []GroupEntry
}

// Catalog is the per-slot classification of every group, in the slot
// order given to Generate. Like the conflict report it is derived data,
// recomputed from source every run.
type Catalog struct {
	Slots []SlotCatalog
}

// Generate builds the catalog from a conflict report. Every leader and
// roster member must have been profiled in the report; a reference to an
// unprofiled person is a data integrity problem, not a silent
// availability.
func Generate(report *conflict.Report, groups []model.DanceGroup, slots []model.VenueSlot) (*Catalog, error) {
	for _, g := range groups {
		if _, ok := report.ConflictsByPerson[g.LeaderID]; !ok {
			return nil, &model.IntegrityError{Kind: "group", ID: g.ID,
				Reason: fmt.Sprintf("leader %q is not in the conflict report", g.LeaderID)}
		}
		for _, memberID := range g.Roster {
			if _, ok := report.ConflictsByPerson[memberID]; !ok {
				return nil, &model.IntegrityError{Kind: "group", ID: g.ID,
					Reason: fmt.Sprintf("roster member %q is not in the conflict report", memberID)}
			}
		}
	}

	cat := &Catalog{Slots: make([]SlotCatalog, 0, len(slots))}
	for _, slot := range slots {
		sc := SlotCatalog{Slot: slot}
		for _, g := range groups {
			entry := classify(report, g, slot)
			switch entry.Status {
			case StatusLeaderBlocked:
				sc.LeaderBlocked = append(sc.LeaderBlocked, entry)
			case StatusConflictFree:
				sc.ConflictFree = append(sc.ConflictFree, entry)
			default:
				sc.Partial = append(sc.Partial, entry)
			}
		}

		sortByGroupID(sc.ConflictFree)
		sortByGroupID(sc.LeaderBlocked)
		sort.Slice(sc.Partial, func(i, j int) bool {
			if sc.Partial[i].Fraction != sc.Partial[j].Fraction {
				return sc.Partial[i].Fraction > sc.Partial[j].Fraction
			}
			return sc.Partial[i].GroupID < sc.Partial[j].GroupID
		})

		cat.Slots = append(cat.Slots, sc)
	}
	return cat, nil
}

// classify computes one group's entry at one slot. An empty roster counts
// as fully available; the group is then gated by its leader alone.
func classify(report *conflict.Report, g model.DanceGroup, slot model.VenueSlot) GroupEntry {
	entry := GroupEntry{GroupID: g.ID, Fraction: 1}

	available := 0
	for _, memberID := range g.Roster {
		if report.Conflicted(memberID, slot.ID) {
			entry.Missing = append(entry.Missing, memberID)
		} else {
			available++
		}
	}
	if len(g.Roster) > 0 {
		entry.Fraction = float64(available) / float64(len(g.Roster))
	}

	switch {
	case report.Conflicted(g.LeaderID, slot.ID):
		entry.Status = StatusLeaderBlocked
	case entry.Fraction == 1:
		entry.Status = StatusConflictFree
	default:
		entry.Status = StatusPartial
	}
	return entry
}

func sortByGroupID(entries []GroupEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].GroupID < entries[j].GroupID
	})
}
