package model

import "fmt"

// IntegrityError reports input data the pipeline cannot schedule from:
// duplicate IDs, references to unknown people, or degenerate slot windows.
type IntegrityError struct {
	Kind   string
	ID     string
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Kind, e.ID, e.Reason)
}

// Production bundles one production's input tables.
type Production struct {
	Persons []Person
	Groups  []DanceGroup
	Slots   []VenueSlot
}

// PersonByID looks a person up by ID.
func (p *Production) PersonByID(id string) (Person, bool) {
	for _, person := range p.Persons {
		if person.ID == id {
			return person, true
		}
	}
	return Person{}, false
}

// IsLeader reports whether the person leads at least one group.
func (p *Production) IsLeader(personID string) bool {
	for _, g := range p.Groups {
		if g.LeaderID == personID {
			return true
		}
	}
	return false
}

// Validate checks referential integrity across the tables and returns the
// first violation found, scanning persons, then groups, then slots. A nil
// return means every reference resolves and every slot window is usable.
func (p *Production) Validate() error {
	people := make(map[string]bool, len(p.Persons))
	for _, person := range p.Persons {
		if person.ID == "" {
			return &IntegrityError{Kind: "person", ID: person.Name, Reason: "missing ID"}
		}
		if people[person.ID] {
			return &IntegrityError{Kind: "person", ID: person.ID, Reason: "duplicate person ID"}
		}
		people[person.ID] = true
	}

	groups := make(map[string]bool, len(p.Groups))
	for _, g := range p.Groups {
		if groups[g.ID] {
			return &IntegrityError{Kind: "group", ID: g.ID, Reason: "duplicate group ID"}
		}
		groups[g.ID] = true

		if !people[g.LeaderID] {
			return &IntegrityError{Kind: "group", ID: g.ID,
				Reason: fmt.Sprintf("leader %q is not a known person", g.LeaderID)}
		}
		for _, memberID := range g.Roster {
			if !people[memberID] {
				return &IntegrityError{Kind: "group", ID: g.ID,
					Reason: fmt.Sprintf("roster member %q is not a known person", memberID)}
			}
		}
		if g.RequestedMinutes < 0 {
			return &IntegrityError{Kind: "group", ID: g.ID,
				Reason: fmt.Sprintf("requested minutes %d is negative", g.RequestedMinutes)}
		}
	}

	slots := make(map[string]bool, len(p.Slots))
	for _, s := range p.Slots {
		if slots[s.ID] {
			return &IntegrityError{Kind: "slot", ID: s.ID, Reason: "duplicate slot ID"}
		}
		slots[s.ID] = true

		if !s.Window.Valid() || s.Window.Duration() == 0 {
			return &IntegrityError{Kind: "slot", ID: s.ID,
				Reason: fmt.Sprintf("window %d-%d has no usable duration", s.Window.Start, s.Window.End)}
		}
	}

	return nil
}
