package reporting

import (
	"fmt"
	"io"

	"github.com/emmalawson/stagecall/pkg/core/grammar"
	"github.com/emmalawson/stagecall/pkg/core/model"
	"github.com/emmalawson/stagecall/pkg/services"
)

// RenderConflicts writes the conflict matrix grouped by person: every
// slot each person cannot attend, with the constraint that blocks it.
// People with no conflicts are counted, not listed.
func RenderConflicts(w io.Writer, analysis *services.ConflictAnalysis) {
	prod := analysis.Data.Production
	report := analysis.Report

	fmt.Fprintf(w, "AVAILABILITY CONFLICTS (%d people, %d slots)\n",
		len(prod.Persons), len(prod.Slots))
	rule(w, "=")

	slotsByID := make(map[string]model.VenueSlot, len(prod.Slots))
	for _, slot := range prod.Slots {
		slotsByID[slot.ID] = slot
	}

	unblocked := 0
	for _, profile := range analysis.Data.Profiles {
		id := profile.Person.ID
		if report.ConflictsByPerson[id] == 0 {
			unblocked++
			continue
		}

		fmt.Fprintf(w, "\n%s: %d of %d slots blocked\n",
			personLabel(prod, id), report.ConflictsByPerson[id], len(prod.Slots))

		if profile.HasInvalidTokens() {
			fmt.Fprintln(w, "  ⚠️  availability could not be parsed; treated as fully unavailable")
			fmt.Fprintln(w, "      run the validate command to see the offending tokens")
			continue
		}

		for _, entry := range report.Entries {
			if entry.PersonID != id || !entry.Conflicted {
				continue
			}
			slot := slotsByID[entry.SlotID]
			fmt.Fprintf(w, "  ✗ %s, %s %s\n",
				slot.Venue, slot.Date.Format("Mon Jan 2"), clockWindow(slot.Window))
			fmt.Fprintf(w, "      blocked by: %s\n", grammar.FormatList(entry.Matching))
		}
	}

	fmt.Fprintln(w)
	rule(w, "-")
	fmt.Fprintf(w, "%d of %d people are free for every slot\n", unblocked, len(prod.Persons))
	fmt.Fprintf(w, "Conflict rate: %.1f%% of person-slot pairs\n", report.Rate*100)
}
