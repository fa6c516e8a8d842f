package reporting

import (
	"fmt"
	"io"

	"github.com/emmalawson/stagecall/pkg/core/interval"
	"github.com/emmalawson/stagecall/pkg/core/model"
	"github.com/emmalawson/stagecall/pkg/core/scheduler"
	"github.com/emmalawson/stagecall/pkg/services"
)

// RenderSchedule writes the generated schedule slot by slot, with the
// window each allocation draws from, its coverage tag, and any venue
// time left idle. Groups still owed minutes get their own section.
func RenderSchedule(w io.Writer, result *services.ScheduleResult) {
	prod := result.Catalog.Analysis.Data.Production
	outcome := result.Outcome

	fmt.Fprintln(w, "REHEARSAL SCHEDULE")
	rule(w, "=")

	bySlot := make(map[string][]scheduler.Entry, len(prod.Slots))
	for _, entry := range outcome.Entries {
		bySlot[entry.SlotID] = append(bySlot[entry.SlotID], entry)
	}

	slots := make([]model.VenueSlot, len(prod.Slots))
	copy(slots, prod.Slots)
	model.SortSlots(slots)

	for _, slot := range slots {
		fmt.Fprintf(w, "\n%s\n", slotHeading(slot))
		fmt.Fprintf(w, "Venue: %s  Time: %s\n", slot.Venue, clockWindow(slot.Window))
		rule(w, "-")

		allocated := 0
		for _, entry := range bySlot[slot.ID] {
			allocated += entry.Minutes
			fmt.Fprintf(w, "  %s  %3d min  from %s  %s\n",
				groupLabel(prod.Groups, entry.GroupID), entry.Minutes,
				clockWindow(entry.Window), coverageTag(entry.Coverage))
		}

		if len(bySlot[slot.ID]) == 0 {
			fmt.Fprintln(w, "  (no groups scheduled)")
		}
		if idle := slot.Window.Duration() - allocated; idle > 0 {
			fmt.Fprintf(w, "  %d min unallocated\n", idle)
		}
	}

	if len(outcome.UnderScheduled) > 0 {
		fmt.Fprintln(w, "\nUNDER-SCHEDULED")
		rule(w, "-")
		for _, r := range outcome.UnderScheduled {
			fmt.Fprintf(w, "  ✗ %s: %d min still owed\n",
				groupLabel(prod.Groups, r.GroupID), r.MinutesRemaining)
		}
	}

	if len(outcome.ValidationErrors) > 0 {
		fmt.Fprintln(w, "\nVALIDATION FAILURES")
		rule(w, "-")
		for _, v := range outcome.ValidationErrors {
			fmt.Fprintf(w, "  ✗ %s / %s [%s]: %s\n", v.SlotID, v.GroupID, v.Rule, v.Description)
		}
	}

	fmt.Fprintln(w)
	rule(w, "=")
	if outcome.Success {
		fmt.Fprintln(w, "✓ Every group received its requested minutes")
	} else {
		fmt.Fprintln(w, "⚠️  Schedule is incomplete; see the sections above")
	}
}

// RenderRunHistory writes persisted schedule runs, plus the entries of
// the selected run when one was requested.
func RenderRunHistory(w io.Writer, history *services.RunHistory) {
	fmt.Fprintln(w, "SCHEDULE RUNS")
	rule(w, "=")

	if len(history.Runs) == 0 {
		fmt.Fprintln(w, "  (no runs persisted yet)")
		return
	}

	fmt.Fprintf(w, "%-38s  %-16s  %4s  %s\n", "Run ID", "Created", "Year", "Status")
	rule(w, "-")
	for _, run := range history.Runs {
		status := "✓ complete"
		if !run.Success {
			status = "✗ incomplete"
		}
		fmt.Fprintf(w, "%-38s  %-16s  %4d  %s\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.ProductionYear, status)
	}

	if len(history.Entries) == 0 {
		return
	}

	fmt.Fprintf(w, "\nENTRIES FOR RUN %s\n", history.Entries[0].RunID)
	rule(w, "-")
	for _, e := range history.Entries {
		fmt.Fprintf(w, "  %-30s  %-12s  %-12s  %s-%s  %3d min\n",
			e.SlotID, e.GroupID, e.Coverage,
			interval.FormatMinute(e.WindowStart), interval.FormatMinute(e.WindowEnd), e.Minutes)
	}
}

func coverageTag(c scheduler.Coverage) string {
	if c == scheduler.CoverageFull {
		return "[full roster]"
	}
	return "[leader only]"
}
