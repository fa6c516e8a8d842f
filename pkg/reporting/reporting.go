// Package reporting renders the pipeline's derived data as plain text
// reports. Every renderer writes to an io.Writer so the CLI can point
// them at stdout and the tests at a buffer; none of them mutate the
// data they are handed.
package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/emmalawson/stagecall/pkg/core/interval"
	"github.com/emmalawson/stagecall/pkg/core/model"
)

const lineWidth = 70

func rule(w io.Writer, ch string) {
	fmt.Fprintln(w, strings.Repeat(ch, lineWidth))
}

// slotHeading renders a slot's calendar position: "MONDAY Mar 2 2026".
func slotHeading(slot model.VenueSlot) string {
	return fmt.Sprintf("%s %s",
		strings.ToUpper(slot.Date.Weekday().String()),
		slot.Date.Format("Jan 2 2006"))
}

// clockWindow renders a minute window as "18:00-21:00".
func clockWindow(win interval.TimeInterval) string {
	return fmt.Sprintf("%s-%s",
		interval.FormatMinute(win.Start), interval.FormatMinute(win.End))
}

func hours(minutes int) float64 {
	return float64(minutes) / 60.0
}

// personLabel prefers "Name (id)", falling back to the bare ID for
// records that never carried a name.
func personLabel(prod *model.Production, id string) string {
	if p, ok := prod.PersonByID(id); ok && p.Name != "" {
		return fmt.Sprintf("%s (%s)", p.Name, id)
	}
	return id
}

func groupLabel(groups []model.DanceGroup, id string) string {
	for _, g := range groups {
		if g.ID == id && g.Name != "" {
			return fmt.Sprintf("%s (%s)", g.Name, id)
		}
	}
	return id
}
