package grammar

import (
	"fmt"
	"strings"
	"time"

	"github.com/emmalawson/stagecall/pkg/core/interval"
)

// Format renders a constraint in canonical token form. The output is itself
// a valid token: re-parsing it yields an equal constraint. Dates carry a
// four-digit year so formatting never depends on the year pivot.
func Format(c Constraint) string {
	switch r := c.(type) {
	case WeekdayRule:
		return formatWindowed(r.Day.String(), r.Window)
	case DateRule:
		return formatWindowed(formatDate(r.Date), r.Window)
	case DateRangeRule:
		return fmt.Sprintf("%s-%s", formatDate(r.Start), formatDate(r.End))
	default:
		return fmt.Sprintf("%v", c)
	}
}

// FormatList joins the canonical forms with the comma separator Parse
// splits on.
func FormatList(constraints []Constraint) string {
	parts := make([]string, 0, len(constraints))
	for _, c := range constraints {
		parts = append(parts, Format(c))
	}
	return strings.Join(parts, ", ")
}

func formatWindowed(subject string, w interval.TimeInterval) string {
	switch {
	case w.Start == 0 && w.End >= interval.MinutesPerDay:
		return subject
	case w.Start == 0:
		return fmt.Sprintf("%s before %s", subject, formatClock(w.End))
	case w.End >= interval.MinutesPerDay:
		return fmt.Sprintf("%s after %s", subject, formatClock(w.Start))
	default:
		return fmt.Sprintf("%s %s-%s", subject, formatClock(w.Start), formatClock(w.End))
	}
}

// formatClock renders a minute-of-day as compact 12-hour text: "5pm",
// "5:30pm", "12am" for midnight.
func formatClock(minute int) string {
	hour := minute / 60
	mins := minute % 60

	meridiem := "am"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		meridiem = "pm"
	case hour > 12:
		display = hour - 12
		meridiem = "pm"
	}

	if mins == 0 {
		return fmt.Sprintf("%d%s", display, meridiem)
	}
	return fmt.Sprintf("%d:%02d%s", display, mins, meridiem)
}

func formatDate(d time.Time) string {
	return fmt.Sprintf("%s %d %d", d.Month().String()[:3], d.Day(), d.Year())
}
