package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/emmalawson/stagecall/pkg/services"
)

// RenderTimeAnalysis writes the requested-versus-available comparison
// with a verdict line. A deficit is the caller's cue to add venue time
// or trim requests before bothering with a schedule.
func RenderTimeAnalysis(w io.Writer, analysis *services.TimeAnalysis) {
	rule(w, "=")
	fmt.Fprintln(w, "REHEARSAL TIME ANALYSIS")
	rule(w, "=")

	fmt.Fprintln(w, "\nTIME REQUESTED")
	rule(w, "-")
	for _, leader := range analysis.ByLeader {
		fmt.Fprintf(w, "\n%s: %d minutes (%.1f hours)\n",
			leader.LeaderID, leader.Total, hours(leader.Total))
		for _, req := range leader.Groups {
			fmt.Fprintf(w, "  • %s: %d min\n", req.GroupID, req.Minutes)
		}
	}
	if len(analysis.MissingRequests) > 0 {
		fmt.Fprintf(w, "\n⚠️  Missing time requests: %s\n",
			strings.Join(analysis.MissingRequests, ", "))
	}
	fmt.Fprintf(w, "\nTOTAL REQUESTED: %d min (%.1f hrs)\n",
		analysis.TotalRequested, hours(analysis.TotalRequested))

	fmt.Fprintln(w, "\nVENUE AVAILABILITY")
	rule(w, "-")
	fmt.Fprintf(w, "TOTAL AVAILABLE: %d min (%.1f hrs)\n",
		analysis.TotalAvailable, hours(analysis.TotalAvailable))

	fmt.Fprintln(w, "\nCOMPARISON")
	rule(w, "=")
	switch {
	case analysis.HasDeficit():
		fmt.Fprintf(w, "✗ INSUFFICIENT TIME: %d min (%.1f hrs) short\n",
			analysis.Deficit, hours(analysis.Deficit))
		fmt.Fprintln(w, "Options:")
		fmt.Fprintln(w, "  1. Add venue slots")
		fmt.Fprintln(w, "  2. Reduce requested rehearsal minutes")
	case analysis.Surplus() > 0:
		fmt.Fprintf(w, "✓ SURPLUS: %d min (%.1f hrs) of venue time to spare\n",
			analysis.Surplus(), hours(analysis.Surplus()))
		fmt.Fprintf(w, "Venue utilization: %.1f%%\n", analysis.Utilization())
	default:
		fmt.Fprintln(w, "✓ PERFECT MATCH: requested time equals available time")
		fmt.Fprintln(w, "⚠️  No buffer left for adjustments")
	}
}
