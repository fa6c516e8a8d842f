package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/emmalawson/stagecall/pkg/core/model"
	"github.com/emmalawson/stagecall/pkg/core/scoring"
	"github.com/emmalawson/stagecall/pkg/services"
)

// RenderCatalog writes the per-slot catalog: which groups are blocked
// outright because their leader cannot attend, which can rehearse at
// partial strength, and which are fully free. Partial entries arrive
// pre-sorted best attendance first.
func RenderCatalog(w io.Writer, result *services.CatalogResult) {
	prod := result.Analysis.Data.Production

	fmt.Fprintln(w, "REHEARSAL CATALOG")
	rule(w, "=")

	for _, sc := range result.Catalog.Slots {
		fmt.Fprintf(w, "\n%s\n", slotHeading(sc.Slot))
		fmt.Fprintf(w, "Venue: %s  Time: %s\n", sc.Slot.Venue, clockWindow(sc.Slot.Window))
		rule(w, "-")

		if len(sc.LeaderBlocked) > 0 {
			fmt.Fprintln(w, "Leader blocked:")
			for _, e := range sc.LeaderBlocked {
				leader := leaderOf(prod, e.GroupID)
				fmt.Fprintf(w, "  ✗ %s: leader %s unavailable\n",
					groupLabel(prod.Groups, e.GroupID), personLabel(prod, leader))
			}
		}

		if len(sc.Partial) > 0 {
			fmt.Fprintln(w, "Partial attendance:")
			for _, e := range sc.Partial {
				missing := make([]string, 0, len(e.Missing))
				for _, id := range e.Missing {
					missing = append(missing, personLabel(prod, id))
				}
				fmt.Fprintf(w, "  ~ %s: %.0f%% of roster, missing %s\n",
					groupLabel(prod.Groups, e.GroupID), e.Fraction*100,
					strings.Join(missing, ", "))
			}
		}

		if len(sc.ConflictFree) > 0 {
			fmt.Fprintln(w, "Conflict free:")
			for _, e := range sc.ConflictFree {
				fmt.Fprintf(w, "  ✓ %s\n", groupLabel(prod.Groups, e.GroupID))
			}
		}
	}

	fmt.Fprintln(w)
	RenderPriorities(w, result.Ranked, prod.Groups)
}

// RenderPriorities writes the group ranking, most constrained first. A
// low priority means the group has few usable minutes and should be
// placed before more flexible groups eat the good slots.
func RenderPriorities(w io.Writer, ranked []scoring.Score, groups []model.DanceGroup) {
	fmt.Fprintln(w, "GROUP PRIORITIES (most constrained first)")
	rule(w, "=")

	nameColWidth := 20
	for _, score := range ranked {
		if l := len(groupLabel(groups, score.GroupID)); l > nameColWidth {
			nameColWidth = l
		}
	}
	nameColWidth += 2

	fmt.Fprintf(w, "Rank  %-*s%9s  %12s  %14s\n",
		nameColWidth, "Group", "Priority", "Feasibility", "Participation")
	rule(w, "-")
	for i, score := range ranked {
		fmt.Fprintf(w, "%4d  %-*s%9.2f  %12.2f  %14.2f\n",
			i+1, nameColWidth, groupLabel(groups, score.GroupID),
			score.Priority, score.Feasibility, score.Participation)
	}
}

func leaderOf(prod *model.Production, groupID string) string {
	for _, g := range prod.Groups {
		if g.ID == groupID {
			return g.LeaderID
		}
	}
	return ""
}
