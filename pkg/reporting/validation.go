package reporting

import (
	"fmt"
	"io"

	"github.com/emmalawson/stagecall/pkg/core/grammar"
	"github.com/emmalawson/stagecall/pkg/services"
)

// RenderValidation writes the constraint validation report: every bad
// token with its source location, then the summary counts.
func RenderValidation(w io.Writer, report *services.ConstraintReport) {
	fmt.Fprintln(w, "Validating availability constraints")
	rule(w, "=")

	for _, e := range report.Errors {
		label := e.PersonID
		if e.PersonName != "" {
			label = fmt.Sprintf("%s (%s)", e.PersonName, e.PersonID)
		}
		fmt.Fprintf(w, "\n✗ %s, row %d, token %d:\n", label, e.Row, e.TokenNum)
		fmt.Fprintf(w, "    Token: %q\n", e.Token)
		fmt.Fprintf(w, "    %s\n", e.Reason)
	}

	stats := report.Stats
	fmt.Fprintln(w)
	rule(w, "=")
	fmt.Fprintln(w, "SUMMARY")
	rule(w, "-")
	fmt.Fprintf(w, "Total people:        %d\n", stats.Rows)
	fmt.Fprintf(w, "Empty availability:  %d\n", stats.EmptyRows)
	fmt.Fprintf(w, "Total tokens:        %d\n", stats.Tokens)
	fmt.Fprintf(w, "Valid tokens:        %d\n", stats.Valid)
	fmt.Fprintf(w, "Invalid tokens:      %d\n", stats.Invalid)

	if stats.Tokens > 0 {
		mark := "✓"
		if stats.HasErrors() {
			mark = "⚠️"
		}
		fmt.Fprintf(w, "Success rate:        %.1f%% %s\n", stats.SuccessRate(), mark)
	}
}

// RenderTokenCheck writes the verdict on a single availability token,
// echoing the canonical form so the writer can see how it was read.
func RenderTokenCheck(w io.Writer, token string, constraint grammar.Constraint, err error) {
	fmt.Fprintf(w, "Token: %s\n", token)
	fmt.Fprintln(w, "--------------------------------------------------")

	if err != nil {
		fmt.Fprintln(w, "✗ Invalid")
		fmt.Fprintf(w, "%s\n", err)
		return
	}
	fmt.Fprintln(w, "✓ Valid")
	fmt.Fprintf(w, "Canonical form: %s\n", grammar.Format(constraint))
}
