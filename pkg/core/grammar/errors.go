package grammar

import "fmt"

// ParseError describes why a single constraint token was rejected. Token
// position and text are preserved so the offending cell can be located in
// the source table.
type ParseError struct {
	// TokenIndex is the zero-based position within the comma-separated
	// constraint text. Zero when a token is parsed on its own.
	TokenIndex int

	// Text is the trimmed token as received.
	Text string

	// Reason explains the rejection.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("token %d %q: %s", e.TokenIndex, e.Text, e.Reason)
}

func errorf(text, format string, args ...any) *ParseError {
	return &ParseError{Text: text, Reason: fmt.Sprintf(format, args...)}
}
