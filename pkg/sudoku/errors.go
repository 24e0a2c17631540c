package sudoku

import "fmt"

// ErrorKind distinguishes the ways a solve attempt can fail, replacing the
// exception hierarchy of the Java original (spec §7, §9).
type ErrorKind int

const (
	// GivensConflict means two givens directly collide in a row, column,
	// or box. Raised by the Initialiser; always fatal.
	GivensConflict ErrorKind = iota
	// EmptyCell means a cell ran out of candidates. Raised by Naked
	// Singles; aborts the current solve attempt or guess branch.
	EmptyCell
	// MissingDigit means a digit has no remaining candidate anywhere in
	// a row or column. Raised by Box-Line.
	MissingDigit
	// ExhaustedGuesses means every candidate the Guess Driver tried for
	// the chosen cell led to contradiction.
	ExhaustedGuesses
	// MalformedInput means the board passed to the constructor isn't a
	// valid 9x9 grid of digits 0-9.
	MalformedInput
)

func (k ErrorKind) String() string {
	switch k {
	case GivensConflict:
		return "givens-conflict"
	case EmptyCell:
		return "empty-cell"
	case MissingDigit:
		return "missing-digit"
	case ExhaustedGuesses:
		return "exhausted-guesses"
	case MalformedInput:
		return "malformed-input"
	default:
		return "unknown"
	}
}

// SolveError is the result sum type strategies, the scheduler, and the
// guess driver use to signal contradictions explicitly rather than via
// panic/exception, per spec §9's redesign note.
type SolveError struct {
	Kind   ErrorKind
	Reason string
}

func (e *SolveError) Error() string {
	if e.Reason == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func newSolveError(kind ErrorKind, format string, args ...any) *SolveError {
	return &SolveError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Contradiction reports whether err is a *SolveError of any kind; use
// KindOf to tell the kinds apart.
func Contradiction(err error) bool {
	_, ok := err.(*SolveError)
	return ok
}

// KindOf extracts the ErrorKind from err, if it is a *SolveError.
func KindOf(err error) (ErrorKind, bool) {
	se, ok := err.(*SolveError)
	if !ok {
		return 0, false
	}
	return se.Kind, true
}
