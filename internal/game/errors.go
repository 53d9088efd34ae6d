package game

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCard   = errors.New("card not found")
	ErrDuplicateCard = errors.New("duplicate card id")
	ErrDeckEmpty     = errors.New("deck is empty")
	ErrHandFull      = errors.New("hand is full")
	ErrNoChallenge   = errors.New("no challenge in progress")
	ErrInvalidConfig = errors.New("invalid game config")
)

// PhaseError reports a command issued outside its designated phase.
type PhaseError struct {
	Op       string
	Expected []Phase
	Actual   Phase
}

func (e *PhaseError) Error() string {
	if len(e.Expected) == 1 {
		return fmt.Sprintf("%s: invalid in phase %q (expected %q)", e.Op, e.Actual, e.Expected[0])
	}
	return fmt.Sprintf("%s: invalid in phase %q (expected one of %v)", e.Op, e.Actual, e.Expected)
}

// newPhaseError builds a PhaseError for the given command.
func newPhaseError(op string, actual Phase, expected ...Phase) error {
	return &PhaseError{Op: op, Expected: expected, Actual: actual}
}

// SelectionError carries the structured error list produced by card
// selection validation. The individual messages are user-facing.
type SelectionError struct {
	Problems []string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid card selection: %v", e.Problems)
}
