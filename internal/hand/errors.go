package hand

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrOverContribution = errors.New("contribution exceeds remaining stack")
	ErrPotMismatch      = errors.New("pot does not reconcile")
	ErrOutOfTurn        = errors.New("action out of turn")
	ErrInvalidAction    = errors.New("invalid action")
	ErrLayout           = errors.New("seating does not fit layout")
)

// ReconstructionError reports why a hand could not be replayed. Seq is the
// index of the offending action, or -1 when the failure is not tied to one.
type ReconstructionError struct {
	HandID string
	Seq    int
	Err    error
}

func (e *ReconstructionError) Error() string {
	if e.Seq < 0 {
		return fmt.Sprintf("reconstruct hand %s: %v", e.HandID, e.Err)
	}
	return fmt.Sprintf("reconstruct hand %s: action %d: %v", e.HandID, e.Seq, e.Err)
}

func (e *ReconstructionError) Unwrap() error {
	return e.Err
}

func failf(id string, seq int, sentinel error, format string, args ...any) *ReconstructionError {
	return &ReconstructionError{
		HandID: id,
		Seq:    seq,
		Err:    fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}
