package results

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName      = errors.New("empty player name")
	ErrDuplicateRound = errors.New("player has two results for the round")
	ErrNoCounterpart  = errors.New("opponent has no matching result for the round")
	ErrBadRound       = errors.New("round must be positive")
)

// RecordError is a malformed input record. It aborts the tournament.
type RecordError struct {
	Line    int
	Section string
	Player  string
	Round   int
	Err     error
}

func (e *RecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, section %q, player %q, round %d: %v", e.Line, e.Section, e.Player, e.Round, e.Err)
	}
	return fmt.Sprintf("section %q, player %q, round %d: %v", e.Section, e.Player, e.Round, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// UnknownOpponentError is an opponent reference that resolves to nobody in
// the section.
type UnknownOpponentError struct {
	Section string
	Player  string
	Round   int
	Ref     string
}

func (e *UnknownOpponentError) Error() string {
	return fmt.Sprintf("section %q, player %q, round %d: unknown opponent %q", e.Section, e.Player, e.Round, e.Ref)
}
