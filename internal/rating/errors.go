package rating

import (
	"errors"
	"fmt"
)

var ErrUnknownPlayer = errors.New("player is not in the section")

// NumericError is returned when a player's inputs make the update
// degenerate. It carries the raw values so bad historical data can be traced.
type NumericError struct {
	Player         string
	Reason         string
	PriorRating    float64
	PriorDeviation float64
	SigmaPrime     float64
	Games          int
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("rate %q: %s (prior rating %v, prior deviation %v, sigma' %v, games %d)",
		e.Player, e.Reason, e.PriorRating, e.PriorDeviation, e.SigmaPrime, e.Games)
}
