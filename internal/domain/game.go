package domain

type Outcome int

const (
	Tie Outcome = iota
	Win
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "tie"
	}
}

// GameResult is one round of one player. Opponent is an ID inside the same
// section; the result never owns the opponent.
type GameResult struct {
	Round         int
	Opponent      PlayerID
	Score         int
	OpponentScore int
	IsBye         bool
}

func (g GameResult) Spread() int {
	return g.Score - g.OpponentScore
}

func (g GameResult) Outcome() Outcome {
	switch s := g.Spread(); {
	case s > 0:
		return Win
	case s < 0:
		return Loss
	default:
		return Tie
	}
}

// Rated reports whether the game takes part in the rating computation of
// player self. Byes, self-pairings and forfeits (a zero score on either
// side) are skipped.
func (g GameResult) Rated(self PlayerID) bool {
	if !g.CountsForCareer(self) {
		return false
	}
	return g.Score != 0 && g.OpponentScore != 0
}

// CountsForCareer reports whether the game is added to the career game count.
func (g GameResult) CountsForCareer(self PlayerID) bool {
	return !g.IsBye && g.Opponent != self
}
