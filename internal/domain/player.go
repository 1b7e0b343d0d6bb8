package domain

import (
	"math"
	"time"
)

// PlayerID is the position of a player inside its section.
type PlayerID int

// Player is the tournament-local state of one participant.
type Player struct {
	ID   PlayerID
	Name string

	PriorRating    float64
	PriorDeviation float64
	NewRating      int
	NewDeviation   float64

	// StartRating and StartDeviation are the values the player entered the
	// tournament with, before inactivity adjustment and seeding.
	StartRating    int
	StartDeviation float64

	CareerGames int
	Unrated     bool
	LastPlayed  time.Time

	Games []GameResult

	stats   Stats
	tallied bool
}

// Stats is the per-tournament summary of a player's games.
type Stats struct {
	Wins   float64
	Losses float64
	Spread int
}

// SetPrior sets the carried-forward rating and deviation. A zero deviation
// means "unknown" and is replaced by maxDeviation.
func (p *Player) SetPrior(rating, deviation, maxDeviation float64) {
	if deviation == 0 || deviation > maxDeviation {
		deviation = maxDeviation
	}
	p.PriorRating = rating
	p.PriorDeviation = deviation
	p.NewRating = int(math.RoundToEven(rating))
	p.NewDeviation = deviation
}

// Tally computes wins, losses and spread over all games of this tournament
// and adds the non-bye games to the career count. It is a no-op when called
// a second time.
func (p *Player) Tally() {
	if p.tallied {
		return
	}
	var s Stats
	for _, g := range p.Games {
		s.Spread += g.Spread()
		switch g.Outcome() {
		case Win:
			s.Wins++
		case Loss:
			s.Losses++
		default:
			s.Wins += 0.5
			s.Losses += 0.5
		}
		if g.CountsForCareer(p.ID) {
			p.CareerGames++
		}
	}
	p.stats = s
	p.tallied = true
}

func (p *Player) Stats() Stats {
	return p.stats
}

// Opponents returns the IDs of everyone the player met, byes excluded.
func (p *Player) Opponents() []PlayerID {
	opponents := make([]PlayerID, 0, len(p.Games))
	for _, g := range p.Games {
		if g.IsBye || g.Opponent == p.ID {
			continue
		}
		opponents = append(opponents, g.Opponent)
	}
	return opponents
}
