package domain

import (
	"time"

	"github.com/google/uuid"
)

// RatingState is one registry entry: the rating a player carries between
// tournaments.
type RatingState struct {
	Name        string
	Rating      int
	Deviation   float64
	CareerGames int
	LastPlayed  time.Time
	Unrated     bool
}

// PlayerOutcome is the per-tournament summary of one player.
type PlayerOutcome struct {
	Name         string
	OldRating    int
	NewRating    int
	OldDeviation float64
	NewDeviation float64
	Wins         float64
	Losses       float64
	Spread       int
	CareerGames  int
	Unrated      bool
}

func (o PlayerOutcome) RatingChange() int {
	return o.NewRating - o.OldRating
}

type SectionOutcome struct {
	Name    string
	Players []PlayerOutcome
}

// TournamentReport is everything a report renderer needs about one rated
// tournament.
type TournamentReport struct {
	ID       uuid.UUID
	Name     string
	Date     time.Time
	RatedAt  time.Time
	Sections []SectionOutcome
	Problems []string
}

// HistoryEntry is one tournament in a player's rating history.
type HistoryEntry struct {
	TournamentID   uuid.UUID
	TournamentName string
	Date           time.Time
	Section        string
	Outcome        PlayerOutcome
}
