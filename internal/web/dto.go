package web

import (
	"time"

	"github.com/goserg/spreadrating/internal/domain"

	"github.com/google/uuid"
)

type ratingDTO struct {
	Rank        int     `json:"rank,omitempty"`
	Name        string  `json:"name"`
	Rating      int     `json:"rating"`
	Deviation   float64 `json:"deviation"`
	CareerGames int     `json:"careerGames"`
	LastPlayed  string  `json:"lastPlayed,omitempty"`
	Unrated     bool    `json:"unrated,omitempty"`
}

// convertRatings ranks the states in the given order. Unrated players get
// no rank.
func convertRatings(states []domain.RatingState) []ratingDTO {
	dtos := make([]ratingDTO, 0, len(states))
	rank := 0
	for _, state := range states {
		dto := convertRating(state)
		if !state.Unrated {
			rank++
			dto.Rank = rank
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

func convertRating(state domain.RatingState) ratingDTO {
	return ratingDTO{
		Name:        state.Name,
		Rating:      state.Rating,
		Deviation:   state.Deviation,
		CareerGames: state.CareerGames,
		LastPlayed:  formatDay(state.LastPlayed),
		Unrated:     state.Unrated,
	}
}

type outcomeDTO struct {
	Name         string  `json:"name"`
	OldRating    int     `json:"oldRating"`
	NewRating    int     `json:"newRating"`
	Change       int     `json:"change"`
	OldDeviation float64 `json:"oldDeviation"`
	NewDeviation float64 `json:"newDeviation"`
	Wins         float64 `json:"wins"`
	Losses       float64 `json:"losses"`
	Spread       int     `json:"spread"`
	CareerGames  int     `json:"careerGames"`
}

func convertOutcome(o domain.PlayerOutcome) outcomeDTO {
	return outcomeDTO{
		Name:         o.Name,
		OldRating:    o.OldRating,
		NewRating:    o.NewRating,
		Change:       o.RatingChange(),
		OldDeviation: o.OldDeviation,
		NewDeviation: o.NewDeviation,
		Wins:         o.Wins,
		Losses:       o.Losses,
		Spread:       o.Spread,
		CareerGames:  o.CareerGames,
	}
}

type sectionDTO struct {
	Name    string       `json:"name"`
	Players []outcomeDTO `json:"players"`
}

type tournamentDTO struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name"`
	Date     string       `json:"date"`
	RatedAt  time.Time    `json:"ratedAt"`
	Sections []sectionDTO `json:"sections,omitempty"`
	Problems []string     `json:"problems,omitempty"`
}

func convertTournament(report domain.TournamentReport) tournamentDTO {
	dto := tournamentDTO{
		ID:       report.ID,
		Name:     report.Name,
		Date:     formatDay(report.Date),
		RatedAt:  report.RatedAt,
		Problems: report.Problems,
	}
	for _, section := range report.Sections {
		s := sectionDTO{Name: section.Name}
		for _, o := range section.Players {
			s.Players = append(s.Players, convertOutcome(o))
		}
		dto.Sections = append(dto.Sections, s)
	}
	return dto
}

type historyDTO struct {
	TournamentID uuid.UUID  `json:"tournamentId"`
	Tournament   string     `json:"tournament"`
	Date         string     `json:"date"`
	Section      string     `json:"section"`
	Outcome      outcomeDTO `json:"outcome"`
}

func convertHistory(entries []domain.HistoryEntry) []historyDTO {
	dtos := make([]historyDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, historyDTO{
			TournamentID: e.TournamentID,
			Tournament:   e.TournamentName,
			Date:         formatDay(e.Date),
			Section:      e.Section,
			Outcome:      convertOutcome(e.Outcome),
		})
	}
	return dtos
}

type playerDTO struct {
	ratingDTO
	Tournaments int          `json:"tournaments"`
	History     []historyDTO `json:"history"`
}

type binDTO struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Count int `json:"count"`
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
