package sqlite

import (
	"time"

	"github.com/goserg/spreadrating/gen/model"
	"github.com/goserg/spreadrating/internal/domain"
	"github.com/goserg/spreadrating/internal/normalize"

	"github.com/google/uuid"
)

func convertPlayersToDomain(players []model.Players) []domain.RatingState {
	converted := make([]domain.RatingState, 0, len(players))
	for _, player := range players {
		state := domain.RatingState{
			Name:        player.Name,
			Rating:      int(player.Rating),
			Deviation:   player.Deviation,
			CareerGames: int(player.CareerGames),
			Unrated:     player.Unrated,
		}
		if player.LastPlayed != nil {
			state.LastPlayed = dateOnly(*player.LastPlayed)
		}
		converted = append(converted, state)
	}
	return converted
}

func convertPlayersFromDomain(states []domain.RatingState) []model.Players {
	converted := make([]model.Players, 0, len(states))
	for _, state := range states {
		player := model.Players{
			NameKey:     normalize.Name(state.Name),
			Name:        state.Name,
			Rating:      int32(state.Rating),
			Deviation:   state.Deviation,
			CareerGames: int32(state.CareerGames),
			Unrated:     state.Unrated,
		}
		if !state.LastPlayed.IsZero() {
			lastPlayed := state.LastPlayed
			player.LastPlayed = &lastPlayed
		}
		converted = append(converted, player)
	}
	return converted
}

func convertTournamentFromDomain(report domain.TournamentReport) model.Tournaments {
	return model.Tournaments{
		ID:       report.ID.String(),
		Name:     report.Name,
		Date:     report.Date,
		RatedAt:  report.RatedAt,
		Problems: joinProblems(report.Problems),
	}
}

func convertResultsFromDomain(report domain.TournamentReport) []model.Results {
	var converted []model.Results
	for _, section := range report.Sections {
		for _, p := range section.Players {
			converted = append(converted, model.Results{
				TournamentID: report.ID.String(),
				Section:      section.Name,
				PlayerKey:    normalize.Name(p.Name),
				PlayerName:   p.Name,
				OldRating:    int32(p.OldRating),
				NewRating:    int32(p.NewRating),
				OldDeviation: p.OldDeviation,
				NewDeviation: p.NewDeviation,
				Wins:         p.Wins,
				Losses:       p.Losses,
				Spread:       int32(p.Spread),
				CareerGames:  int32(p.CareerGames),
				Unrated:      p.Unrated,
			})
		}
	}
	return converted
}

// convertTournamentToDomain rebuilds sections in the order results were
// stored.
func convertTournamentToDomain(t model.Tournaments, results []model.Results) (domain.TournamentReport, error) {
	id, err := uuid.Parse(t.ID)
	if err != nil {
		return domain.TournamentReport{}, err
	}
	report := domain.TournamentReport{
		ID:       id,
		Name:     t.Name,
		Date:     dateOnly(t.Date),
		RatedAt:  t.RatedAt,
		Problems: splitProblems(t.Problems),
	}
	index := make(map[string]int)
	for _, r := range results {
		i, ok := index[r.Section]
		if !ok {
			i = len(report.Sections)
			index[r.Section] = i
			report.Sections = append(report.Sections, domain.SectionOutcome{Name: r.Section})
		}
		report.Sections[i].Players = append(report.Sections[i].Players, convertResultToDomain(r))
	}
	return report, nil
}

func convertResultToDomain(r model.Results) domain.PlayerOutcome {
	return domain.PlayerOutcome{
		Name:         r.PlayerName,
		OldRating:    int(r.OldRating),
		NewRating:    int(r.NewRating),
		OldDeviation: r.OldDeviation,
		NewDeviation: r.NewDeviation,
		Wins:         r.Wins,
		Losses:       r.Losses,
		Spread:       int(r.Spread),
		CareerGames:  int(r.CareerGames),
		Unrated:      r.Unrated,
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
