package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/goserg/spreadrating/internal/domain"
	"github.com/goserg/spreadrating/internal/rating"
	"github.com/goserg/spreadrating/internal/registry"
	"github.com/goserg/spreadrating/internal/results"
	"github.com/goserg/spreadrating/internal/storage/sqlite"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scores = [][2]int{
	{400, 300},
	{200, 450},
	{500, 450},
	{300, 300},
	{600, 300},
	{350, 500},
	{250, 400},
	{350, 300},
}

func newTestService(t *testing.T) *RatingService {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	calc, err := rating.New(l, rating.DefaultConfig())
	require.NoError(t, err)
	reg := registry.New(rating.DefaultInitialRating, rating.DefaultMaxDeviation)
	s := New(l, reg, calc, results.NewBuilder(results.DefaultByeNames), nil)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func headToHead(section, a, b string) results.SectionInput {
	in := results.SectionInput{Name: section}
	for i, sc := range scores {
		in.Records = append(in.Records,
			results.Record{Section: section, Round: i + 1, Player: a, Opponent: b, Score: sc[0]},
			results.Record{Section: section, Round: i + 1, Player: b, Opponent: a, Score: sc[1]},
		)
	}
	return in
}

func tournament(name string, date time.Time, sections ...results.SectionInput) results.Tournament {
	return results.Tournament{Name: name, Date: date, Sections: sections}
}

func TestProcessOneTournament_NewPlayers(t *testing.T) {
	s := newTestService(t)
	date := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)

	report, err := s.ProcessOneTournament(context.Background(), tournament("January", date, headToHead("A", "Alice", "Becky")))
	require.NoError(t, err)
	assert.Empty(t, report.Problems)
	require.Len(t, report.Sections, 1)
	players := report.Sections[0].Players
	require.Len(t, players, 2)

	// sorted by wins, then spread; alice has more wins but a negative spread
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, 1490, players[0].NewRating)
	assert.Equal(t, 1500, players[0].OldRating)
	assert.True(t, players[0].Unrated)
	assert.Equal(t, 4.5, players[0].Wins)
	assert.Equal(t, 3.5, players[0].Losses)
	assert.Equal(t, -50, players[0].Spread)
	assert.Equal(t, "Becky", players[1].Name)
	assert.Equal(t, 1509, players[1].NewRating)
	assert.Equal(t, 50, players[1].Spread)

	alice, ok := s.Registry().Get("alice")
	require.True(t, ok)
	assert.Equal(t, domain.RatingState{
		Name:        "Alice",
		Rating:      1490,
		Deviation:   111.8,
		CareerGames: 8,
		LastPlayed:  date,
	}, alice)
}

func TestProcessAll_CarriesRatingsForward(t *testing.T) {
	s := newTestService(t)
	january := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	february := january.AddDate(0, 0, 30)

	// given out of order on purpose
	reports, err := s.ProcessAll(context.Background(), []results.Tournament{
		tournament("February", february, headToHead("A", "alice", "becky")),
		tournament("January", january, headToHead("A", "Alice", "Becky")),
	})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "January", reports[0].Name)

	second := reports[1].Sections[0].Players
	require.Len(t, second, 2)
	alice, becky := second[0], second[1]
	assert.Equal(t, "alice", alice.Name)
	assert.Equal(t, 1509, becky.OldRating)
	assert.Equal(t, 1513, becky.NewRating)
	assert.False(t, becky.Unrated)
	assert.Equal(t, 1490, alice.OldRating)
	assert.Equal(t, 1486, alice.NewRating)
	assert.InDelta(t, 124.4959, alice.OldDeviation, 0.001)
	assert.Equal(t, 99.4, alice.NewDeviation)
	assert.Equal(t, 16, alice.CareerGames)

	state, ok := s.Registry().Get("ALICE")
	require.True(t, ok)
	assert.Equal(t, "Alice", state.Name)
	assert.Equal(t, 16, state.CareerGames)
	assert.Equal(t, february, state.LastPlayed)

	history, err := s.History(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "January", history[0].TournamentName)
	assert.Equal(t, 1486, history[1].Outcome.NewRating)
}

func TestProcessOneTournament_InputErrorLeavesRegistry(t *testing.T) {
	s := newTestService(t)
	s.Registry().Load([]domain.RatingState{
		{Name: "Alice", Rating: 1700, Deviation: 80, CareerGames: 40},
	})
	before := s.Registry().Ranked()

	broken := headToHead("A", "Alice", "Becky")
	broken.Records[0].Opponent = "Nobody"
	_, err := s.ProcessOneTournament(context.Background(), tournament("Broken", time.Now(), broken))
	require.Error(t, err)
	var unknown *results.UnknownOpponentError
	assert.True(t, errors.As(err, &unknown))

	assert.Equal(t, before, s.Registry().Ranked())
	_, ok := s.Registry().Get("Becky")
	assert.False(t, ok)
}

func TestProcessOneTournament_DisjointSections(t *testing.T) {
	s := newTestService(t)
	_, err := s.ProcessOneTournament(context.Background(), tournament("Split", time.Now(),
		headToHead("A", "Alice", "Becky"),
		headToHead("B", "becky", "Carol"),
	))
	assert.ErrorIs(t, err, ErrDisjointSections)
	assert.Equal(t, 0, s.Registry().Len())
}

func TestProcessOneTournament_SectionsAreIndependent(t *testing.T) {
	s := newTestService(t)
	report, err := s.ProcessOneTournament(context.Background(), tournament("Two sections", time.Now(),
		headToHead("A", "Alice", "Becky"),
		headToHead("B", "Carol", "Dana"),
	))
	require.NoError(t, err)
	require.Len(t, report.Sections, 2)
	for _, section := range report.Sections {
		require.Len(t, section.Players, 2)
		assert.Equal(t, 1490, section.Players[0].NewRating)
		assert.Equal(t, 1509, section.Players[1].NewRating)
	}
	assert.Equal(t, 4, s.Registry().Len())
}

func TestProcessAll_StopsAtFirstError(t *testing.T) {
	s := newTestService(t)
	january := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	broken := headToHead("A", "Carol", "Dana")
	broken.Records = broken.Records[1:]

	reports, err := s.ProcessAll(context.Background(), []results.Tournament{
		tournament("January", january, headToHead("A", "Alice", "Becky")),
		tournament("February", january.AddDate(0, 1, 0), broken),
	})
	require.Error(t, err)
	assert.Len(t, reports, 1)
	assert.Equal(t, 2, s.Registry().Len())
}

func TestProcessOneTournament_ByeOnlyPlayer(t *testing.T) {
	s := newTestService(t)
	s.Registry().Load([]domain.RatingState{
		{Name: "Alice", Rating: 1700, Deviation: 80, CareerGames: 40, LastPlayed: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	in := results.SectionInput{Name: "A", Records: []results.Record{
		{Round: 1, Player: "Alice", Opponent: "Bye", Score: 50},
	}}
	report, err := s.ProcessOneTournament(context.Background(), tournament("Byes", time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), in))
	require.NoError(t, err)
	alice := report.Sections[0].Players[0]
	assert.Equal(t, 1700, alice.NewRating)
	assert.Equal(t, 1.0, alice.Wins)
	// the deviation still grows with inactivity
	assert.InDelta(t, 86.02, alice.NewDeviation, 0.01)
	state, _ := s.Registry().Get("alice")
	assert.Equal(t, 40, state.CareerGames)
}

func TestResetHistory_RerateDoesNotDuplicate(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	store, err := sqlite.New(l, filepath.Join(t.TempDir(), "rating.sqlite"))
	require.NoError(t, err)
	defer store.Close()
	calc, err := rating.New(l, rating.DefaultConfig())
	require.NoError(t, err)

	ctx := context.Background()
	january := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	schedule := []results.Tournament{
		tournament("January", january, headToHead("A", "Alice", "Becky")),
	}

	for run := 0; run < 2; run++ {
		reg := registry.New(rating.DefaultInitialRating, rating.DefaultMaxDeviation)
		s := New(l, reg, calc, results.NewBuilder(results.DefaultByeNames), store)
		require.NoError(t, s.ResetHistory(ctx))
		_, err := s.ProcessAll(ctx, schedule)
		require.NoError(t, err)

		stored, err := s.Tournaments(ctx)
		require.NoError(t, err)
		assert.Len(t, stored, 1)
		history, err := s.History(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, 1490, history[0].Outcome.NewRating)

		ratings, err := store.ListRatings(ctx)
		require.NoError(t, err)
		assert.Len(t, ratings, 2)
	}
}
