package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/goserg/spreadrating/internal/domain"
	"github.com/goserg/spreadrating/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorage(t *testing.T) {
	suite.Run(t, &StorageSuite{})
}

func (s *StorageSuite) SetupTest() {
	l := logrus.New()
	l.SetOutput(io.Discard)
	st, err := New(l, filepath.Join(s.T().TempDir(), "rating.sqlite"))
	s.Require().NoError(err)
	s.storage = st
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	s.Require().NoError(s.storage.Close())
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) TestRatingsReplaceSnapshot() {
	first := []domain.RatingState{
		{Name: "Alice", Rating: 1610, Deviation: 95.5, CareerGames: 40, LastPlayed: day(2024, 2, 3)},
		{Name: "Bob", Rating: 1480, Deviation: 150, CareerGames: 8},
	}
	s.Require().NoError(s.storage.SaveRatings(s.ctx, first))

	got, err := s.storage.ListRatings(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(first, got)

	second := []domain.RatingState{
		{Name: "Bob", Rating: 1700, Deviation: 120, CareerGames: 16, LastPlayed: day(2024, 3, 1)},
	}
	s.Require().NoError(s.storage.SaveRatings(s.ctx, second))
	got, err = s.storage.ListRatings(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(second, got)
}

func (s *StorageSuite) TestTournaments() {
	report := domain.TournamentReport{
		ID:      uuid.New(),
		Name:    "Spring Open",
		Date:    day(2024, 4, 20),
		RatedAt: time.Date(2024, 4, 21, 9, 30, 0, 0, time.UTC),
		Sections: []domain.SectionOutcome{
			{Name: "A", Players: []domain.PlayerOutcome{
				{Name: "Alice", OldRating: 1610, NewRating: 1632, OldDeviation: 95.5, NewDeviation: 80.1, Wins: 5, Losses: 3, Spread: 210, CareerGames: 48},
				{Name: "Carol", OldRating: 1500, NewRating: 1490, OldDeviation: 150, NewDeviation: 110.2, Wins: 3.5, Losses: 4.5, Spread: -80, CareerGames: 8, Unrated: true},
			}},
			{Name: "B", Players: []domain.PlayerOutcome{
				{Name: "Bob", OldRating: 1480, NewRating: 1470, OldDeviation: 150, NewDeviation: 120, Wins: 2, Losses: 6, Spread: -300, CareerGames: 16},
			}},
		},
		Problems: []string{"rate \"Dave\": effective variance is not positive"},
	}
	s.Require().NoError(s.storage.SaveTournament(s.ctx, report))

	got, err := s.storage.GetTournament(s.ctx, report.ID)
	s.Require().NoError(err)
	s.Equal(report.Name, got.Name)
	s.Equal(report.Date, got.Date)
	s.True(report.RatedAt.Equal(got.RatedAt))
	s.Equal(report.Sections, got.Sections)
	s.Equal(report.Problems, got.Problems)

	list, err := s.storage.ListTournaments(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(report.ID, list[0].ID)
	s.Empty(list[0].Sections)

	history, err := s.storage.PlayerHistory(s.ctx, "  alice ")
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal("Spring Open", history[0].TournamentName)
	s.Equal("A", history[0].Section)
	s.Equal(1632, history[0].Outcome.NewRating)

	_, err = s.storage.GetTournament(s.ctx, uuid.New())
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StorageSuite) TestDeleteTournaments() {
	report := domain.TournamentReport{
		ID:   uuid.New(),
		Name: "Spring Open",
		Date: day(2024, 4, 20),
		Sections: []domain.SectionOutcome{
			{Name: "A", Players: []domain.PlayerOutcome{{Name: "Alice", OldRating: 1500, NewRating: 1510}}},
		},
	}
	s.Require().NoError(s.storage.SaveTournament(s.ctx, report))
	s.Require().NoError(s.storage.DeleteTournaments(s.ctx))

	list, err := s.storage.ListTournaments(s.ctx)
	s.Require().NoError(err)
	s.Empty(list)
	history, err := s.storage.PlayerHistory(s.ctx, "alice")
	s.Require().NoError(err)
	s.Empty(history)

	// the same report can be stored again afterwards
	s.Require().NoError(s.storage.SaveTournament(s.ctx, report))
	list, err = s.storage.ListTournaments(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 1)
}
