package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goserg/spreadrating/internal/domain"
	"github.com/goserg/spreadrating/internal/normalize"
	"github.com/goserg/spreadrating/internal/rating"
	"github.com/goserg/spreadrating/internal/registry"
	"github.com/goserg/spreadrating/internal/results"
	"github.com/goserg/spreadrating/internal/storage"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var ErrDisjointSections = errors.New("player appears in more than one section")

// RatingService rates tournaments one after another, carrying every player's
// rating forward through the registry.
type RatingService struct {
	registry *registry.Registry
	calc     *rating.Calculator
	builder  *results.Builder
	store    storage.Storage
	log      *logrus.Entry
	now      func() time.Time

	mu       sync.Mutex
	lastDate time.Time
	history  map[string][]domain.HistoryEntry
}

// New creates the service. store may be nil, then nothing is persisted.
func New(l *logrus.Logger, reg *registry.Registry, calc *rating.Calculator, builder *results.Builder, store storage.Storage) *RatingService {
	return &RatingService{
		registry: reg,
		calc:     calc,
		builder:  builder,
		store:    store,
		log: l.WithFields(map[string]interface{}{
			"from": "rating-service",
		}),
		now:     time.Now,
		history: make(map[string][]domain.HistoryEntry),
	}
}

func (s *RatingService) Registry() *registry.Registry {
	return s.registry
}

// Load seeds the registry from the store.
func (s *RatingService) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	states, err := s.store.ListRatings(ctx)
	if err != nil {
		return err
	}
	s.registry.Load(states)
	s.log.WithField("players", len(states)).Info("ratings loaded")
	return nil
}

// Persist writes the registry snapshot to the store.
func (s *RatingService) Persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.SaveRatings(ctx, s.registry.Ranked())
}

// ProcessAll rates the tournaments in date order. Processing stops at the
// first tournament that cannot be rated; the reports rated so far are
// returned along with the error.
func (s *RatingService) ProcessAll(ctx context.Context, tournaments []results.Tournament) ([]domain.TournamentReport, error) {
	ordered := make([]results.Tournament, len(tournaments))
	copy(ordered, tournaments)
	less := func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	}
	if !sort.SliceIsSorted(ordered, less) {
		s.log.Warn("tournaments are not in date order, sorting")
		sort.SliceStable(ordered, less)
	}

	reports := make([]domain.TournamentReport, 0, len(ordered))
	for _, t := range ordered {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report, err := s.ProcessOneTournament(ctx, t)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, s.Persist(ctx)
}

// ProcessOneTournament rates one event against the current registry and
// writes the new ratings back. Input errors abort before the registry is
// touched.
func (s *RatingService) ProcessOneTournament(ctx context.Context, t results.Tournament) (domain.TournamentReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.WithField("tournament", t.Name)
	date := dateOnly(t.Date)
	if date.Before(s.lastDate) {
		log.WithFields(logrus.Fields{
			"date":     date.Format(time.DateOnly),
			"previous": s.lastDate.Format(time.DateOnly),
		}).Warn("tournament is older than the previously rated one")
	}

	sections := make([]*domain.Section, 0, len(t.Sections))
	for _, in := range t.Sections {
		section, err := s.builder.Build(in)
		if err != nil {
			return domain.TournamentReport{}, fmt.Errorf("tournament %q: %w", t.Name, err)
		}
		sections = append(sections, section)
	}
	if err := checkDisjoint(sections); err != nil {
		return domain.TournamentReport{}, fmt.Errorf("tournament %q: %w", t.Name, err)
	}

	for _, section := range sections {
		for i := range section.Players {
			s.prepare(log, &section.Players[i], date)
		}
	}

	problems, err := s.rateSections(ctx, sections)
	if err != nil {
		return domain.TournamentReport{}, err
	}
	for _, problem := range problems {
		log.WithError(problem).Warn("player could not be rated")
	}

	for _, section := range sections {
		for _, p := range section.Players {
			s.registry.Update(domain.RatingState{
				Name:        p.Name,
				Rating:      p.NewRating,
				Deviation:   p.NewDeviation,
				CareerGames: p.CareerGames,
				LastPlayed:  date,
			})
		}
	}
	if date.After(s.lastDate) {
		s.lastDate = date
	}

	report := s.report(t.Name, date, sections, problems)
	s.record(report)
	if s.store != nil {
		if err := s.store.SaveTournament(ctx, report); err != nil {
			return report, fmt.Errorf("save tournament %q: %w", t.Name, err)
		}
	}
	log.WithFields(logrus.Fields{
		"sections": len(sections),
		"problems": len(problems),
	}).Info("tournament rated")
	return report, nil
}

// prepare copies the carried-forward state onto the tournament-local player.
func (s *RatingService) prepare(log *logrus.Entry, p *domain.Player, date time.Time) {
	state, known := s.registry.Lookup(p.Name)
	cfg := s.calc.Config()

	p.SetPrior(float64(state.Rating), state.Deviation, cfg.MaxDeviation)
	p.CareerGames = state.CareerGames
	p.Unrated = state.Unrated
	p.LastPlayed = state.LastPlayed
	if known && state.LastPlayed.After(date) {
		log.WithFields(logrus.Fields{
			"player":      p.Name,
			"last_played": state.LastPlayed.Format(time.DateOnly),
		}).Warn("player has a later game already rated")
	}
	s.calc.AdjustForInactivity(p, date)
	p.LastPlayed = date
	p.StartRating = state.Rating
	p.StartDeviation = p.PriorDeviation
	p.Tally()
}

// rateSections rates independent sections concurrently. The returned slice
// holds per-player numeric problems; the error is only set when ctx is done.
func (s *RatingService) rateSections(ctx context.Context, sections []*domain.Section) ([]error, error) {
	perSection := make([]error, len(sections))
	g, ctx := errgroup.WithContext(ctx)
	for i := range sections {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perSection[i] = s.calc.RateSection(sections[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var problems []error
	for _, err := range perSection {
		if err != nil {
			problems = append(problems, unwrap(err)...)
		}
	}
	return problems, nil
}

func checkDisjoint(sections []*domain.Section) error {
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, section := range sections {
		for _, p := range section.Players {
			key := normalize.Name(p.Name)
			if seen.Contains(key) {
				return fmt.Errorf("%w: %q", ErrDisjointSections, p.Name)
			}
			seen.Add(key)
		}
	}
	return nil
}

func (s *RatingService) report(name string, date time.Time, sections []*domain.Section, problems []error) domain.TournamentReport {
	report := domain.TournamentReport{
		ID:      uuid.New(),
		Name:    name,
		Date:    date,
		RatedAt: s.now(),
	}
	for _, section := range sections {
		outcome := domain.SectionOutcome{Name: section.Name}
		for _, p := range section.Players {
			stats := p.Stats()
			outcome.Players = append(outcome.Players, domain.PlayerOutcome{
				Name:         p.Name,
				OldRating:    p.StartRating,
				NewRating:    p.NewRating,
				OldDeviation: p.StartDeviation,
				NewDeviation: p.NewDeviation,
				Wins:         stats.Wins,
				Losses:       stats.Losses,
				Spread:       stats.Spread,
				CareerGames:  p.CareerGames,
				Unrated:      p.Unrated,
			})
		}
		sort.SliceStable(outcome.Players, func(i, j int) bool {
			return standing(outcome.Players[i]) > standing(outcome.Players[j])
		})
		report.Sections = append(report.Sections, outcome)
	}
	for _, problem := range problems {
		report.Problems = append(report.Problems, problem.Error())
	}
	return report
}

func standing(o domain.PlayerOutcome) float64 {
	return o.Wins*100000 + float64(o.Spread)
}

func (s *RatingService) record(report domain.TournamentReport) {
	for _, section := range report.Sections {
		for _, p := range section.Players {
			key := normalize.Name(p.Name)
			s.history[key] = append(s.history[key], domain.HistoryEntry{
				TournamentID:   report.ID,
				TournamentName: report.Name,
				Date:           report.Date,
				Section:        section.Name,
				Outcome:        p,
			})
		}
	}
}

// ResetHistory forgets every rated tournament, in memory and in the store.
// A rerating run calls it so that reports are not stored twice.
func (s *RatingService) ResetHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = make(map[string][]domain.HistoryEntry)
	s.lastDate = time.Time{}
	if s.store == nil {
		return nil
	}
	return s.store.DeleteTournaments(ctx)
}

// History returns the per-tournament trail of one player, oldest first.
func (s *RatingService) History(ctx context.Context, name string) ([]domain.HistoryEntry, error) {
	if s.store != nil {
		return s.store.PlayerHistory(ctx, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.history[normalize.Name(name)]
	out := make([]domain.HistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *RatingService) Tournaments(ctx context.Context) ([]domain.TournamentReport, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.ListTournaments(ctx)
}

func (s *RatingService) Tournament(ctx context.Context, id uuid.UUID) (domain.TournamentReport, error) {
	if s.store == nil {
		return domain.TournamentReport{}, storage.ErrNotFound
	}
	return s.store.GetTournament(ctx, id)
}

type multierr interface {
	Unwrap() []error
}

func unwrap(err error) []error {
	var merr multierr
	if errors.As(err, &merr) {
		var errs []error
		for _, err := range merr.Unwrap() {
			errs = append(errs, unwrap(err)...)
		}
		return errs
	}
	return []error{err}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
