package rating

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goserg/spreadrating/internal/domain"

	"github.com/sirupsen/logrus"
)

// Calculator rates the players of a section from game spreads.
type Calculator struct {
	cfg Config
	log *logrus.Entry
}

func New(l *logrus.Logger, cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{
		cfg: cfg,
		log: l.WithFields(map[string]interface{}{
			"from": "rating",
		}),
	}, nil
}

func (c *Calculator) Config() Config {
	return c.cfg
}

// RateSection seeds the unrated players, then rates every player that was
// rated before the tournament. Numeric problems are joined into the returned
// error; they never stop the rest of the section from being rated.
func (c *Calculator) RateSection(s *domain.Section) error {
	rated := s.Rated()
	_, seedErr := c.SeedUnrated(s)
	errs := []error{seedErr}
	for _, id := range rated {
		if err := c.Rate(s, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SeedUnrated iterates the single-player update over the unrated players of
// a section until their ratings stop moving or MaxIterations is reached.
// After each pass a player's new rating becomes its prior for the next pass;
// the prior deviation is left as it is. It returns the number of passes.
func (c *Calculator) SeedUnrated(s *domain.Section) (int, error) {
	unrated := s.Unrated()
	if len(unrated) == 0 {
		return 0, nil
	}
	average := c.ratedAverage(s)
	failed := make(map[domain.PlayerID]error)

	iterations := 0
	converged := false
	for !converged && iterations < c.cfg.MaxIterations {
		converged = true
		for _, id := range unrated {
			if _, ok := failed[id]; ok {
				continue
			}
			p := s.Player(id)
			previous := p.PriorRating
			c.reseed(s, p, average)
			if err := c.Rate(s, id); err != nil {
				failed[id] = err
				continue
			}
			if math.Abs(previous-float64(p.NewRating)) >= c.cfg.Epsilon {
				converged = false
			}
			p.PriorRating = float64(p.NewRating)
		}
		iterations++
	}
	if !converged {
		c.log.WithFields(logrus.Fields{
			"section":    s.Name,
			"iterations": iterations,
		}).Debug("seeding stopped before convergence")
	}

	errs := make([]error, 0, len(failed))
	for _, id := range unrated {
		if err, ok := failed[id]; ok {
			errs = append(errs, err)
		}
	}
	return iterations, errors.Join(errs...)
}

// ratedAverage is the mean prior rating of the rated players, or the manual
// seed if there are none or the mean is below the rating floor.
func (c *Calculator) ratedAverage(s *domain.Section) float64 {
	rated := s.Rated()
	if len(rated) == 0 {
		return c.cfg.InitialRating
	}
	var sum float64
	for _, id := range rated {
		sum += s.Player(id).PriorRating
	}
	average := sum / float64(len(rated))
	if average < c.cfg.RatingFloor {
		return c.cfg.InitialRating
	}
	return average
}

// reseed resets p to the rated average when too many of its opponents are
// unrated themselves.
func (c *Calculator) reseed(s *domain.Section, p *domain.Player, average float64) bool {
	opponents := p.Opponents()
	if len(opponents) == 0 {
		return false
	}
	unrated := 0
	for _, id := range opponents {
		if o := s.Player(id); o != nil && o.Unrated {
			unrated++
		}
	}
	if float64(unrated)/float64(len(opponents)) < c.cfg.UnratedShare {
		return false
	}
	p.PriorRating = average
	return true
}

// Rate computes NewRating and NewDeviation of one player from the prior
// ratings of its opponents.
func (c *Calculator) Rate(s *domain.Section, id domain.PlayerID) error {
	p := s.Player(id)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	mu := p.PriorRating
	sigma := p.PriorDeviation
	if !(sigma > 0) || math.IsInf(sigma, 0) || math.IsNaN(mu) {
		p.NewRating = c.floor(mu)
		p.NewDeviation = c.cfg.MaxDeviation
		return &NumericError{
			Player:         p.Name,
			Reason:         "prior deviation must be a positive number",
			PriorRating:    mu,
			PriorDeviation: sigma,
		}
	}

	baseVariance := c.cfg.Beta * c.cfg.Beta * c.cfg.Tau * c.cfg.Tau
	var sum1, sum2 float64
	games := 0
	for _, g := range p.Games {
		if !g.Rated(p.ID) {
			continue
		}
		o := s.Player(g.Opponent)
		if o == nil {
			return fmt.Errorf("%w: opponent %d of %q in round %d", ErrUnknownPlayer, g.Opponent, p.Name, g.Round)
		}
		rho := baseVariance + o.PriorDeviation*o.PriorDeviation
		nu := o.PriorRating + c.cfg.Beta*float64(g.Spread())
		sum1 += 1 / rho
		sum2 += nu / rho
		games++
	}
	if games == 0 {
		p.NewRating = c.floor(mu)
		p.NewDeviation = sigma
		return nil
	}

	variance := sigma * sigma
	sigmaPrime := 1 / (1/variance + sum1)
	if !(sigmaPrime > 0) || math.IsInf(sigmaPrime, 0) {
		p.NewRating = c.floor(mu)
		p.NewDeviation = sigma
		return &NumericError{
			Player:         p.Name,
			Reason:         "effective variance is not positive",
			PriorRating:    mu,
			PriorDeviation: sigma,
			SigmaPrime:     sigmaPrime,
			Games:          games,
		}
	}
	muPrime := sigmaPrime * (mu/variance + sum2)
	delta := muPrime - mu
	adjusted := mu + delta*c.Multiplier(p)
	if math.IsNaN(adjusted) || math.IsInf(adjusted, 0) {
		p.NewRating = c.floor(mu)
		p.NewDeviation = sigma
		return &NumericError{
			Player:         p.Name,
			Reason:         "rating update is not a finite number",
			PriorRating:    mu,
			PriorDeviation: sigma,
			SigmaPrime:     sigmaPrime,
			Games:          games,
		}
	}

	p.NewRating = c.floor(adjusted)
	p.NewDeviation = math.Round(math.Sqrt(sigmaPrime)*100) / 100
	return nil
}

func (c *Calculator) floor(r float64) int {
	return int(math.Max(math.RoundToEven(r), c.cfg.RatingFloor))
}

// Multiplier dampens the update for strong and for experienced players.
func (c *Calculator) Multiplier(p *domain.Player) float64 {
	multiplier := 1.0
	switch {
	case p.PriorRating > 2000:
		multiplier = 0.5
	case p.PriorRating > 1800:
		multiplier = 0.75
	}

	switch g := p.CareerGames; {
	case g < 200:
		multiplier = 1.0
	case g > 1000:
		multiplier = 0.5
	case g > 100:
		multiplier = math.Min(multiplier, 1.0-float64(g)/1800)
	}
	return multiplier
}

// AdjustForInactivity widens the prior deviation of a rated player by the
// time since it last played. Unrated players are left alone.
func (c *Calculator) AdjustForInactivity(p *domain.Player, date time.Time) {
	if p.Unrated {
		return
	}
	if p.LastPlayed.IsZero() || !(p.PriorDeviation > 0) {
		p.PriorDeviation = c.cfg.MaxDeviation
		return
	}
	days := InactiveDays(p.LastPlayed, date)
	if days < 0 {
		c.log.WithFields(logrus.Fields{
			"player":      p.Name,
			"last_played": p.LastPlayed.Format(time.DateOnly),
			"date":        date.Format(time.DateOnly),
		}).Warn("tournament is older than the player's last game")
		days = 0
	}
	deviation := math.Sqrt(p.PriorDeviation*p.PriorDeviation + c.cfg.InactivityVariance*float64(days))
	p.PriorDeviation = math.Min(deviation, c.cfg.MaxDeviation)
}

// InactiveDays counts calendar days between two dates, ignoring the time of
// day.
func InactiveDays(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(math.Round(b.Sub(a).Hours() / 24))
}
