package rating

import "errors"

// Config holds the tuning of one calculator. Values are copied into the
// Calculator, so several calculators with different tuning can run side by
// side.
type Config struct {
	// Tau is the per-game performance uncertainty, in points of spread.
	Tau float64 `toml:"tau"`
	// Beta is rating points per point of spread.
	Beta         float64 `toml:"beta"`
	MaxDeviation float64 `toml:"max_deviation"`
	// InitialRating is the rating of a new player and the manual seed used
	// when a section has no usable rated average.
	InitialRating float64 `toml:"initial_rating"`
	RatingFloor   float64 `toml:"rating_floor"`
	MaxIterations int     `toml:"max_iterations"`
	Epsilon       float64 `toml:"epsilon"`
	// UnratedShare is the share of unrated opponents at which an unrated
	// player is reseeded to the rated average.
	UnratedShare float64 `toml:"unrated_share"`
	// InactivityVariance is added to the squared deviation per inactive day.
	InactivityVariance float64 `toml:"inactivity_variance"`
}

const (
	DefaultTau                = 90
	DefaultBeta               = 5.0
	DefaultMaxDeviation       = 150.0
	DefaultInitialRating      = 1500
	DefaultRatingFloor        = 300
	DefaultMaxIterations      = 50
	DefaultEpsilon            = 0.0001
	DefaultUnratedShare       = 0.4
	DefaultInactivityVariance = 100
)

func DefaultConfig() Config {
	return Config{
		Tau:                DefaultTau,
		Beta:               DefaultBeta,
		MaxDeviation:       DefaultMaxDeviation,
		InitialRating:      DefaultInitialRating,
		RatingFloor:        DefaultRatingFloor,
		MaxIterations:      DefaultMaxIterations,
		Epsilon:            DefaultEpsilon,
		UnratedShare:       DefaultUnratedShare,
		InactivityVariance: DefaultInactivityVariance,
	}
}

var (
	ErrInvalidTau          = errors.New("tau must be positive")
	ErrInvalidBeta         = errors.New("beta must be positive")
	ErrInvalidMaxDeviation = errors.New("max deviation must be positive")
	ErrInvalidIterations   = errors.New("max iterations must be positive")
	ErrInvalidShare        = errors.New("unrated share must be in (0, 1]")
)

func (c Config) Validate() error {
	switch {
	case c.Tau <= 0:
		return ErrInvalidTau
	case c.Beta <= 0:
		return ErrInvalidBeta
	case c.MaxDeviation <= 0:
		return ErrInvalidMaxDeviation
	case c.MaxIterations <= 0:
		return ErrInvalidIterations
	case c.UnratedShare <= 0 || c.UnratedShare > 1:
		return ErrInvalidShare
	}
	return nil
}
