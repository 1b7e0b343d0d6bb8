package storage

import (
	"context"
	"errors"

	"github.com/goserg/spreadrating/internal/domain"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type RatingStorage interface {
	ListRatings(ctx context.Context) ([]domain.RatingState, error)
	// SaveRatings replaces the stored snapshot.
	SaveRatings(ctx context.Context, states []domain.RatingState) error
}

type TournamentStorage interface {
	SaveTournament(ctx context.Context, report domain.TournamentReport) error
	// ListTournaments returns reports without their sections, oldest first.
	ListTournaments(ctx context.Context) ([]domain.TournamentReport, error)
	GetTournament(ctx context.Context, id uuid.UUID) (domain.TournamentReport, error)
	PlayerHistory(ctx context.Context, name string) ([]domain.HistoryEntry, error)
	// DeleteTournaments removes every stored report and its results.
	DeleteTournaments(ctx context.Context) error
}

type Storage interface {
	RatingStorage
	TournamentStorage
	Close() error
}
