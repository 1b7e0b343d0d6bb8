package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/goserg/spreadrating/gen/model"
	"github.com/goserg/spreadrating/gen/table"
	"github.com/goserg/spreadrating/internal/domain"
	sqlite3 "github.com/goserg/spreadrating/internal/migrate"
	"github.com/goserg/spreadrating/internal/normalize"
	"github.com/goserg/spreadrating/internal/storage"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// rows per INSERT statement, well below the sqlite variable limit
const batchSize = 200

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.Storage = (*Storage)(nil)

func New(l *logrus.Logger, fileName string) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "rating-storage",
	})
	db, err := sql.Open("sqlite3", buildSource(fileName))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = sqlite3.UpRatingDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, err
	}
	log.WithField("file", fileName).Info("rating storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared&_foreign_keys=on"
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) ListRatings(ctx context.Context) ([]domain.RatingState, error) {
	var players []model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		FROM(table.Players).
		ORDER_BY(table.Players.Rating.DESC(), table.Players.Name.ASC()).
		QueryContext(ctx, s.db, &players)
	if err != nil {
		return nil, err
	}
	return convertPlayersToDomain(players), nil
}

func (s *Storage) SaveRatings(ctx context.Context, states []domain.RatingState) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := table.Players.DELETE().WHERE(sqlite.Bool(true)).ExecContext(ctx, tx)
		if err != nil {
			return err
		}
		players := convertPlayersFromDomain(states)
		for start := 0; start < len(players); start += batchSize {
			end := min(start+batchSize, len(players))
			_, err = table.Players.
				INSERT(table.Players.AllColumns).
				MODELS(players[start:end]).
				ExecContext(ctx, tx)
			if err != nil {
				return err
			}
		}
		s.log.WithField("players", len(players)).Debug("ratings saved")
		return nil
	})
}

func (s *Storage) SaveTournament(ctx context.Context, report domain.TournamentReport) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := table.Tournaments.
			INSERT(table.Tournaments.AllColumns).
			MODEL(convertTournamentFromDomain(report)).
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
		results := convertResultsFromDomain(report)
		for start := 0; start < len(results); start += batchSize {
			end := min(start+batchSize, len(results))
			_, err = table.Results.
				INSERT(table.Results.MutableColumns).
				MODELS(results[start:end]).
				ExecContext(ctx, tx)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Storage) ListTournaments(ctx context.Context) ([]domain.TournamentReport, error) {
	var tournaments []model.Tournaments
	err := table.Tournaments.
		SELECT(table.Tournaments.AllColumns).
		FROM(table.Tournaments).
		ORDER_BY(table.Tournaments.Date.ASC(), table.Tournaments.RatedAt.ASC()).
		QueryContext(ctx, s.db, &tournaments)
	if err != nil {
		return nil, err
	}
	reports := make([]domain.TournamentReport, 0, len(tournaments))
	for _, t := range tournaments {
		report, err := convertTournamentToDomain(t, nil)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *Storage) GetTournament(ctx context.Context, id uuid.UUID) (domain.TournamentReport, error) {
	var dest struct {
		model.Tournaments
		Results []model.Results
	}
	err := table.Tournaments.
		SELECT(
			table.Tournaments.AllColumns,
			table.Results.AllColumns,
		).
		FROM(table.Tournaments.LEFT_JOIN(table.Results, table.Results.TournamentID.EQ(table.Tournaments.ID))).
		WHERE(table.Tournaments.ID.EQ(sqlite.String(id.String()))).
		ORDER_BY(table.Results.ID.ASC()).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.TournamentReport{}, storage.ErrNotFound
		}
		return domain.TournamentReport{}, err
	}
	return convertTournamentToDomain(dest.Tournaments, dest.Results)
}

func (s *Storage) PlayerHistory(ctx context.Context, name string) ([]domain.HistoryEntry, error) {
	var dest []struct {
		model.Results
		Tournament model.Tournaments
	}
	err := table.Results.
		SELECT(
			table.Results.AllColumns,
			table.Tournaments.AllColumns,
		).
		FROM(table.Results.INNER_JOIN(table.Tournaments, table.Tournaments.ID.EQ(table.Results.TournamentID))).
		WHERE(table.Results.PlayerKey.EQ(sqlite.String(normalize.Name(name)))).
		ORDER_BY(table.Tournaments.Date.ASC(), table.Tournaments.RatedAt.ASC()).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		return nil, err
	}
	history := make([]domain.HistoryEntry, 0, len(dest))
	for _, d := range dest {
		id, err := uuid.Parse(d.Tournament.ID)
		if err != nil {
			return nil, err
		}
		history = append(history, domain.HistoryEntry{
			TournamentID:   id,
			TournamentName: d.Tournament.Name,
			Date:           d.Tournament.Date,
			Section:        d.Section,
			Outcome:        convertResultToDomain(d.Results),
		})
	}
	return history, nil
}

func (s *Storage) DeleteTournaments(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := table.Results.DELETE().WHERE(sqlite.Bool(true)).ExecContext(ctx, tx); err != nil {
			return err
		}
		res, err := table.Tournaments.DELETE().WHERE(sqlite.Bool(true)).ExecContext(ctx, tx)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		s.log.WithField("tournaments", n).Info("tournaments deleted")
		return nil
	})
}

func (s *Storage) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.WithError(rbErr).Error("rollback failed")
		}
		return err
	}
	return tx.Commit()
}

func joinProblems(problems []string) string {
	return strings.Join(problems, "\n")
}

func splitProblems(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
