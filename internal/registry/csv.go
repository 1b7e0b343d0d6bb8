package registry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/goserg/spreadrating/internal/domain"

	"github.com/araddon/dateparse"
)

var snapshotHeader = []string{"name", "rating", "deviation", "games", "last_played"}

var ErrBadHeader = errors.New("unexpected ratings header")

// RowError points at the offending line of a ratings file.
type RowError struct {
	Line int
	Name string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("ratings line %d (%q): %v", e.Line, e.Name, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ReadCSV reads a ratings snapshot. Deviation and last played date may be
// empty.
func ReadCSV(r io.Reader) ([]domain.RatingState, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), snapshotHeader[0]) {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, header)
	}

	var states []domain.RatingState
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		state, err := parseRow(row)
		if err != nil {
			return nil, &RowError{Line: line, Name: row[0], Err: err}
		}
		states = append(states, state)
	}
	return states, nil
}

func parseRow(row []string) (domain.RatingState, error) {
	field := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	state := domain.RatingState{Name: field(0)}
	if state.Name == "" {
		return state, errors.New("empty name")
	}
	rating, err := strconv.ParseFloat(field(1), 64)
	if err != nil {
		return state, fmt.Errorf("rating: %w", err)
	}
	state.Rating = int(rating)
	if s := field(2); s != "" {
		state.Deviation, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return state, fmt.Errorf("deviation: %w", err)
		}
	}
	if s := field(3); s != "" {
		state.CareerGames, err = strconv.Atoi(s)
		if err != nil {
			return state, fmt.Errorf("games: %w", err)
		}
	}
	if s := field(4); s != "" {
		state.LastPlayed, err = ParseDate(s)
		if err != nil {
			return state, fmt.Errorf("last played: %w", err)
		}
	}
	return state, nil
}

// ParseDate accepts the date layouts found in historical rating lists
// (2006-01-02, 20060102, 01/02/2006, ...) and drops the time of day.
func ParseDate(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// WriteCSV writes a snapshot in the format ReadCSV reads. Unrated entries are
// written with a zero rating so they load back as unrated.
func WriteCSV(w io.Writer, states []domain.RatingState) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(snapshotHeader); err != nil {
		return err
	}
	for _, s := range states {
		rating := s.Rating
		if s.Unrated {
			rating = 0
		}
		lastPlayed := ""
		if !s.LastPlayed.IsZero() {
			lastPlayed = s.LastPlayed.Format(time.DateOnly)
		}
		err := writer.Write([]string{
			s.Name,
			strconv.Itoa(rating),
			strconv.FormatFloat(s.Deviation, 'f', 2, 64),
			strconv.Itoa(s.CareerGames),
			lastPlayed,
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
