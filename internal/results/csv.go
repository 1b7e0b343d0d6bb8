package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrUnknownFormat = errors.New("results header is neither a records nor a games header")

// ReadCSV reads a delimited results file. Two layouts are accepted, told
// apart by the header:
//
//	section,round,player,opponent,score    one row per player and round
//	[submitted,]round,winner,score,opponent,score    one row per game
//
// The games layout has no sections; every game goes to section "".
func ReadCSV(r io.Reader) ([]Record, error) {
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
	columns := make(map[string]int)
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}

	_, hasPlayer := columns["player"]
	_, hasWinner := columns["winner"]
	switch {
	case hasPlayer:
		return readRecords(reader, columns)
	case hasWinner:
		return readGames(reader, columns)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, header)
}

type row struct {
	line   int
	fields []string
}

func (r row) get(i int) string {
	if i < 0 || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r row) atoi(i int, what string, rec Record) (int, error) {
	n, err := strconv.Atoi(r.get(i))
	if err != nil {
		return 0, &RecordError{Line: r.line, Section: rec.Section, Player: rec.Player, Round: rec.Round, Err: fmt.Errorf("%s: %w", what, err)}
	}
	return n, nil
}

func rows(reader *csv.Reader, fn func(r row) error) error {
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line, _ := reader.FieldPos(0)
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}
		if err := fn(row{line: line, fields: fields}); err != nil {
			return err
		}
	}
}

func column(columns map[string]int, name string) int {
	if i, ok := columns[name]; ok {
		return i
	}
	return -1
}

func readRecords(reader *csv.Reader, columns map[string]int) ([]Record, error) {
	section := column(columns, "section")
	round := column(columns, "round")
	player := column(columns, "player")
	opponent := column(columns, "opponent")
	score := column(columns, "score")

	var records []Record
	err := rows(reader, func(r row) error {
		rec := Record{
			Line:     r.line,
			Section:  r.get(section),
			Player:   r.get(player),
			Opponent: r.get(opponent),
		}
		var err error
		if rec.Round, err = r.atoi(round, "round", rec); err != nil {
			return err
		}
		if rec.Score, err = r.atoi(score, "score", rec); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	return records, err
}

// readGames expands one row per game into the two halves of the game. The
// two score columns are the first and second "score" headers.
func readGames(reader *csv.Reader, columns map[string]int) ([]Record, error) {
	round := column(columns, "round")
	winner := column(columns, "winner")
	opponent := column(columns, "opponent")
	winnerScore := winner + 1
	opponentScore := opponent + 1

	var records []Record
	err := rows(reader, func(r row) error {
		a := Record{Line: r.line, Player: r.get(winner), Opponent: r.get(opponent)}
		b := Record{Line: r.line, Player: r.get(opponent), Opponent: r.get(winner)}
		var err error
		if a.Round, err = r.atoi(round, "round", a); err != nil {
			return err
		}
		b.Round = a.Round
		if a.Score, err = r.atoi(winnerScore, "score", a); err != nil {
			return err
		}
		if b.Score, err = r.atoi(opponentScore, "opponent score", a); err != nil {
			return err
		}
		records = append(records, a, b)
		return nil
	})
	return records, err
}
