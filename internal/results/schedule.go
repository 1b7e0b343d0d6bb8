package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ScheduleEntry names one results file of a rerating run.
type ScheduleEntry struct {
	Name string
	Date time.Time
	File string
}

// ReadSchedule reads a name,date,results_file list. Relative file paths are
// resolved against dir.
func ReadSchedule(r io.Reader, dir string) ([]ScheduleEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	columns := make(map[string]int)
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	name := column(columns, "name")
	date := column(columns, "date")
	file := column(columns, "results_file")
	if name < 0 || date < 0 || file < 0 {
		return nil, fmt.Errorf("schedule header must be name,date,results_file, got %v", header)
	}

	var entries []ScheduleEntry
	err = rows(reader, func(r row) error {
		d, err := dateparse.ParseIn(r.get(date), time.UTC)
		if err != nil {
			return fmt.Errorf("schedule line %d: %w", r.line, err)
		}
		path := r.get(file)
		if path == "" {
			return fmt.Errorf("schedule line %d: empty results file", r.line)
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		entries = append(entries, ScheduleEntry{Name: r.get(name), Date: d, File: path})
		return nil
	})
	return entries, err
}

// LoadFile reads one results file into a tournament.
func LoadFile(name string, date time.Time, path string) (Tournament, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tournament{}, err
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return Tournament{}, fmt.Errorf("%s: %w", path, err)
	}
	return Tournament{Name: name, Date: date, Sections: Group(records)}, nil
}

// Load reads every tournament of a schedule.
func Load(entries []ScheduleEntry) ([]Tournament, error) {
	tournaments := make([]Tournament, 0, len(entries))
	for _, e := range entries {
		t, err := LoadFile(e.Name, e.Date, e.File)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, nil
}
