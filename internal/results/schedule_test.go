package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSchedule(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spring.csv"), []byte(fourPlayers), 0o600))

	entries, err := ReadSchedule(strings.NewReader(`name,date,results_file
Spring Open,2024-03-02,spring.csv
`), dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ScheduleEntry{
		Name: "Spring Open",
		Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		File: filepath.Join(dir, "spring.csv"),
	}, entries[0])

	tournaments, err := Load(entries)
	require.NoError(t, err)
	require.Len(t, tournaments, 1)
	assert.Equal(t, "Spring Open", tournaments[0].Name)
	require.Len(t, tournaments[0].Sections, 1)
	assert.Len(t, tournaments[0].Sections[0].Records, 12)
}

func TestReadSchedule_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "bad header", input: "tournament,when\n"},
		{name: "bad date", input: "name,date,results_file\nX,not a date,x.csv\n"},
		{name: "no file", input: "name,date,results_file\nX,2024-01-01,\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSchedule(strings.NewReader(tt.input), ".")
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("x", time.Now(), filepath.Join(t.TempDir(), "none.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
