package registry

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goserg/spreadrating/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRegistry_Load(t *testing.T) {
	r := New(1500, 150)
	r.Load([]domain.RatingState{
		{Name: "Alice Smith", Rating: 1712, Deviation: 80.5, CareerGames: 300, LastPlayed: date(2023, 4, 1)},
		{Name: "Bob", Rating: 42, Deviation: 90, CareerGames: 3},
		{Name: "Carol", Rating: 1400},
		{Name: "Dave", Rating: 1400, Deviation: 400},
	})

	alice, ok := r.Get("alice  smith")
	require.True(t, ok)
	assert.Equal(t, "Alice Smith", alice.Name)
	assert.Equal(t, 1712, alice.Rating)
	assert.False(t, alice.Unrated)

	bob, _ := r.Get("Bob")
	assert.True(t, bob.Unrated)
	assert.Equal(t, 1500, bob.Rating)

	carol, _ := r.Get("carol")
	assert.Equal(t, 150.0, carol.Deviation)
	dave, _ := r.Get("dave")
	assert.Equal(t, 150.0, dave.Deviation)
}

func TestRegistry_LookupDoesNotInsert(t *testing.T) {
	r := New(1500, 150)
	state, ok := r.Lookup("newcomer")
	assert.False(t, ok)
	assert.True(t, state.Unrated)
	assert.Equal(t, 1500, state.Rating)
	assert.Equal(t, 150.0, state.Deviation)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_UpdateKeepsNameAndCareer(t *testing.T) {
	r := New(1500, 150)
	r.Update(domain.RatingState{Name: "Alice", Rating: 1600, Deviation: 100, CareerGames: 20, LastPlayed: date(2024, 1, 1)})
	r.Update(domain.RatingState{Name: "ALICE", Rating: 1620, Deviation: 95, CareerGames: 10, LastPlayed: date(2023, 1, 1)})

	alice, ok := r.Get("alice")
	require.True(t, ok)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 1620, alice.Rating)
	assert.Equal(t, 20, alice.CareerGames)
	assert.Equal(t, date(2024, 1, 1), alice.LastPlayed)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_RankedActiveHistogram(t *testing.T) {
	r := New(1500, 150)
	r.Load([]domain.RatingState{
		{Name: "a", Rating: 1550, LastPlayed: date(2024, 3, 1)},
		{Name: "b", Rating: 1890, LastPlayed: date(2020, 3, 1)},
		{Name: "c", Rating: 1510, LastPlayed: date(2023, 6, 1)},
		{Name: "d", Rating: 0},
	})

	ranked := r.Ranked()
	require.Len(t, ranked, 4)
	assert.Equal(t, "b", ranked[0].Name)
	assert.Equal(t, "a", ranked[1].Name)

	active := r.Active(date(2024, 6, 1), 731*24*time.Hour)
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].Name)
	assert.Equal(t, "c", active[1].Name)

	r.Exclude("  A ")
	active = r.Active(date(2024, 6, 1), 731*24*time.Hour)
	require.Len(t, active, 1)
	assert.Equal(t, "c", active[0].Name)
	assert.Len(t, r.Ranked(), 4)

	assert.Equal(t, map[int]int{1500: 2, 1800: 1}, r.Histogram(100))
	assert.Empty(t, r.Histogram(0))
}

func TestCSV_RoundTrip(t *testing.T) {
	in := `name,rating,deviation,games,last_played
Alice Smith,1712,80.5,300,2023-04-01
Bob,1405,,12,20220915
Carol,0,150,0,
`
	states, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, states, 3)
	assert.Equal(t, date(2023, 4, 1), states[0].LastPlayed)
	assert.Equal(t, 0.0, states[1].Deviation)
	assert.Equal(t, date(2022, 9, 15), states[1].LastPlayed)
	assert.True(t, states[2].LastPlayed.IsZero())

	r := New(1500, 150)
	r.Load(states)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, r.Ranked()))
	assert.Equal(t, `name,rating,deviation,games,last_played
Alice Smith,1712,80.50,300,2023-04-01
Carol,0,150.00,0,
Bob,1405,150.00,12,2022-09-15
`, buf.String())
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("who,what\nx,1\n"))
	assert.ErrorIs(t, err, ErrBadHeader)

	_, err = ReadCSV(strings.NewReader("name,rating\nAlice,abc\n"))
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Line)
	assert.Equal(t, "Alice", rowErr.Name)
}
