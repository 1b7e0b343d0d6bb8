package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/goserg/spreadrating/internal/domain"
	"github.com/goserg/spreadrating/internal/normalize"

	mapset "github.com/deckarep/golang-set/v2"
)

// UnratedSentinel is the rating below which a loaded entry is treated as not
// really rated.
const UnratedSentinel = 100

// Registry is the carry-forward store: the latest rating state of every
// player seen so far, keyed by normalized name. Entries are never removed.
type Registry struct {
	mu            sync.RWMutex
	initialRating int
	maxDeviation  float64
	players       map[string]domain.RatingState
	removed       mapset.Set[string]
}

func New(initialRating int, maxDeviation float64) *Registry {
	return &Registry{
		initialRating: initialRating,
		maxDeviation:  maxDeviation,
		players:       make(map[string]domain.RatingState),
		removed:       mapset.NewSet[string](),
	}
}

// Load adds a snapshot to the registry. A missing deviation becomes the
// maximum deviation; a rating below UnratedSentinel marks the player unrated.
func (r *Registry) Load(states []domain.RatingState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, state := range states {
		if state.Rating < UnratedSentinel {
			state.Rating = r.initialRating
			state.Unrated = true
		}
		r.players[normalize.Name(state.Name)] = r.clamp(state)
	}
}

func (r *Registry) clamp(state domain.RatingState) domain.RatingState {
	if !(state.Deviation > 0) || state.Deviation > r.maxDeviation {
		state.Deviation = r.maxDeviation
	}
	return state
}

func (r *Registry) Get(name string) (domain.RatingState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.players[normalize.Name(name)]
	return state, ok
}

// Lookup returns the entry for name, or a fresh unrated state if the name has
// never been seen. The fresh state is not inserted.
func (r *Registry) Lookup(name string) (domain.RatingState, bool) {
	if state, ok := r.Get(name); ok {
		return state, true
	}
	return domain.RatingState{
		Name:      name,
		Rating:    r.initialRating,
		Deviation: r.maxDeviation,
		Unrated:   true,
	}, false
}

// Update overwrites or inserts the entry. The display name of an existing
// entry is kept and the career game count never goes down.
func (r *Registry) Update(state domain.RatingState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalize.Name(state.Name)
	if old, ok := r.players[key]; ok {
		state.Name = old.Name
		if state.CareerGames < old.CareerGames {
			state.CareerGames = old.CareerGames
		}
		if old.LastPlayed.After(state.LastPlayed) {
			state.LastPlayed = old.LastPlayed
		}
	}
	r.players[key] = r.clamp(state)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// Ranked returns all entries, highest rating first.
func (r *Registry) Ranked() []domain.RatingState {
	r.mu.RLock()
	players := make([]domain.RatingState, 0, len(r.players))
	for _, player := range r.players {
		players = append(players, player)
	}
	r.mu.RUnlock()

	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Rating != players[j].Rating {
			return players[i].Rating > players[j].Rating
		}
		return players[i].Name < players[j].Name
	})
	return players
}

// Exclude keeps the named players off the active list. Their ratings are
// still carried and ranked.
func (r *Registry) Exclude(names ...string) {
	for _, name := range names {
		r.removed.Add(normalize.Name(name))
	}
}

// Active returns the ranked entries that played within window before asOf,
// excluded players left out.
func (r *Registry) Active(asOf time.Time, window time.Duration) []domain.RatingState {
	threshold := asOf.Add(-window)
	var active []domain.RatingState
	for _, player := range r.Ranked() {
		if r.removed.Contains(normalize.Name(player.Name)) {
			continue
		}
		if player.LastPlayed.After(threshold) {
			active = append(active, player)
		}
	}
	return active
}

// Histogram counts rated players per rating bin of the given width, keyed by
// the lower bound of the bin.
func (r *Registry) Histogram(interval int) map[int]int {
	bins := make(map[int]int)
	if interval <= 0 {
		return bins
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, player := range r.players {
		if player.Unrated {
			continue
		}
		bins[interval*(player.Rating/interval)]++
	}
	return bins
}
