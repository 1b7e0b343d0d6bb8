package results

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goserg/spreadrating/internal/domain"
	"github.com/goserg/spreadrating/internal/normalize"

	mapset "github.com/deckarep/golang-set/v2"
)

// DefaultByeNames are the placeholder names used for byes in historical
// results files.
var DefaultByeNames = []string{
	"Bye", "A Bye", "B Bye", "Y Bye", "Z Bye", "Yy Bye", "Zy Bye", "Zz Bye",
	"Bye One", "Bye Two", "Bye Three", "Bye Four",
}

// Record is one player's half of one game. Opponent is either the 1-based
// position of the opponent in the section or its name.
type Record struct {
	Line     int
	Section  string
	Round    int
	Player   string
	Opponent string
	Score    int
}

type SectionInput struct {
	Name    string
	Records []Record
}

// Tournament is the raw input of one event.
type Tournament struct {
	Name     string
	Date     time.Time
	Sections []SectionInput
}

// Group splits records into sections, keeping the order of first appearance.
func Group(records []Record) []SectionInput {
	var sections []SectionInput
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.Section]
		if !ok {
			i = len(sections)
			index[r.Section] = i
			sections = append(sections, SectionInput{Name: r.Section})
		}
		sections[i].Records = append(sections[i].Records, r)
	}
	return sections
}

// Builder turns raw records into sections. Bye detection happens here, once.
type Builder struct {
	byes mapset.Set[string]
}

func NewBuilder(byeNames []string) *Builder {
	byes := mapset.NewSet[string]()
	for _, name := range byeNames {
		byes.Add(normalize.Name(name))
	}
	return &Builder{byes: byes}
}

func (b *Builder) IsBye(name string) bool {
	return b.byes.Contains(normalize.Name(name))
}

type participant struct {
	name   string
	bye    bool
	id     domain.PlayerID
	rounds map[int]Record
}

// Build resolves opponents and pairs both halves of every game. Records must
// be symmetric: if A reports a game against B in round 3, B must report one
// against A in round 3.
func (b *Builder) Build(in SectionInput) (*domain.Section, error) {
	var participants []*participant
	byName := make(map[string]*participant)
	for _, r := range in.Records {
		name := strings.TrimSpace(r.Player)
		if name == "" {
			return nil, &RecordError{Line: r.Line, Section: in.Name, Round: r.Round, Err: ErrEmptyName}
		}
		if r.Round <= 0 {
			return nil, &RecordError{Line: r.Line, Section: in.Name, Player: name, Round: r.Round, Err: ErrBadRound}
		}
		key := normalize.Name(name)
		p, ok := byName[key]
		if !ok {
			p = &participant{name: name, bye: b.IsBye(name), rounds: make(map[int]Record)}
			byName[key] = p
			participants = append(participants, p)
		}
		if _, dup := p.rounds[r.Round]; dup {
			return nil, &RecordError{Line: r.Line, Section: in.Name, Player: name, Round: r.Round, Err: ErrDuplicateRound}
		}
		p.rounds[r.Round] = r
	}

	section := &domain.Section{Name: in.Name}
	for _, p := range participants {
		if p.bye {
			continue
		}
		p.id = domain.PlayerID(len(section.Players))
		section.Players = append(section.Players, domain.Player{ID: p.id, Name: p.name})
	}

	for _, p := range participants {
		if p.bye {
			continue
		}
		rounds := make([]int, 0, len(p.rounds))
		for round := range p.rounds {
			rounds = append(rounds, round)
		}
		sort.Ints(rounds)

		player := section.Player(p.id)
		for _, round := range rounds {
			g, err := b.game(in.Name, p, p.rounds[round], participants, byName)
			if err != nil {
				return nil, err
			}
			player.Games = append(player.Games, g)
		}
	}
	return section, nil
}

func (b *Builder) game(section string, p *participant, r Record, participants []*participant, byName map[string]*participant) (domain.GameResult, error) {
	g := domain.GameResult{Round: r.Round, Opponent: p.id, Score: r.Score}
	ref := strings.TrimSpace(r.Opponent)

	var opponent *participant
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(participants) {
			return g, &UnknownOpponentError{Section: section, Player: p.name, Round: r.Round, Ref: ref}
		}
		opponent = participants[n-1]
	} else {
		opponent = byName[normalize.Name(ref)]
		if opponent == nil {
			if ref == "" || b.IsBye(ref) {
				g.IsBye = true
				return g, nil
			}
			return g, &UnknownOpponentError{Section: section, Player: p.name, Round: r.Round, Ref: ref}
		}
	}

	switch {
	case opponent == p:
		g.IsBye = true
		return g, nil
	case opponent.bye:
		g.IsBye = true
		if other, ok := opponent.rounds[r.Round]; ok {
			g.OpponentScore = other.Score
		}
		return g, nil
	}

	other, ok := opponent.rounds[r.Round]
	if !ok || !b.pointsAt(other, p, participants) {
		return g, &RecordError{Line: r.Line, Section: section, Player: p.name, Round: r.Round, Err: ErrNoCounterpart}
	}
	g.Opponent = opponent.id
	g.OpponentScore = other.Score
	return g, nil
}

func (b *Builder) pointsAt(r Record, p *participant, participants []*participant) bool {
	ref := strings.TrimSpace(r.Opponent)
	if n, err := strconv.Atoi(ref); err == nil {
		return n >= 1 && n <= len(participants) && participants[n-1] == p
	}
	return normalize.Name(ref) == normalize.Name(p.name)
}
