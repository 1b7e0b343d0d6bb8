package domain

// Section is one rating pool of a tournament. Players are addressed by their
// index, which is also their PlayerID.
type Section struct {
	Name    string
	Players []Player
}

func (s *Section) Player(id PlayerID) *Player {
	if id < 0 || int(id) >= len(s.Players) {
		return nil
	}
	return &s.Players[id]
}

func (s *Section) Rated() []PlayerID {
	return s.filter(func(p *Player) bool { return !p.Unrated })
}

func (s *Section) Unrated() []PlayerID {
	return s.filter(func(p *Player) bool { return p.Unrated })
}

func (s *Section) filter(keep func(p *Player) bool) []PlayerID {
	var ids []PlayerID
	for i := range s.Players {
		if keep(&s.Players[i]) {
			ids = append(ids, PlayerID(i))
		}
	}
	return ids
}
