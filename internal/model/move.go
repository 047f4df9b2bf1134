package model

// Move is one legal ply: a destination plus the ordered squares of the pieces it captures.
// A move with no captures is a simple step.
type Move struct {
	From     Square   `json:"from"`
	To       Square   `json:"to"`
	Captures []Square `json:"captures"`
}

func (m Move) IsCapture() bool {
	return len(m.Captures) > 0
}

type direction struct {
	dRow, dCol int
}

func (p *Piece) directions() []direction {
	dirs := []direction{}
	if p.Side == Red || p.King {
		dirs = append(dirs, direction{-1, -1}, direction{-1, 1})
	}
	if p.Side == White || p.King {
		dirs = append(dirs, direction{1, -1}, direction{1, 1})
	}
	return dirs
}

// moveSet keeps moves in discovery order with unique destinations.
// A later move to an already known destination replaces it in place.
type moveSet struct {
	moves []Move
	index map[Square]int
}

func (s *moveSet) add(moves ...Move) {
	if s.index == nil {
		s.index = make(map[Square]int)
	}
	for _, m := range moves {
		if i, ok := s.index[m.To]; ok {
			s.moves[i] = m
			continue
		}
		s.index[m.To] = len(s.moves)
		s.moves = append(s.moves, m)
	}
}

// ValidMoves returns every destination piece can reach this ply, keyed to the
// pieces captured on the way. Jump chains are followed to their end.
func (b *Board) ValidMoves(piece *Piece) []Move {
	var set moveSet
	origin := piece.Square()
	for _, dir := range piece.directions() {
		set.add(b.walk(origin, origin, dir, piece.Side, nil)...)
	}
	if set.moves == nil {
		return []Move{}
	}
	return set.moves
}

// HasMoves reports whether side has at least one legal move.
func (b *Board) HasMoves(side Side) bool {
	for _, p := range b.Pieces(side) {
		if len(b.ValidMoves(p)) > 0 {
			return true
		}
	}
	return false
}

// walk looks at most two squares along dir from the square at. captured holds
// the pieces already jumped in this chain and is never mutated.
func (b *Board) walk(origin, at Square, dir direction, side Side, captured []Square) []Move {
	next := Square{Row: at.Row + dir.dRow, Col: at.Col + dir.dCol}
	if !next.inBounds() {
		return nil
	}

	occupant := b.grid[next.Row][next.Col]
	if occupant == nil {
		// a jump chain never continues with a plain step
		if len(captured) > 0 {
			return nil
		}
		return []Move{{From: origin, To: next, Captures: []Square{}}}
	}
	if occupant.Side == side {
		return nil
	}

	landing := Square{Row: next.Row + dir.dRow, Col: next.Col + dir.dCol}
	if !landing.inBounds() || b.grid[landing.Row][landing.Col] != nil {
		return nil
	}

	chain := make([]Square, 0, len(captured)+1)
	chain = append(chain, captured...)
	chain = append(chain, next)

	var continuations moveSet
	for _, dCol := range []int{-1, 1} {
		continuations.add(b.walk(origin, landing, direction{dir.dRow, dCol}, side, chain)...)
	}
	if len(continuations.moves) > 0 {
		return continuations.moves
	}
	return []Move{{From: origin, To: landing, Captures: chain}}
}
