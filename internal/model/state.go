package model

import "strings"

type SideCounts struct {
	Red   int `json:"red"`
	White int `json:"white"`
}

type GameState struct {
	Board       []string   `json:"board"`
	Pieces      []Piece    `json:"pieces"`
	Left        SideCounts `json:"left"`
	Kings       SideCounts `json:"kings"`
	ToMove      Side       `json:"toMove"`
	Difficulty  string     `json:"difficulty"`
	Depth       int        `json:"depth"`
	Winner      Outcome    `json:"winner"`
	LastMove    *Move      `json:"lastMove"`    // nil before the first move
	EngineScore *float64   `json:"engineScore"` // nil until the engine has moved
	Players     struct {
		Red   ClientPlayer `json:"red"`
		White ClientPlayer `json:"white"`
	} `json:"players"`
}

// MoveRequest is a move submitted by a client.
type MoveRequest struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// NewBoardState snapshots board for clients.
func NewBoardState(board *Board) ([]string, []Piece) {
	pieces := make([]Piece, 0, board.Left(Red)+board.Left(White))
	for _, side := range []Side{Red, White} {
		for _, p := range board.Pieces(side) {
			pieces = append(pieces, *p)
		}
	}
	return strings.Split(board.String(), "\n"), pieces
}
