package model

import (
	"fmt"
	"strings"
)

const (
	Rows = 8
	Cols = 8
)

type Side string

const (
	Red   Side = "red"
	White Side = "white"
)

func (s Side) Opponent() Side {
	if s == Red {
		return White
	}
	return Red
}

// forward is the row step a man of this side moves by.
func (s Side) forward() int {
	if s == Red {
		return -1
	}
	return 1
}

// backRank is the row where this side's men are promoted.
func (s Side) backRank() int {
	if s == Red {
		return 0
	}
	return Rows - 1
}

type Outcome string

const (
	NoWinner  Outcome = ""
	RedWins   Outcome = "red"
	WhiteWins Outcome = "white"
)

type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) inBounds() bool {
	return s.Row >= 0 && s.Row < Rows && s.Col >= 0 && s.Col < Cols
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

type Piece struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Side Side `json:"side"`
	King bool `json:"king"`
}

func (p *Piece) Square() Square {
	return Square{Row: p.Row, Col: p.Col}
}

type Board struct {
	grid       [Rows][Cols]*Piece
	redLeft    int
	whiteLeft  int
	redKings   int
	whiteKings int
}

func NewBoard() *Board {
	b := &Board{}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if (row+col)%2 == 0 {
				continue
			}
			switch {
			case row < 3:
				b.grid[row][col] = &Piece{Row: row, Col: col, Side: White}
				b.whiteLeft++
			case row > 4:
				b.grid[row][col] = &Piece{Row: row, Col: col, Side: Red}
				b.redLeft++
			}
		}
	}
	return b
}

// Piece returns the occupant of (row, col) or nil. Out of range coordinates panic.
func (b *Board) Piece(row, col int) *Piece {
	return b.grid[row][col]
}

// Pieces lists the live pieces of side in row-major order.
func (b *Board) Pieces(side Side) []*Piece {
	pieces := []*Piece{}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if p := b.grid[row][col]; p != nil && p.Side == side {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

func (b *Board) Left(side Side) int {
	if side == Red {
		return b.redLeft
	}
	return b.whiteLeft
}

func (b *Board) Kings(side Side) int {
	if side == Red {
		return b.redKings
	}
	return b.whiteKings
}

func (b *Board) Winner() Outcome {
	if b.redLeft <= 0 {
		return WhiteWins
	}
	if b.whiteLeft <= 0 {
		return RedWins
	}
	return NoWinner
}

// Move relocates piece to (row, col) and promotes a man reaching its back rank.
// Captured pieces are not removed here, see Remove.
func (b *Board) Move(piece *Piece, row, col int) {
	b.grid[piece.Row][piece.Col], b.grid[row][col] = b.grid[row][col], b.grid[piece.Row][piece.Col]
	piece.Row = row
	piece.Col = col

	if !piece.King && row == piece.Side.backRank() {
		piece.King = true
		b.addKings(piece.Side, 1)
	}
}

func (b *Board) Remove(squares ...Square) {
	for _, sq := range squares {
		piece := b.grid[sq.Row][sq.Col]
		if piece == nil {
			continue
		}
		b.grid[sq.Row][sq.Col] = nil
		if piece.Side == Red {
			b.redLeft--
		} else {
			b.whiteLeft--
		}
		if piece.King {
			b.addKings(piece.Side, -1)
		}
	}
}

func (b *Board) addKings(side Side, n int) {
	if side == Red {
		b.redKings += n
	} else {
		b.whiteKings += n
	}
}

// Clone returns a deep copy; no piece is shared with b.
func (b *Board) Clone() *Board {
	c := &Board{
		redLeft:    b.redLeft,
		whiteLeft:  b.whiteLeft,
		redKings:   b.redKings,
		whiteKings: b.whiteKings,
	}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if p := b.grid[row][col]; p != nil {
				cp := *p
				c.grid[row][col] = &cp
			}
		}
	}
	return c
}

// String renders one line per row: r/w for men, R/W for kings, '.' for empty.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			sb.WriteByte(pieceRune(b.grid[row][col]))
		}
		if row < Rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func pieceRune(p *Piece) byte {
	switch {
	case p == nil:
		return '.'
	case p.Side == Red && p.King:
		return 'R'
	case p.Side == Red:
		return 'r'
	case p.King:
		return 'W'
	default:
		return 'w'
	}
}

// ParseBoard builds a board from the String form. Pieces on light squares are rejected.
func ParseBoard(rows ...string) (*Board, error) {
	if len(rows) != Rows {
		return nil, fmt.Errorf("expected %d rows, got %d", Rows, len(rows))
	}
	b := &Board{}
	for row, line := range rows {
		if len(line) != Cols {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", row, Cols, len(line))
		}
		for col := 0; col < Cols; col++ {
			var piece *Piece
			switch line[col] {
			case '.':
				continue
			case 'r':
				piece = &Piece{Side: Red}
			case 'R':
				piece = &Piece{Side: Red, King: true}
			case 'w':
				piece = &Piece{Side: White}
			case 'W':
				piece = &Piece{Side: White, King: true}
			default:
				return nil, fmt.Errorf("row %d col %d: unknown piece %q", row, col, line[col])
			}
			if (row+col)%2 == 0 {
				return nil, fmt.Errorf("row %d col %d: piece on a light square", row, col)
			}
			piece.Row, piece.Col = row, col
			b.grid[row][col] = piece
			if piece.Side == Red {
				b.redLeft++
			} else {
				b.whiteLeft++
			}
			if piece.King {
				b.addKings(piece.Side, 1)
			}
		}
	}
	return b, nil
}
