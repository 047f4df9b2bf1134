package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, rows ...string) *Board {
	t.Helper()
	b, err := ParseBoard(rows...)
	require.NoError(t, err)
	return b
}

// assertCounts checks that the cached counts agree with the grid.
func assertCounts(t *testing.T, b *Board) {
	t.Helper()
	for _, side := range []Side{Red, White} {
		pieces := b.Pieces(side)
		kings := 0
		for _, p := range pieces {
			assert.Equal(t, p, b.Piece(p.Row, p.Col))
			assert.Equal(t, 1, (p.Row+p.Col)%2, "piece on light square %v", p.Square())
			if p.King {
				kings++
			}
		}
		assert.Equal(t, len(pieces), b.Left(side), "%s count", side)
		assert.Equal(t, kings, b.Kings(side), "%s kings", side)
		assert.LessOrEqual(t, b.Kings(side), b.Left(side))
	}
}

func TestNewBoardLayout(t *testing.T) {
	b := NewBoard()

	assert.Equal(t, 12, b.Left(Red))
	assert.Equal(t, 12, b.Left(White))
	assert.Zero(t, b.Kings(Red))
	assert.Zero(t, b.Kings(White))
	assert.Equal(t, NoWinner, b.Winner())
	assertCounts(t, b)

	assert.Equal(t, ""+
		".w.w.w.w\n"+
		"w.w.w.w.\n"+
		".w.w.w.w\n"+
		"........\n"+
		"........\n"+
		"r.r.r.r.\n"+
		".r.r.r.r\n"+
		"r.r.r.r.", b.String())
}

func TestPiecesScanOrder(t *testing.T) {
	b := NewBoard()
	white := b.Pieces(White)
	require.Len(t, white, 12)
	assert.Equal(t, Square{Row: 0, Col: 1}, white[0].Square())
	assert.Equal(t, Square{Row: 2, Col: 7}, white[11].Square())

	red := b.Pieces(Red)
	require.Len(t, red, 12)
	assert.Equal(t, Square{Row: 5, Col: 0}, red[0].Square())
}

func TestPieceOutOfBoundsPanics(t *testing.T) {
	b := NewBoard()
	assert.Nil(t, b.Piece(3, 0))
	assert.Panics(t, func() { b.Piece(8, 0) })
	assert.Panics(t, func() { b.Piece(0, -1) })
}

func TestWinner(t *testing.T) {
	redOnly := mustParse(t,
		"........",
		"........",
		"........",
		"........",
		"........",
		"r.......",
		"........",
		"........",
	)
	assert.Equal(t, RedWins, redOnly.Winner())

	whiteOnly := mustParse(t,
		".w......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	assert.Equal(t, WhiteWins, whiteOnly.Winner())

	b := NewBoard()
	b.Remove(b.Pieces(White)[0].Square())
	assert.Equal(t, NoWinner, b.Winner())
}

func TestMovePromotesOnce(t *testing.T) {
	b := mustParse(t,
		"........",
		"..r.....",
		"........",
		"........",
		"........",
		"........",
		".....w..",
		"........",
	)
	red := b.Piece(1, 2)
	b.Move(red, 0, 1)
	assert.True(t, red.King)
	assert.Equal(t, 1, b.Kings(Red))
	assert.Nil(t, b.Piece(1, 2))
	assert.Equal(t, red, b.Piece(0, 1))

	// a king returning to the back rank is not promoted again
	b.Move(red, 1, 2)
	b.Move(red, 0, 3)
	assert.Equal(t, 1, b.Kings(Red))

	white := b.Piece(6, 5)
	b.Move(white, 7, 4)
	assert.True(t, white.King)
	assert.Equal(t, 1, b.Kings(White))
	assertCounts(t, b)
}

func TestRemove(t *testing.T) {
	b := mustParse(t,
		"........",
		"........",
		"........",
		"..W.....",
		"...r....",
		"........",
		"........",
		"r.......",
	)
	require.Equal(t, 1, b.Kings(White))

	b.Remove(Square{Row: 3, Col: 2}, Square{Row: 4, Col: 3})
	assert.Zero(t, b.Left(White))
	assert.Zero(t, b.Kings(White))
	assert.Equal(t, 1, b.Left(Red))
	assert.Nil(t, b.Piece(3, 2))

	// removing an empty square is a no-op
	b.Remove(Square{Row: 3, Col: 2})
	assert.Zero(t, b.Left(White))
	assertCounts(t, b)
}

func TestCloneIsDeep(t *testing.T) {
	b := NewBoard()
	c := b.Clone()

	piece := c.Piece(5, 0)
	c.Move(piece, 4, 1)
	c.Remove(Square{Row: 2, Col: 1})

	assert.NotNil(t, b.Piece(5, 0))
	assert.Nil(t, b.Piece(4, 1))
	assert.Equal(t, 5, b.Piece(5, 0).Row)
	assert.Equal(t, 12, b.Left(White))
	assert.Equal(t, NewBoard().String(), b.String())
	assert.Equal(t, 11, c.Left(White))
}

func TestParseBoardRejectsBadInput(t *testing.T) {
	for name, rows := range map[string][]string{
		"too few rows":  {"........"},
		"short row":     {".", "", "", "", "", "", "", ""},
		"light square":  {"w.......", "........", "........", "........", "........", "........", "........", "........"},
		"unknown piece": {".x......", "........", "........", "........", "........", "........", "........", "........"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBoard(rows...)
			assert.Error(t, err)
		})
	}
}

func TestParseBoardRoundTrip(t *testing.T) {
	rows := []string{
		".W......",
		"........",
		"...r....",
		"....w...",
		"........",
		"........",
		"........",
		"R.......",
	}
	b := mustParse(t, rows...)
	assert.Equal(t, 2, b.Left(Red))
	assert.Equal(t, 1, b.Kings(Red))
	assert.Equal(t, 1, b.Kings(White))
	state, pieces := NewBoardState(b)
	assert.Equal(t, rows, state)
	assert.Len(t, pieces, 4)
}
