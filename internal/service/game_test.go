package service

import (
	"testing"

	"github.com/benbeisheim/checkers-backend/internal/engine"
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJoinedGame(t *testing.T, strategy engine.Strategy) *Game {
	t.Helper()
	g := NewGame("test-game", engine.New(2, strategy))
	side, err := g.AddPlayer("alice")
	require.NoError(t, err)
	require.Equal(t, model.Red, side)
	return g
}

func move(fromRow, fromCol, toRow, toCol int) model.MoveRequest {
	return model.MoveRequest{
		From: model.Square{Row: fromRow, Col: fromCol},
		To:   model.Square{Row: toRow, Col: toCol},
	}
}

func TestAddPlayer(t *testing.T) {
	g := newJoinedGame(t, engine.Basic)

	side, err := g.AddPlayer("alice")
	require.NoError(t, err)
	assert.Equal(t, model.Red, side)

	_, err = g.AddPlayer("bob")
	assert.ErrorIs(t, err, ErrGameFull)
}

func TestInitialState(t *testing.T) {
	g := newJoinedGame(t, engine.Intermediate)
	state := g.GetState()

	assert.Equal(t, model.Red, state.ToMove)
	assert.Equal(t, "intermediate", state.Difficulty)
	assert.Equal(t, 2, state.Depth)
	assert.Equal(t, model.NoWinner, state.Winner)
	assert.Equal(t, model.SideCounts{Red: 12, White: 12}, state.Left)
	assert.Len(t, state.Pieces, 24)
	assert.Len(t, state.Board, model.Rows)
	assert.Nil(t, state.LastMove)
	assert.Nil(t, state.EngineScore)
	assert.Equal(t, "alice", state.Players.Red.ID)
	assert.Equal(t, model.EnginePlayerID, state.Players.White.ID)
}

func TestMakeMoveTriggersEngineReply(t *testing.T) {
	g := newJoinedGame(t, engine.Advanced)

	require.NoError(t, g.MakeMove("alice", move(5, 0, 4, 1)))

	state := g.GetState()
	assert.Equal(t, model.Red, state.ToMove)
	require.NotNil(t, state.LastMove)
	require.NotNil(t, state.EngineScore)
	assert.Equal(t, model.Red, g.board.Piece(4, 1).Side)
	assert.Nil(t, g.board.Piece(5, 0))

	// the engine moved one white man off its starting rows
	moved := 0
	for _, p := range g.board.Pieces(model.White) {
		if p.Row == 3 {
			moved++
		}
	}
	assert.Equal(t, 1, moved)
	assert.Equal(t, 2, state.LastMove.From.Row)
}

func TestMakeMoveRejections(t *testing.T) {
	g := newJoinedGame(t, engine.Basic)

	assert.ErrorIs(t, g.MakeMove("bob", move(5, 0, 4, 1)), ErrNotInGame)
	assert.ErrorIs(t, g.MakeMove("alice", move(5, 0, 3, 2)), ErrIllegalMove)
	assert.ErrorIs(t, g.MakeMove("alice", move(4, 1, 3, 2)), ErrNoPiece)
	assert.ErrorIs(t, g.MakeMove("alice", move(2, 1, 3, 2)), ErrNoPiece)
	assert.ErrorIs(t, g.MakeMove("alice", move(9, 0, 4, 1)), ErrOutOfBounds)

	g.toMove = model.White
	assert.ErrorIs(t, g.MakeMove("alice", move(5, 0, 4, 1)), ErrNotYourTurn)
}

func TestValidMoves(t *testing.T) {
	g := newJoinedGame(t, engine.Basic)

	moves, err := g.ValidMoves(model.Square{Row: 5, Col: 2})
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, model.Square{Row: 4, Col: 1}, moves[0].To)

	_, err = g.ValidMoves(model.Square{Row: 2, Col: 1})
	assert.ErrorIs(t, err, ErrNoPiece)

	_, err = g.ValidMoves(model.Square{Row: -1, Col: 0})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCapturingLastPieceEndsGame(t *testing.T) {
	g := newJoinedGame(t, engine.Basic)
	board, err := model.ParseBoard(
		"........",
		"........",
		"........",
		"........",
		"........",
		"..w.....",
		".r......",
		"........",
	)
	require.NoError(t, err)
	g.board = board

	require.NoError(t, g.MakeMove("alice", move(6, 1, 4, 3)))

	state := g.GetState()
	assert.Equal(t, model.RedWins, state.Winner)
	assert.Zero(t, state.Left.White)
	assert.Nil(t, state.EngineScore)
	assert.ErrorIs(t, g.MakeMove("alice", move(4, 3, 3, 2)), ErrGameOver)
}

func TestStuckEngineLoses(t *testing.T) {
	g := newJoinedGame(t, engine.Basic)
	board, err := model.ParseBoard(
		"........",
		"........",
		"........",
		"........",
		"........",
		"..r.....",
		"........",
		"w.......",
	)
	require.NoError(t, err)
	g.board = board

	require.NoError(t, g.MakeMove("alice", move(5, 2, 4, 1)))
	assert.Equal(t, model.RedWins, g.GetState().Winner)
}

func TestReset(t *testing.T) {
	g := newJoinedGame(t, engine.Basic)
	require.NoError(t, g.MakeMove("alice", move(5, 0, 4, 1)))

	assert.ErrorIs(t, g.Reset("bob"), ErrNotInGame)
	require.NoError(t, g.Reset("alice"))

	state := g.GetState()
	assert.Equal(t, model.NewBoard().String(), g.board.String())
	assert.Equal(t, model.Red, state.ToMove)
	assert.Nil(t, state.LastMove)
	assert.Equal(t, "alice", state.Players.Red.ID)
}
