package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/checkers-backend/internal/engine"
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/rs/zerolog/log"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrGameFull     = errors.New("game is full")
	ErrNotInGame    = errors.New("player not in game")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrGameOver     = errors.New("game is over")
	ErrNoPiece      = errors.New("no piece of yours at square")
	ErrIllegalMove  = errors.New("illegal move")
	ErrOutOfBounds  = errors.New("square out of bounds")

	ErrDuplicateConnection = errors.New("connection already exists")
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*ws.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*ws.Conn),
	}
}

// Game is one human (Red) versus engine (White) session.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *model.Board
	toMove      model.Side
	winner      model.Outcome
	lastMove    *model.Move
	engineScore *float64
	human       model.Player
	engine      *engine.Engine
	redClock    *model.Clock
	whiteClock  *model.Clock
	connections *GameConnections
}

func NewGame(id string, eng *engine.Engine) *Game {
	g := &Game{
		ID:          id,
		engine:      eng,
		redClock:    model.NewClock(),
		whiteClock:  model.NewClock(),
		connections: NewGameConnections(),
	}
	g.reset()
	return g
}

func (g *Game) reset() {
	g.board = model.NewBoard()
	g.toMove = model.Red
	g.winner = model.NoWinner
	g.lastMove = nil
	g.engineScore = nil
	g.redClock.Reset()
	g.whiteClock.Reset()
}

// AddPlayer seats the human on Red. Rejoining with the same id is allowed.
func (g *Game) AddPlayer(playerID string) (model.Side, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.human.ID == "" {
		g.human = model.Player{ID: playerID, Side: model.Red}
		g.redClock.Start()
		log.Info().Str("game", g.ID).Str("player", playerID).Msg("player joined")
		return model.Red, nil
	}
	if g.human.ID == playerID {
		return model.Red, nil
	}
	return "", ErrGameFull
}

func (g *Game) isPlayerInGame(playerID string) bool {
	return g.human.ID != "" && g.human.ID == playerID
}

func (g *Game) GetState() model.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) state() model.GameState {
	state := model.GameState{
		ToMove:     g.toMove,
		Difficulty: g.engine.Strategy.String(),
		Depth:      g.engine.Depth,
		Winner:     g.winner,
		Left:       model.SideCounts{Red: g.board.Left(model.Red), White: g.board.Left(model.White)},
		Kings:      model.SideCounts{Red: g.board.Kings(model.Red), White: g.board.Kings(model.White)},
	}
	state.Board, state.Pieces = model.NewBoardState(g.board)
	if g.lastMove != nil {
		last := *g.lastMove
		state.LastMove = &last
	}
	if g.engineScore != nil {
		score := *g.engineScore
		state.EngineScore = &score
	}
	state.Players.Red = model.ClientPlayer{
		ID:         g.human.ID,
		Side:       model.Red,
		ThinkingMs: g.redClock.Elapsed().Milliseconds(),
	}
	state.Players.White = model.ClientPlayer{
		ID:         model.EnginePlayerID,
		Side:       model.White,
		ThinkingMs: g.whiteClock.Elapsed().Milliseconds(),
	}
	return state
}

// ValidMoves lists the moves of the piece on sq, for highlighting.
func (g *Game) ValidMoves(sq model.Square) ([]model.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	piece, err := g.pieceAt(sq)
	if err != nil {
		return nil, err
	}
	return g.board.ValidMoves(piece), nil
}

func (g *Game) pieceAt(sq model.Square) (*model.Piece, error) {
	if sq.Row < 0 || sq.Row >= model.Rows || sq.Col < 0 || sq.Col >= model.Cols {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, sq)
	}
	piece := g.board.Piece(sq.Row, sq.Col)
	if piece == nil || piece.Side != g.human.Side {
		return nil, fmt.Errorf("%w: %v", ErrNoPiece, sq)
	}
	return piece, nil
}

// MakeMove plays the human move and then lets the engine reply on the same call.
func (g *Game) MakeMove(playerID string, req model.MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return ErrNotInGame
	}
	if g.winner != model.NoWinner {
		return ErrGameOver
	}
	if g.toMove != g.human.Side {
		return ErrNotYourTurn
	}

	piece, err := g.pieceAt(req.From)
	if err != nil {
		return err
	}
	move, ok := findMove(g.board.ValidMoves(piece), req.To)
	if !ok {
		return fmt.Errorf("%w: %v to %v", ErrIllegalMove, req.From, req.To)
	}

	g.redClock.Stop()
	g.board.Move(piece, move.To.Row, move.To.Col)
	g.board.Remove(move.Captures...)
	g.lastMove = &move
	log.Info().
		Str("game", g.ID).
		Stringer("from", move.From).
		Stringer("to", move.To).
		Int("captures", len(move.Captures)).
		Msg("human moved")
	g.changeTurn()

	if g.winner == model.NoWinner && g.toMove == model.White {
		g.engineMove()
	}

	go g.broadcastState()
	return nil
}

func findMove(moves []model.Move, to model.Square) (model.Move, bool) {
	for _, m := range moves {
		if m.To == to {
			return m, true
		}
	}
	return model.Move{}, false
}

// engineMove replaces the live board with the one the search picked.
func (g *Game) engineMove() {
	g.whiteClock.Start()
	result, ok := g.engine.BestMove(g.board, model.White)
	g.whiteClock.Stop()
	if !ok {
		// changeTurn already settles a side with no moves
		log.Warn().Str("game", g.ID).Msg("engine has no move")
		return
	}

	g.board = result.Board
	move := result.Move
	score := result.Score
	g.lastMove = &move
	g.engineScore = &score
	log.Info().
		Str("game", g.ID).
		Stringer("from", move.From).
		Stringer("to", move.To).
		Int("captures", len(move.Captures)).
		Float64("score", score).
		Msg("engine moved")
	g.changeTurn()
}

// changeTurn hands the move over and settles the game if the new side to move
// has lost all pieces or has no legal move.
func (g *Game) changeTurn() {
	g.toMove = g.toMove.Opponent()
	if outcome := g.board.Winner(); outcome != model.NoWinner {
		g.winner = outcome
	} else if !g.board.HasMoves(g.toMove) {
		g.winner = model.Outcome(g.toMove.Opponent())
	}
	if g.winner != model.NoWinner {
		g.redClock.Stop()
		log.Info().Str("game", g.ID).Str("winner", string(g.winner)).Msg("game over")
		return
	}
	if g.toMove == g.human.Side {
		g.redClock.Start()
	}
}

func (g *Game) Reset(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return ErrNotInGame
	}
	g.reset()
	g.redClock.Start()
	log.Info().Str("game", g.ID).Msg("game reset")

	go g.broadcastState()
	return nil
}

// RegisterConnection attaches conn as the player's broadcast target. A player
// keeps one connection; a second one is refused with ErrDuplicateConnection.
func (g *Game) RegisterConnection(playerID string, conn *ws.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID)
	g.mu.Unlock()

	if !isAuthorized {
		return fmt.Errorf("not authorized to join this game: %w", ErrNotInGame)
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		return ErrDuplicateConnection
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Debug().Str("game", g.ID).Str("player", playerID).Str("conn", fmt.Sprintf("%p", conn)).Msg("registered connection")

	go g.broadcastState()
	return nil
}

// UnregisterConnection detaches conn. A newer connection registered under the
// same player is left in place.
func (g *Game) UnregisterConnection(playerID string, conn *ws.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	g.dropConnection(playerID, conn)
}

// dropConnection must be called with connections.mu held.
func (g *Game) dropConnection(playerID string, conn *ws.Conn) {
	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Debug().Str("game", g.ID).Str("player", playerID).Msg("unregistered connection")
	}
}

func (g *Game) broadcastState() {
	state := g.GetState()

	// Get a snapshot of connections under the connections mutex
	g.connections.mu.RLock()
	activeConnections := make(map[string]*ws.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.Send(ws.MessageTypeGameState, state); err != nil {
			log.Warn().Err(err).Str("game", g.ID).Str("player", playerID).Msg("failed to send state")
			g.connections.mu.Lock()
			g.dropConnection(playerID, conn)
			g.connections.mu.Unlock()
		}
	}
}
