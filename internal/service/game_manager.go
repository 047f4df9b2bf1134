// service/game_manager.go
package service

import (
	"sync"

	"github.com/benbeisheim/checkers-backend/internal/engine"
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/rs/zerolog/log"
)

type GameManager struct {
	games map[string]*Game
	depth int
	mu    sync.RWMutex
}

// NewGameManager creates a registry whose engines search to depth plies.
func NewGameManager(depth int) *GameManager {
	return &GameManager{
		games: make(map[string]*Game),
		depth: depth,
	}
}

func (gm *GameManager) CreateGame(gameID string, strategy engine.Strategy) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = NewGame(gameID, engine.New(gm.depth, strategy))
	log.Info().Str("game", gameID).Str("strategy", strategy.String()).Int("depth", gm.depth).Msg("game created")
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Side, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) GetValidMoves(gameID string, sq model.Square) ([]model.Move, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.ValidMoves(sq)
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.MoveRequest) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) ResetGame(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Reset(playerID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *ws.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *ws.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
