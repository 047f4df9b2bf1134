package service

import (
	"fmt"

	"github.com/benbeisheim/checkers-backend/internal/engine"
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager       *GameManager
	defaultDifficulty engine.Strategy
}

func NewGameService(gameManager *GameManager, defaultDifficulty engine.Strategy) *GameService {
	return &GameService{
		gameManager:       gameManager,
		defaultDifficulty: defaultDifficulty,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Side, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

// CreateGame starts a session at the given difficulty; an empty name picks the default.
func (gs *GameService) CreateGame(difficulty string) (string, error) {
	strategy := gs.defaultDifficulty
	if difficulty != "" {
		parsed, err := engine.ParseStrategy(difficulty)
		if err != nil {
			return "", err
		}
		strategy = parsed
	}

	gameID := uuid.New().String()
	if err := gs.gameManager.CreateGame(gameID, strategy); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) GetValidMoves(gameID string, sq model.Square) ([]model.Move, error) {
	return gs.gameManager.GetValidMoves(gameID, sq)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.MoveRequest) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) ResetGame(gameID string, playerID string) error {
	return gs.gameManager.ResetGame(gameID, playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *ws.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *ws.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) GameExists(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}
