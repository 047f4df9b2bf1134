package controller

import (
	"errors"

	"github.com/benbeisheim/checkers-backend/internal/engine"
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Difficulty string `json:"difficulty"`
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, engine.ErrUnknownStrategy),
		errors.Is(err, service.ErrOutOfBounds),
		errors.Is(err, service.ErrNoPiece),
		errors.Is(err, service.ErrIllegalMove):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrGameFull),
		errors.Is(err, service.ErrNotYourTurn),
		errors.Is(err, service.ErrGameOver):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req.Difficulty)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	side, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   side,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(gameState)
}

// GetValidMoves answers /moves?row=&col= with the destinations of that piece.
func (gc *GameController) GetValidMoves(c *fiber.Ctx) error {
	if c.Query("row") == "" || c.Query("col") == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "row and col query parameters are required",
		})
	}
	row := c.QueryInt("row", -1)
	col := c.QueryInt("col", -1)

	moves, err := gc.gameService.GetValidMoves(c.Params("gameId"), model.Square{Row: row, Col: col})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"moves": moves,
	})
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.ResetGame(c.Params("gameId"), playerID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game reset",
	})
}
