package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

// WebSocketUpgrade admits an upgrade request only for a game that exists and
// a caller that EnsurePlayerID has already identified.
func WebSocketUpgrade(gameExists func(gameID string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		if c.Locals("playerID") == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		gameID := c.Params("gameId")
		if gameID == "" || !gameExists(gameID) {
			log.Debug().Str("game", gameID).Msg("upgrade refused for unknown game")
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "game not found",
			})
		}

		return c.Next()
	}
}
