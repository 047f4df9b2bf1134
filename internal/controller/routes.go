package controller

import (
	"github.com/benbeisheim/checkers-backend/internal/middleware"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

// NewApp wires the REST and WebSocket routes around gameService.
func NewApp(gameService *service.GameService, allowedOrigin string) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(func(c *fiber.Ctx) error {
		log.Debug().Str("method", c.Method()).Str("path", c.Path()).Msg("incoming request")
		return c.Next()
	})

	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(gameService.GameExists), websocket.New(func(c *websocket.Conn) {
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{allowedOrigin},
	}))

	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetValidMoves)
	gameRoutes.Post("/:gameId/reset", gameController.ResetGame)

	return app
}
