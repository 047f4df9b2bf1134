package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)
	logger := log.With().Str("game", gameID).Str("player", playerID).Logger()

	conn := ws.NewConn(c)
	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		logger.Warn().Err(err).Msg("failed to register connection")
		wsc.sendError(conn, err.Error())
		conn.Close(err.Error())
		return
	}
	defer func() {
		wsc.gameService.UnregisterConnection(gameID, playerID, conn)
		conn.Close("session ended")
	}()

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug().Err(err).Msg("read error")
			break
		}

		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Warn().Err(err).Msg("parse error")
			wsc.sendError(conn, "malformed message")
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			logger.Info().Err(err).Str("type", string(msg.Type)).Msg("message rejected")
			wsc.sendError(conn, err.Error())
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("invalid move payload: %w", err)
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeReset:
		return wsc.gameService.ResetGame(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(conn *ws.Conn, errorMsg string) {
	if err := conn.SendError(errorMsg); err != nil {
		log.Debug().Err(err).Msg("failed to send error")
	}
}
