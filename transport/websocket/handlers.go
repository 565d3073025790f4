package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
	"github.com/rocketscienceinc/tictactoe-classic/internal/view"
)

func (that *Server) handleGameState(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error {
	game, err := that.gameManager.GetState(ctx, sessionID)
	if err != nil {
		return that.failAction(conn, msg.Action, "failed to get the game", err)
	}

	return that.sendGame(conn, msg.Action, sessionID, game)
}

func (that *Server) handleGameTurn(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameTurn", "sessionID", sessionID)

	var payloadReq Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			log.Warn("failed to unmarshal payload", "error", err)
			return that.sendErrorResponse(conn, msg.Action, "cell must be an integer")
		}
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(conn, msg.Action, "cell is required")
	}

	game, err := that.gameManager.Click(ctx, sessionID, *payloadReq.Cell)
	if err != nil {
		return that.failAction(conn, msg.Action, "failed to make turn", err)
	}

	log.Debug("turn handled", "cell", *payloadReq.Cell, "status", game.Status)

	return that.sendGame(conn, msg.Action, sessionID, game)
}

func (that *Server) handleGameRestart(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error {
	game, err := that.gameManager.Restart(ctx, sessionID)
	if err != nil {
		return that.failAction(conn, msg.Action, "failed to restart the game", err)
	}

	return that.sendGame(conn, msg.Action, sessionID, game)
}

// sendGame - replies with the view and the board fragment the page swaps in.
func (that *Server) sendGame(conn *websocket.Conn, action, sessionID string, game entity.GameState) error {
	gameView := view.New(sessionID, game)

	html, err := that.renderer.Board(gameView)
	if err != nil {
		return that.failAction(conn, action, "failed to render the game", err)
	}

	return that.sendMessage(conn, action, Payload{Game: &gameView, HTML: html})
}

func (that *Server) failAction(conn *websocket.Conn, action, errorMsg string, cause error) error {
	if err := that.sendErrorResponse(conn, action, errorMsg); err != nil {
		return err
	}

	return fmt.Errorf("%s: %w", errorMsg, cause)
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action, errorMsg string) error {
	if err := that.sendMessage(conn, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: data}); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
