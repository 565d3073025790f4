package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-classic/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
	"github.com/rocketscienceinc/tictactoe-classic/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-classic/internal/view"
)

const (
	maxMessageSize = 4096
	writeWait      = 10 * time.Second
)

type gameManager interface {
	GetState(ctx context.Context, sessionID string) (entity.GameState, error)
	Click(ctx context.Context, sessionID string, cell int) (entity.GameState, error)
	Restart(ctx context.Context, sessionID string) (entity.GameState, error)
}

type handlerFunc func(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error

// Server upgrades /ws requests and serves one session per connection.
type Server struct {
	logger      *slog.Logger
	gameManager gameManager
	renderer    *view.Renderer
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameManager gameManager, renderer *view.Renderer) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameManager: gameManager,
		renderer:    renderer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameRestart] = server.handleGameRestart

	return server
}

// ServeHTTP - upgrades the connection once the session is known.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	sessionID := req.URL.Query().Get("session")

	if sessionID != "" && !pkg.IsSessionID(sessionID) {
		http.Error(writer, apperror.ErrGameNotFound.Error(), http.StatusNotFound)
		return
	}

	if _, err := that.gameManager.GetState(req.Context(), sessionID); err != nil {
		switch {
		case errors.Is(err, apperror.ErrSessionRequired):
			http.Error(writer, err.Error(), http.StatusBadRequest)
		case errors.Is(err, apperror.ErrGameNotFound):
			http.Error(writer, err.Error(), http.StatusNotFound)
		default:
			log.Error("failed to get game", "error", err)
			http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}

		return
	}

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log = log.With("sessionID", sessionID)
	log.Info("WebSocket connection established")

	if err = that.handleMessages(req.Context(), sessionID, conn); err != nil {
		log.Error("error handling messages", "error", err)
	}

	// Sessions outlive the socket; storage expiry reclaims them.
	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages until the client goes away.
func (that *Server) handleMessages(ctx context.Context, sessionID string, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages", "sessionID", sessionID)

	conn.SetReadLimit(maxMessageSize)

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				return nil
			}

			var (
				syntaxErr *json.SyntaxError
				typeErr   *json.UnmarshalTypeError
			)
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				log.Warn("failed to unmarshal message", "error", err)
				if err = that.sendErrorResponse(conn, actionError, "malformed message"); err != nil {
					return err
				}

				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err := that.sendErrorResponse(conn, message.Action, "unknown action"); err != nil {
				return err
			}

			continue
		}

		if err := handler(ctx, sessionID, &message, conn); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
