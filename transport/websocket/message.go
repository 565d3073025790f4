package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-classic/internal/view"
)

const (
	actionGameState   = "game:state"
	actionGameTurn    = "game:turn"
	actionGameRestart = "game:restart"
	actionError       = "error"
)

// Message is the envelope for every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Cell  *int           `json:"cell,omitempty"`
	Game  *view.GameView `json:"game,omitempty"`
	HTML  string         `json:"html,omitempty"`
	Error string         `json:"error,omitempty"`
}
