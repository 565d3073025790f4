// Package view derives everything the browser shows from a GameState.
// Nothing here is stored; a GameView is rebuilt after every transition.
package view

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
	"github.com/rocketscienceinc/tictactoe-classic/internal/tictactoe"
)

// Fixed palette.
const (
	ColorPrimary    = "#fa0000" // X
	ColorSecondary  = "#222222" // O
	ColorAccent     = "#4caf50" // winning line, turn line
	ColorBackground = "#f9f9f9"

	colorEmptyLabel = "#bdbdbd"
	colorCellBorder = "#eeeeef"
	colorCellIdle   = "#fafbfc"
)

const (
	RestartLabel  = "Restart game"
	RestartTestID = "restart-btn"
)

// CellView is one rendered square.
type CellView struct {
	Index       int    `json:"index"`
	Label       string `json:"label"`
	AriaLabel   string `json:"aria_label"`
	Clickable   bool   `json:"clickable"`
	Highlighted bool   `json:"highlighted"`
	Color       string `json:"color"`
	Border      string `json:"border"`
	Background  string `json:"background"`
}

// GameView is the render-ready projection of a game.
type GameView struct {
	SessionID   string        `json:"session_id"`
	Cells       [9]CellView   `json:"cells"`
	Status      entity.Status `json:"status"`
	StatusLine  string        `json:"status_line"`
	Turn        string        `json:"turn,omitempty"`
	TurnColor   string        `json:"turn_color,omitempty"`
	Winner      string        `json:"winner,omitempty"`
	Celebration string        `json:"celebration,omitempty"`
	WinningLine []int         `json:"winning_line,omitempty"`
}

// New builds the view of state for the given session.
func New(sessionID string, state entity.GameState) GameView {
	gameView := GameView{
		SessionID:  sessionID,
		Status:     state.Status,
		StatusLine: StatusLine(state),
	}

	if line, ok := state.WinningLine(); ok {
		gameView.WinningLine = line[:]
	}

	switch state.Status {
	case entity.StatusWin:
		gameView.Winner = string(state.Winner)
		gameView.Celebration = fmt.Sprintf("🎉 %s wins the game!", state.Winner)
	case entity.StatusDraw:
		gameView.Celebration = "It's a draw!"
	case entity.StatusOngoing:
		gameView.Turn = string(state.Turn)
		gameView.TurnColor = markColor(state.Turn)
	}

	for i, cell := range state.Board {
		gameView.Cells[i] = newCellView(state, i, cell)
	}

	return gameView
}

// StatusLine is the main status text.
func StatusLine(state entity.GameState) string {
	switch state.Status {
	case entity.StatusWin:
		return fmt.Sprintf("%s wins!", state.Winner)
	case entity.StatusDraw:
		return "It's a draw!"
	default:
		return fmt.Sprintf("Turn: %s", state.Turn)
	}
}

func newCellView(state entity.GameState, index int, cell entity.Cell) CellView {
	highlighted := state.InWinningLine(index)

	cellView := CellView{
		Index:       index,
		Label:       string(cell),
		AriaLabel:   fmt.Sprintf("Square %d", index+1),
		Clickable:   tictactoe.Playable(state, index),
		Highlighted: highlighted,
		Color:       markColor(cell),
		Border:      colorCellBorder,
		Background:  colorCellIdle,
	}

	if highlighted {
		cellView.Border = ColorAccent
		cellView.Background = ColorAccent
	}

	return cellView
}

func markColor(cell entity.Cell) string {
	switch cell {
	case entity.PlayerX:
		return ColorPrimary
	case entity.PlayerO:
		return ColorSecondary
	default:
		return colorEmptyLabel
	}
}
