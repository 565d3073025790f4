package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
)

// Action is a user interaction that may change the game state.
type Action interface {
	isAction()
}

// CellClick is a click on the cell at Index (0-8).
type CellClick struct {
	Index int
}

// Restart replaces the game with a fresh one.
type Restart struct{}

func (CellClick) isAction() {}
func (Restart) isAction()   {}

// Reduce applies one action to the state and returns the next state.
// Unknown actions leave the state untouched.
func Reduce(state entity.GameState, action Action) entity.GameState {
	switch a := action.(type) {
	case CellClick:
		return MakeTurn(state, a.Index)
	case Restart:
		return NewGame()
	default:
		return state
	}
}

// NewGame - returns the initial state for a new or restarted game.
func NewGame() entity.GameState {
	return entity.NewGame()
}

// MakeTurn - places the active player's mark at cell. Moves on a filled
// cell, outside the board or after the game has ended are no-ops.
func MakeTurn(state entity.GameState, cell int) entity.GameState {
	if !Playable(state, cell) {
		return state
	}

	state.Board[cell] = state.Turn
	updateGameStatus(&state)

	return state
}

// Playable - reports whether a click on cell would change the state.
func Playable(state entity.GameState, cell int) bool {
	if cell < 0 || cell >= len(state.Board) {
		return false
	}

	return state.IsOngoing() && state.Board[cell].IsEmpty()
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(state *entity.GameState) {
	if result, ok := entity.Evaluate(state.Board); ok {
		state.Status = entity.StatusWin
		state.Winner = result.Winner
		return
	}

	if state.Board.IsFull() {
		state.Status = entity.StatusDraw
		state.Winner = entity.EmptyCell
		return
	}

	state.Turn = state.Turn.Opponent()
}
