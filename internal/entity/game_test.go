package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: creating a new game
	game := NewGame()

	// Then: the board is empty, X moves first and nobody has won
	expectedGame := GameState{
		Board:  Board{},
		Turn:   PlayerX,
		Status: StatusOngoing,
		Winner: EmptyCell,
	}

	require.Equal(t, expectedGame, game)
	assert.Equal(t, 0, game.Board.Filled())
}

func TestEvaluate(t *testing.T) {
	t.Run("Returns nothing for an empty board", func(t *testing.T) {
		// When: evaluating an empty board
		_, ok := Evaluate(Board{})

		// Then: there is no winner
		assert.False(t, ok)
	})

	t.Run("Finds every winning triple", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: a board with only one triple filled by O
			var board Board
			for _, i := range combo {
				board[i] = PlayerO
			}

			// When: evaluating the board
			result, ok := Evaluate(board)

			// Then: O wins on exactly that triple
			require.True(t, ok)
			assert.Equal(t, PlayerO, result.Winner)
			assert.Equal(t, combo, result.Line)
		}
	})

	t.Run("Returns nothing on a partly filled board without a triple", func(t *testing.T) {
		// Given: a board still in play
		board := Board{
			PlayerX, PlayerO, EmptyCell,
			EmptyCell, PlayerX, EmptyCell,
			EmptyCell, EmptyCell, PlayerO,
		}

		// When: evaluating the board
		_, ok := Evaluate(board)

		// Then: there is no winner
		assert.False(t, ok)
	})

	t.Run("Returns nothing on a full board without a triple", func(t *testing.T) {
		// Given: a drawn board
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, PlayerO,
		}

		// When: evaluating the board
		_, ok := Evaluate(board)

		// Then: there is no winner and the board is full
		assert.False(t, ok)
		assert.True(t, board.IsFull())
	})

	t.Run("Prefers rows over columns over diagonals", func(t *testing.T) {
		// Given: an unreachable board where a column and a diagonal and a row all match
		board := Board{
			PlayerO, PlayerX, PlayerX,
			PlayerO, PlayerX, EmptyCell,
			PlayerX, PlayerX, PlayerX,
		}

		// When: evaluating the board
		result, ok := Evaluate(board)

		// Then: the bottom row wins because rows are checked first
		require.True(t, ok)
		assert.Equal(t, PlayerX, result.Winner)
		assert.Equal(t, [3]int{6, 7, 8}, result.Line)
	})

	t.Run("Prefers the main diagonal over the anti diagonal", func(t *testing.T) {
		// Given: both diagonals filled by X and nothing else
		board := Board{
			PlayerX, EmptyCell, PlayerX,
			EmptyCell, PlayerX, EmptyCell,
			PlayerX, EmptyCell, PlayerX,
		}

		// When: evaluating the board
		result, ok := Evaluate(board)

		// Then: the main diagonal is reported
		require.True(t, ok)
		assert.Equal(t, [3]int{0, 4, 8}, result.Line)
	})
}

func TestCell_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
}

func TestGameState_WinningLine(t *testing.T) {
	t.Run("Derived while status is win", func(t *testing.T) {
		// Given: a won game
		game := GameState{
			Board: Board{
				EmptyCell, PlayerO, PlayerX,
				EmptyCell, PlayerX, PlayerO,
				PlayerX, EmptyCell, EmptyCell,
			},
			Turn:   PlayerX,
			Status: StatusWin,
			Winner: PlayerX,
		}

		// When: asking for the winning line
		line, ok := game.WinningLine()

		// Then: the anti diagonal is returned
		require.True(t, ok)
		assert.Equal(t, [3]int{2, 4, 6}, line)
		assert.True(t, game.InWinningLine(4))
		assert.False(t, game.InWinningLine(0))
	})

	t.Run("Absent while ongoing even if the board has a triple", func(t *testing.T) {
		// Given: an injected board with a triple but an ongoing status
		game := NewGame()
		game.Board = Board{PlayerX, PlayerX, PlayerX}

		// When: asking for the winning line
		_, ok := game.WinningLine()

		// Then: nothing is highlighted
		assert.False(t, ok)
		assert.False(t, game.InWinningLine(0))
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusOngoing.IsTerminal())
	assert.True(t, StatusDraw.IsTerminal())
	assert.True(t, StatusWin.IsTerminal())
}
