package entity

// Cell is the content of one board square.
type Cell string

const (
	EmptyCell Cell = ""
	PlayerX   Cell = "X"
	PlayerO   Cell = "O"
)

// Status is the game status. Draw and Win are terminal.
type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusDraw    Status = "draw"
	StatusWin     Status = "win"
)

// BoardSize is the number of cells on the board.
const BoardSize = 9

// WinCombos lists every winning triple in priority order:
// rows top to bottom, columns left to right, main diagonal, anti diagonal.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a row-major 3x3 grid.
type Board [BoardSize]Cell

// GameState is the whole state of one game session.
type GameState struct {
	Board  Board  `json:"board"`
	Turn   Cell   `json:"player_turn"`
	Status Status `json:"status"`
	Winner Cell   `json:"winner"`
}

// Result is a winning triple found on a board.
type Result struct {
	Winner Cell
	Line   [3]int
}

// NewGame returns the initial state: empty board, X to move.
func NewGame() GameState {
	return GameState{
		Turn:   PlayerX,
		Status: StatusOngoing,
		Winner: EmptyCell,
	}
}

// Opponent returns the other player's mark.
func (that Cell) Opponent() Cell {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Cell) IsEmpty() bool {
	return that == EmptyCell
}

func (that Status) IsTerminal() bool {
	return that == StatusDraw || that == StatusWin
}

// Evaluate returns the first winning triple on the board, if any.
// It accepts any board, including ones unreachable in legal play.
func Evaluate(board Board) (Result, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Result{Winner: a, Line: combo}, true
		}
	}

	return Result{}, false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Filled returns the number of non-empty cells.
func (that Board) Filled() int {
	n := 0
	for _, cell := range that {
		if cell != EmptyCell {
			n++
		}
	}

	return n
}

func (that GameState) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that GameState) IsFinished() bool {
	return that.Status.IsTerminal()
}

// WinningLine derives the winning triple from the board. It is only
// reported while the status is Win.
func (that GameState) WinningLine() ([3]int, bool) {
	if that.Status != StatusWin {
		return [3]int{}, false
	}

	result, ok := Evaluate(that.Board)
	if !ok {
		return [3]int{}, false
	}

	return result.Line, true
}

// InWinningLine reports whether the cell at index belongs to the winning line.
func (that GameState) InWinningLine(index int) bool {
	line, ok := that.WinningLine()
	if !ok {
		return false
	}

	for _, i := range line {
		if i == index {
			return true
		}
	}

	return false
}
