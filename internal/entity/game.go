package entity

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	// NoCell marks the initial history record, which has no activated cell.
	NoCell = -1

	BoardSize = 9
	BoardSide = 3
)

// WinCombos lists the win lines in evaluation order: rows top to bottom,
// columns left to right, then the two diagonals.
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

// Board is a snapshot of the 9 cells, row-major.
type Board [BoardSize]string

// WinResult is derived from a board and never stored.
type WinResult struct {
	Mark string `json:"mark,omitempty"`
	Line []int  `json:"line,omitempty"`
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (that Board) IsOccupied(cell int) bool {
	return that[cell] != EmptyCell
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that WinResult) HasWinner() bool {
	return that.Mark != EmptyCell
}

// InLine reports whether cell belongs to the winning line.
func (that WinResult) InLine(cell int) bool {
	for _, index := range that.Line {
		if index == cell {
			return true
		}
	}

	return false
}

// ComputeWinner returns the first complete line in WinCombos order.
func ComputeWinner(board Board) WinResult {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return WinResult{
				Mark: a,
				Line: []int{combo[0], combo[1], combo[2]},
			}
		}
	}

	return WinResult{}
}

// CellPosition converts a cell index to 1-based row and column.
func CellPosition(cell int) (int, int) {
	return cell/BoardSide + 1, cell%BoardSide + 1
}
