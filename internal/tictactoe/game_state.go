package tictactoe

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/playground/internal/apperror"
	"github.com/rocketscienceinc/playground/internal/entity"
)

var (
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrGameFinished = errors.New("game is already finished")
)

// MoveRecord is the board after a move and the cell that move activated.
type MoveRecord struct {
	Board entity.Board `json:"board"`
	Cell  int          `json:"cell"`
}

func (that MoveRecord) HasCell() bool {
	return that.Cell != entity.NoCell
}

// GameState is an immutable value: every operation returns a new state and
// never writes to a history slice another state can observe.
// The zero value is a fresh game.
type GameState struct {
	history []MoveRecord
	cursor  int
}

func NewGameState() GameState {
	return GameState{
		history: initialHistory(),
	}
}

func initialHistory() []MoveRecord {
	return []MoveRecord{{Board: entity.Board{}, Cell: entity.NoCell}}
}

func (that GameState) records() []MoveRecord {
	if len(that.history) == 0 {
		return initialHistory()
	}
	return that.history
}

func (that GameState) Cursor() int {
	return that.cursor
}

func (that GameState) Len() int {
	return len(that.records())
}

// History returns a copy of the move records.
func (that GameState) History() []MoveRecord {
	records := that.records()
	history := make([]MoveRecord, len(records))
	copy(history, records)
	return history
}

func (that GameState) CurrentBoard() entity.Board {
	return that.records()[that.cursor].Board
}

// ActiveMark is X on even cursors and O on odd ones.
func (that GameState) ActiveMark() string {
	if that.cursor%2 == 0 {
		return entity.PlayerX
	}
	return entity.PlayerO
}

func (that GameState) Winner() entity.WinResult {
	return entity.ComputeWinner(that.CurrentBoard())
}

// IsDraw reports a full current board without a winner.
func (that GameState) IsDraw() bool {
	board := that.CurrentBoard()
	return board.IsFull() && !entity.ComputeWinner(board).HasWinner()
}

// CheckMove tells why ApplyMove would ignore the cell, or nil if it would not.
func (that GameState) CheckMove(cell int) error {
	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	board := that.CurrentBoard()
	if entity.ComputeWinner(board).HasWinner() {
		return ErrGameFinished
	}

	if board.IsOccupied(cell) {
		return ErrCellOccupied
	}

	return nil
}

// ApplyMove places the active mark on cell. Moves that CheckMove rejects are
// ignored and the same state is returned. Records after the cursor are dropped.
func (that GameState) ApplyMove(cell int) GameState {
	if err := that.CheckMove(cell); err != nil {
		return that
	}

	board := that.CurrentBoard()
	board[cell] = that.ActiveMark()

	records := that.records()
	history := make([]MoveRecord, that.cursor+1, that.cursor+2)
	copy(history, records[:that.cursor+1])
	history = append(history, MoveRecord{Board: board, Cell: cell})

	return GameState{
		history: history,
		cursor:  len(history) - 1,
	}
}

// JumpTo moves the cursor without touching history. Out of range indexes are ignored.
func (that GameState) JumpTo(index int) GameState {
	records := that.records()
	if index < 0 || index >= len(records) {
		return that
	}

	return GameState{
		history: records,
		cursor:  index,
	}
}

type gameStateJSON struct {
	History []MoveRecord `json:"history"`
	Cursor  int          `json:"cursor"`
}

func (that GameState) MarshalJSON() ([]byte, error) {
	return json.Marshal(gameStateJSON{
		History: that.records(),
		Cursor:  that.cursor,
	})
}

func (that *GameState) UnmarshalJSON(data []byte) error {
	var raw gameStateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal game state: %w", err)
	}

	if err := validateHistory(raw.History, raw.Cursor); err != nil {
		return err
	}

	that.history = raw.History
	that.cursor = raw.Cursor

	return nil
}

// validateHistory checks the invariants a stored history must satisfy.
func validateHistory(history []MoveRecord, cursor int) error {
	if len(history) == 0 {
		return fmt.Errorf("%w: empty history", apperror.ErrCorruptState)
	}

	if cursor < 0 || cursor >= len(history) {
		return fmt.Errorf("%w: cursor %d out of range", apperror.ErrCorruptState, cursor)
	}

	if history[0].Board != (entity.Board{}) || history[0].HasCell() {
		return fmt.Errorf("%w: record 0 is not the start state", apperror.ErrCorruptState)
	}

	for i := 1; i < len(history); i++ {
		prev, next := history[i-1], history[i]
		if entity.ComputeWinner(prev.Board).HasWinner() {
			return fmt.Errorf("%w: record %d follows a won board", apperror.ErrCorruptState, i)
		}

		if !entity.IsValidCell(next.Cell) || prev.Board.IsOccupied(next.Cell) {
			return fmt.Errorf("%w: record %d activates cell %d", apperror.ErrCorruptState, i, next.Cell)
		}

		expected := prev.Board
		if (i-1)%2 == 0 {
			expected[next.Cell] = entity.PlayerX
		} else {
			expected[next.Cell] = entity.PlayerO
		}

		if next.Board != expected {
			return fmt.Errorf("%w: record %d is not one move after record %d", apperror.ErrCorruptState, i, i-1)
		}
	}

	return nil
}
