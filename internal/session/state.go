// Package session holds the per-browser state of both demos and the reducer
// that is the only way to change it.
package session

import (
	"fmt"

	"github.com/rocketscienceinc/playground/internal/apperror"
	"github.com/rocketscienceinc/playground/internal/entity"
	"github.com/rocketscienceinc/playground/internal/products"
	"github.com/rocketscienceinc/playground/internal/tictactoe"
)

type State struct {
	ID             string               `json:"id"`
	Game           tictactoe.GameState  `json:"game"`
	ReverseHistory bool                 `json:"reverse_history"`
	Filter         products.FilterState `json:"filter"`
}

func New(id string) State {
	return State{
		ID:   id,
		Game: tictactoe.NewGameState(),
	}
}

// Reduce returns the state after event. The input state is never modified.
func Reduce(state State, event entity.Event) (State, error) {
	switch event.Kind {
	case entity.EventMove:
		state.Game = state.Game.ApplyMove(event.Cell)
	case entity.EventJump:
		state.Game = state.Game.JumpTo(event.Index)
	case entity.EventReverseHistory:
		state.ReverseHistory = !state.ReverseHistory
	case entity.EventResetGame:
		state.Game = tictactoe.NewGameState()
	case entity.EventFilterText:
		state.Filter.Text = event.Text
	case entity.EventInStockOnly:
		state.Filter.InStockOnly = event.Flag
	default:
		return state, fmt.Errorf("%w: %q", apperror.ErrUnknownEvent, event.Kind)
	}

	return state, nil
}

// ReduceAll applies events in order and stops at the first unknown one.
func ReduceAll(state State, events ...entity.Event) (State, error) {
	for _, event := range events {
		next, err := Reduce(state, event)
		if err != nil {
			return state, err
		}
		state = next
	}

	return state, nil
}
