// Package view turns read-only state into render snapshots. Every function
// here is pure: the same input always yields the same snapshot and nothing
// is mutated.
package view

import (
	"fmt"

	"github.com/rocketscienceinc/playground/internal/entity"
	"github.com/rocketscienceinc/playground/internal/products"
	"github.com/rocketscienceinc/playground/internal/session"
	"github.com/rocketscienceinc/playground/internal/tictactoe"
)

const (
	RowCategory = "category"
	RowProduct  = "product"
)

// Options tune rendering. The zero value keeps a full board announcing the next player.
type Options struct {
	// AnnounceDraw switches the status on a full board without a winner
	// from "Next player" to a draw message.
	AnnounceDraw bool
}

type Cell struct {
	Index     int          `json:"index"`
	Mark      string       `json:"mark"`
	InWinLine bool         `json:"in_win_line"`
	Intent    entity.Event `json:"intent"`
}

type BoardView struct {
	Cells  [entity.BoardSize]Cell `json:"cells"`
	Status string                 `json:"status"`
	Winner string                 `json:"winner,omitempty"`
	Draw   bool                   `json:"draw,omitempty"`
}

type HistoryEntry struct {
	Index   int          `json:"index"`
	Label   string       `json:"label"`
	Current bool         `json:"current"`
	Intent  entity.Event `json:"intent"`
}

type GameView struct {
	Board    BoardView      `json:"board"`
	History  []HistoryEntry `json:"history"`
	Reversed bool           `json:"reversed"`
}

type ProductRow struct {
	Kind       string `json:"kind"`
	Category   string `json:"category"`
	Name       string `json:"name,omitempty"`
	Price      string `json:"price,omitempty"`
	OutOfStock bool   `json:"out_of_stock,omitempty"`
}

type ProductTableView struct {
	Filter products.FilterState `json:"filter"`
	Rows   []ProductRow         `json:"rows"`
}

// Snapshot is everything a client needs to draw both demos.
type Snapshot struct {
	SessionID string           `json:"session_id"`
	Game      GameView         `json:"game"`
	Products  ProductTableView `json:"products"`
}

func StatusText(win entity.WinResult, next string, draw bool) string {
	switch {
	case win.HasWinner():
		return fmt.Sprintf("%s is winner of the game", win.Mark)
	case draw:
		return "Draw: no more moves"
	default:
		return fmt.Sprintf("Next player: %s", next)
	}
}

// RenderBoard draws the current board of game with its status line.
func RenderBoard(game tictactoe.GameState, opts Options) BoardView {
	var boardView BoardView

	win := game.Winner()
	for i, mark := range game.CurrentBoard() {
		boardView.Cells[i] = Cell{
			Index:     i,
			Mark:      mark,
			InWinLine: win.InLine(i),
			Intent:    entity.MoveEvent(i),
		}
	}

	draw := opts.AnnounceDraw && game.IsDraw()

	boardView.Winner = win.Mark
	boardView.Draw = draw
	boardView.Status = StatusText(win, game.ActiveMark(), draw)

	return boardView
}

func HistoryLabel(record tictactoe.MoveRecord, index, cursor int) string {
	if index == cursor {
		return fmt.Sprintf("You're at move #%d", index)
	}

	if index == 0 || !record.HasCell() {
		return "Go back to start state"
	}

	row, col := entity.CellPosition(record.Cell)

	return fmt.Sprintf("Go back to state #%d where was clicked at (%d, %d) cell", index, row, col)
}

// RenderHistory lists one entry per record. reversed only changes display order.
func RenderHistory(history []tictactoe.MoveRecord, cursor int, reversed bool) []HistoryEntry {
	entries := make([]HistoryEntry, len(history))

	for i, record := range history {
		position := i
		if reversed {
			position = len(history) - 1 - i
		}

		entries[position] = HistoryEntry{
			Index:   i,
			Label:   HistoryLabel(record, i, cursor),
			Current: i == cursor,
			Intent:  entity.JumpEvent(i),
		}
	}

	return entries
}

func RenderGame(game tictactoe.GameState, reversed bool, opts Options) GameView {
	return GameView{
		Board:    RenderBoard(game, opts),
		History:  RenderHistory(game.History(), game.Cursor(), reversed),
		Reversed: reversed,
	}
}

// RenderProductTable emits a category row before each group of product rows.
func RenderProductTable(catalog []entity.Product, filter products.FilterState) ProductTableView {
	rows := make([]ProductRow, 0, len(catalog)+2)

	for _, group := range products.Table(catalog, filter) {
		rows = append(rows, ProductRow{Kind: RowCategory, Category: group.Category})

		for _, product := range group.Products {
			rows = append(rows, ProductRow{
				Kind:       RowProduct,
				Category:   product.Category,
				Name:       product.Name,
				Price:      product.Price,
				OutOfStock: !product.Stocked,
			})
		}
	}

	return ProductTableView{
		Filter: filter,
		Rows:   rows,
	}
}

func Render(state session.State, catalog []entity.Product, opts Options) Snapshot {
	return Snapshot{
		SessionID: state.ID,
		Game:      RenderGame(state.Game, state.ReverseHistory, opts),
		Products:  RenderProductTable(catalog, state.Filter),
	}
}
