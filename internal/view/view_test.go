package view

import (
	"testing"

	"github.com/rocketscienceinc/playground/internal/entity"
	"github.com/rocketscienceinc/playground/internal/products"
	"github.com/rocketscienceinc/playground/internal/session"
	"github.com/rocketscienceinc/playground/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(cells ...int) tictactoe.GameState {
	state := tictactoe.NewGameState()
	for _, cell := range cells {
		state = state.ApplyMove(cell)
	}
	return state
}

func labels(entries []HistoryEntry) []string {
	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		result = append(result, entry.Label)
	}
	return result
}

func TestRenderBoard(t *testing.T) {
	t.Run("Shows the next player when nobody has won", func(t *testing.T) {
		// Given: a board after one X move
		game := play(0)

		// When: rendering it
		board := RenderBoard(game, Options{})

		// Then: status names O and the cells carry their marks and intents
		assert.Equal(t, "Next player: O", board.Status)
		assert.Equal(t, entity.PlayerX, board.Cells[0].Mark)
		assert.Equal(t, entity.EmptyCell, board.Cells[1].Mark)
		assert.Equal(t, entity.MoveEvent(7), board.Cells[7].Intent)
		assert.Empty(t, board.Winner)
	})

	t.Run("Highlights the winning line", func(t *testing.T) {
		// Given: X completed the top row
		game := play(0, 3, 1, 4, 2)

		// When: rendering it
		board := RenderBoard(game, Options{})

		// Then: status names the winner and only the top row is highlighted
		assert.Equal(t, "X is winner of the game", board.Status)
		assert.Equal(t, entity.PlayerX, board.Winner)
		for i, cell := range board.Cells {
			assert.Equal(t, i <= 2, cell.InWinLine, "cell %d", i)
		}
	})

	t.Run("Full board without winner keeps the next player status by default", func(t *testing.T) {
		// Given: a drawn game
		game := play(0, 1, 2, 4, 3, 5, 7, 6, 8)

		// When: rendering with default options
		board := RenderBoard(game, Options{})

		// Then: status still reads like an ongoing game
		assert.Equal(t, "Next player: O", board.Status)
		assert.False(t, board.Draw)
	})

	t.Run("Full board without winner announces a draw when enabled", func(t *testing.T) {
		// Given: a drawn game
		game := play(0, 1, 2, 4, 3, 5, 7, 6, 8)

		// When: rendering with AnnounceDraw
		board := RenderBoard(game, Options{AnnounceDraw: true})

		// Then: status reports the draw
		assert.Equal(t, "Draw: no more moves", board.Status)
		assert.True(t, board.Draw)
	})

	t.Run("Draw follows the cursor, not the last record", func(t *testing.T) {
		// Given: a drawn game viewed at move 4
		game := play(0, 1, 2, 4, 3, 5, 7, 6, 8).JumpTo(4)

		// When: rendering with AnnounceDraw
		board := RenderBoard(game, Options{AnnounceDraw: true})

		// Then: the earlier board is still in play
		assert.Equal(t, "Next player: X", board.Status)
		assert.False(t, board.Draw)
	})
}

func TestRenderHistory(t *testing.T) {
	t.Run("Fresh game shows the current move only", func(t *testing.T) {
		// Given: a new game
		game := tictactoe.NewGameState()

		// When: rendering history
		entries := RenderHistory(game.History(), game.Cursor(), false)

		// Then: one entry for the current start state
		assert.Equal(t, []string{"You're at move #0"}, labels(entries))
		assert.True(t, entries[0].Current)
	})

	t.Run("Labels start, previous moves and the current move", func(t *testing.T) {
		// Given: X at 0, O at 4, X at 8
		game := play(0, 4, 8)

		// When: rendering history
		entries := RenderHistory(game.History(), game.Cursor(), false)

		// Then: labels follow the position of each move
		assert.Equal(t, []string{
			"Go back to start state",
			"Go back to state #1 where was clicked at (1, 1) cell",
			"Go back to state #2 where was clicked at (2, 2) cell",
			"You're at move #3",
		}, labels(entries))
		assert.Equal(t, entity.JumpEvent(2), entries[2].Intent)
	})

	t.Run("After a jump the cursor entry is the current one", func(t *testing.T) {
		// Given: three moves and a jump to move 1
		game := play(0, 4, 8).JumpTo(1)

		// When: rendering history
		entries := RenderHistory(game.History(), game.Cursor(), false)

		// Then: move 1 is current and later moves are still listed
		require.Len(t, entries, 4)
		assert.Equal(t, "You're at move #1", entries[1].Label)
		assert.True(t, entries[1].Current)
		assert.False(t, entries[3].Current)
		assert.Equal(t, "Go back to state #3 where was clicked at (3, 3) cell", entries[3].Label)
	})

	t.Run("Reversed order only changes display order", func(t *testing.T) {
		// Given: two moves
		game := play(0, 4)
		history := game.History()

		// When: rendering forward and reversed
		forward := RenderHistory(history, game.Cursor(), false)
		reversed := RenderHistory(history, game.Cursor(), true)

		// Then: reversed is the mirror of forward and indexes are preserved
		require.Len(t, reversed, len(forward))
		for i := range forward {
			assert.Equal(t, forward[i], reversed[len(reversed)-1-i])
		}
		assert.Equal(t, 2, reversed[0].Index)
		assert.Equal(t, history, game.History())
		assert.Equal(t, 2, game.Cursor())
	})
}

func TestRenderGame(t *testing.T) {
	// Given: two moves
	game := play(0, 4)

	// When: rendering the game reversed
	gameView := RenderGame(game, true, Options{})

	// Then: board and history both reflect the state
	assert.Equal(t, "Next player: X", gameView.Board.Status)
	assert.True(t, gameView.Reversed)
	assert.Equal(t, "You're at move #2", gameView.History[0].Label)
}

func TestRenderProductTable(t *testing.T) {
	t.Run("Category rows precede their products", func(t *testing.T) {
		// When: rendering the full catalog
		table := RenderProductTable(products.Catalog(), products.FilterState{})

		// Then: two headers and six product rows in grouped order
		require.Len(t, table.Rows, 8)
		assert.Equal(t, ProductRow{Kind: RowCategory, Category: "Fruits"}, table.Rows[0])
		assert.Equal(t, "Apple", table.Rows[1].Name)
		assert.Equal(t, "Passionfruit", table.Rows[2].Name)
		assert.True(t, table.Rows[2].OutOfStock)
		assert.Equal(t, "Dragonfruit", table.Rows[3].Name)
		assert.Equal(t, ProductRow{Kind: RowCategory, Category: "Vegetables"}, table.Rows[4])
		assert.Equal(t, "Pumpkin", table.Rows[6].Name)
		assert.Equal(t, "$4", table.Rows[6].Price)
	})

	t.Run("Empty result has no rows", func(t *testing.T) {
		table := RenderProductTable(products.Catalog(), products.FilterState{Text: "meat"})

		assert.Empty(t, table.Rows)
		assert.Equal(t, "meat", table.Filter.Text)
	})
}

func TestRender(t *testing.T) {
	// Given: a session with one move and a filter
	state, err := session.ReduceAll(session.New("abc"), entity.MoveEvent(4), entity.InStockOnlyEvent(true))
	require.NoError(t, err)

	// When: rendering the snapshot
	snapshot := Render(state, products.Catalog(), Options{})

	// Then: both demos are rendered for the session
	assert.Equal(t, "abc", snapshot.SessionID)
	assert.Equal(t, entity.PlayerX, snapshot.Game.Board.Cells[4].Mark)
	assert.Len(t, snapshot.Products.Rows, 6)
}
