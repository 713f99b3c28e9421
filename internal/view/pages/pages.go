// Package pages renders view snapshots as HTML pages. Interactive elements
// are plain forms so every activation posts its intent back to the server.
//
// The components live in .templ files; run `templ generate` after editing them.
package pages

const (
	PathIndex      = "/"
	PathGame       = "/tictactoe"
	PathMove       = "/tictactoe/move"
	PathJump       = "/tictactoe/jump"
	PathOrder      = "/tictactoe/order"
	PathReset      = "/tictactoe/reset"
	PathProduct    = "/products"
	PathSessionEnd = "/session/end"
)

func reverseLabel(reversed bool) string {
	if reversed {
		return "Reverse order (on)"
	}
	return "Reverse order"
}
