package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/playground/internal/view"
)

const (
	ActionConnect        = "connect"
	ActionGameMove       = "game:move"
	ActionGameJump       = "game:jump"
	ActionGameReverse    = "game:reverse"
	ActionGameReset      = "game:reset"
	ActionProductsFilter = "products:filter"
	ActionSessionEnd     = "session:end"
	ActionError          = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	SessionID   string  `json:"session_id,omitempty"`
	Cell        *int    `json:"cell,omitempty"`
	Index       *int    `json:"index,omitempty"`
	Text        *string `json:"text,omitempty"`
	InStockOnly *bool   `json:"in_stock_only,omitempty"`
}

type ResponsePayload struct {
	SessionID string                 `json:"session_id,omitempty"`
	Game      *view.GameView         `json:"game,omitempty"`
	Products  *view.ProductTableView `json:"products,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

func snapshotPayload(snapshot view.Snapshot) ResponsePayload {
	return ResponsePayload{
		SessionID: snapshot.SessionID,
		Game:      &snapshot.Game,
		Products:  &snapshot.Products,
	}
}

func (that *Server) sendMessage(c *client, action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{
		Action:  action,
		Payload: payloadBytes,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = c.conn.WriteMessage(websocket.TextMessage, response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(c *client, action, errorMsg string) error {
	payload := ResponsePayload{SessionID: c.sessionID, Error: errorMsg}
	if err := that.sendMessage(c, action, payload); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
