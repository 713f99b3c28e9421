package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/playground/internal/apperror"
	"github.com/rocketscienceinc/playground/internal/entity"
)

func decodePayload(message *Message) (RequestPayload, error) {
	var payload RequestPayload
	if len(message.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return payload, fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	return payload, nil
}

// handleConnect replies with the current snapshot. A session_id in the
// payload rebinds the connection to that session.
func (that *Server) handleConnect(ctx context.Context, c *client, message *Message) error {
	log := that.logger.With("method", "handleConnect")

	payload, err := decodePayload(message)
	if err != nil {
		return that.sendErrorResponse(c, message.Action, err.Error())
	}

	if payload.SessionID != "" && payload.SessionID != c.sessionID {
		state, sessionErr := that.demo.GetOrCreateSession(ctx, payload.SessionID)
		if sessionErr != nil {
			log.Error("failed to get or create session", "error", sessionErr)
			return that.sendErrorResponse(c, message.Action, "failed to get the session")
		}

		c.sessionID = state.ID
	}

	snapshot, err := that.demo.Snapshot(ctx, c.sessionID)
	if err != nil {
		log.Error("failed to render snapshot", "error", err)
		return that.sendErrorResponse(c, message.Action, "failed to get the session")
	}

	log.Info("successfully connected", "sessionID", c.sessionID)

	return that.sendMessage(c, message.Action, snapshotPayload(snapshot))
}

// handleSessionEnd forgets the bound session and rebinds the connection to a
// fresh one.
func (that *Server) handleSessionEnd(ctx context.Context, c *client, message *Message) error {
	log := that.logger.With("method", "handleSessionEnd")

	err := that.demo.EndSession(ctx, c.sessionID)
	if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		log.Error("failed to end session", "error", err)
		return that.sendErrorResponse(c, message.Action, "failed to end the session")
	}

	state, err := that.demo.GetOrCreateSession(ctx, "")
	if err != nil {
		log.Error("failed to get or create session", "error", err)
		return that.sendErrorResponse(c, message.Action, "failed to get the session")
	}

	log.Info("session replaced", "old", c.sessionID, "new", state.ID)
	c.sessionID = state.ID

	snapshot, err := that.demo.Snapshot(ctx, c.sessionID)
	if err != nil {
		log.Error("failed to render snapshot", "error", err)
		return that.sendErrorResponse(c, message.Action, "failed to get the session")
	}

	return that.sendMessage(c, message.Action, snapshotPayload(snapshot))
}

func (that *Server) handleGameMove(ctx context.Context, c *client, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		return that.sendErrorResponse(c, message.Action, err.Error())
	}

	if payload.Cell == nil {
		return that.sendErrorResponse(c, message.Action, "cell is required")
	}

	return that.dispatch(ctx, c, message.Action, entity.MoveEvent(*payload.Cell))
}

func (that *Server) handleGameJump(ctx context.Context, c *client, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		return that.sendErrorResponse(c, message.Action, err.Error())
	}

	if payload.Index == nil {
		return that.sendErrorResponse(c, message.Action, "index is required")
	}

	return that.dispatch(ctx, c, message.Action, entity.JumpEvent(*payload.Index))
}

func (that *Server) handleGameReverse(ctx context.Context, c *client, message *Message) error {
	return that.dispatch(ctx, c, message.Action, entity.ReverseHistoryEvent())
}

func (that *Server) handleGameReset(ctx context.Context, c *client, message *Message) error {
	return that.dispatch(ctx, c, message.Action, entity.ResetGameEvent())
}

// handleProductsFilter updates whichever filter fields are present.
func (that *Server) handleProductsFilter(ctx context.Context, c *client, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		return that.sendErrorResponse(c, message.Action, err.Error())
	}

	var events []entity.Event
	if payload.Text != nil {
		events = append(events, entity.FilterTextEvent(*payload.Text))
	}
	if payload.InStockOnly != nil {
		events = append(events, entity.InStockOnlyEvent(*payload.InStockOnly))
	}

	if len(events) == 0 {
		return that.sendErrorResponse(c, message.Action, "text or in_stock_only is required")
	}

	return that.dispatch(ctx, c, message.Action, events...)
}

func (that *Server) dispatch(ctx context.Context, c *client, action string, events ...entity.Event) error {
	log := that.logger.With("method", "dispatch", "action", action)

	snapshot, err := that.demo.Dispatch(ctx, c.sessionID, events...)
	if errors.Is(err, apperror.ErrUnknownEvent) || errors.Is(err, apperror.ErrSessionNotFound) {
		return that.sendErrorResponse(c, action, err.Error())
	}

	if err != nil {
		log.Error("failed to dispatch", "error", err)
		return that.sendErrorResponse(c, action, "failed to update the session")
	}

	return that.sendMessage(c, action, snapshotPayload(snapshot))
}
