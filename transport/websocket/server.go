package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/playground/internal/entity"
	"github.com/rocketscienceinc/playground/internal/pkg"
	"github.com/rocketscienceinc/playground/internal/session"
	"github.com/rocketscienceinc/playground/internal/view"
)

const (
	maxMessageSize  = 4096
	shutdownTimeout = 5 * time.Second
)

type demoUseCase interface {
	GetOrCreateSession(ctx context.Context, id string) (session.State, error)
	Snapshot(ctx context.Context, id string) (view.Snapshot, error)
	Dispatch(ctx context.Context, id string, events ...entity.Event) (view.Snapshot, error)
	EndSession(ctx context.Context, id string) error
}

// client is one open connection bound to a session.
type client struct {
	conn      *websocket.Conn
	sessionID string
}

type handlerFunc func(ctx context.Context, c *client, message *Message) error

type Server struct {
	logger     *slog.Logger
	demo       demoUseCase
	sessionTTL time.Duration
	upgrader   websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, demo demoUseCase, sessionTTL time.Duration) *Server {
	server := &Server{
		logger:     logger.With("component", "websocket"),
		demo:       demo,
		sessionTTL: sessionTTL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionConnect] = server.handleConnect
	server.handlers[ActionGameMove] = server.handleGameMove
	server.handlers[ActionGameJump] = server.handleGameJump
	server.handlers[ActionGameReverse] = server.handleGameReverse
	server.handlers[ActionGameReset] = server.handleGameReset
	server.handlers[ActionProductsFilter] = server.handleProductsFilter
	server.handlers[ActionSessionEnd] = server.handleSessionEnd

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server and shuts it down when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	if !websocket.IsWebSocketUpgrade(req) {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	ctx := req.Context()

	state, err := that.demo.GetOrCreateSession(ctx, sessionCookie(req))
	if err != nil {
		log.Error("failed to get or create session", "error", err)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	header := http.Header{}
	header.Add("Set-Cookie", pkg.SessionCookie(state.ID, that.sessionTTL, time.Now()).String())

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	log.Info("WebSocket connection established", "sessionID", state.ID)

	if err = that.handleMessages(ctx, &client{conn: conn, sessionID: state.ID}); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects
// or ctx is done.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = c.conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				log.Info("server is shutting down, connection closed", "sessionID", c.sessionID)
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("client disconnected", "sessionID", c.sessionID)
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = that.sendErrorResponse(c, ActionError, "malformed message"); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = that.sendErrorResponse(c, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			return fmt.Errorf("failed to handle %s: %w", message.Action, err)
		}
	}
}

func sessionCookie(req *http.Request) string {
	cookie, err := req.Cookie(pkg.SessionCookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}
