package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/playground/internal/entity"
	"github.com/rocketscienceinc/playground/internal/session"
	"github.com/rocketscienceinc/playground/internal/view"
	"github.com/rocketscienceinc/playground/internal/view/pages"
)

const shutdownTimeout = 5 * time.Second

type demoUseCase interface {
	GetOrCreateSession(ctx context.Context, id string) (session.State, error)
	Snapshot(ctx context.Context, id string) (view.Snapshot, error)
	Dispatch(ctx context.Context, id string, events ...entity.Event) (view.Snapshot, error)
	EndSession(ctx context.Context, id string) error
}

type Server struct {
	logger     *slog.Logger
	demo       demoUseCase
	sessionTTL time.Duration
}

func New(logger *slog.Logger, demo demoUseCase, sessionTTL time.Duration) *Server {
	return &Server{
		logger:     logger.With("component", "rest"),
		demo:       demo,
		sessionTTL: sessionTTL,
	}
}

// Handler returns the routes of both demos.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.handlePing)
	mux.HandleFunc("GET /{$}", that.handleIndex)
	mux.HandleFunc("POST "+pages.PathSessionEnd, that.handleEndSession)

	mux.HandleFunc("GET "+pages.PathGame, that.handleGame)
	mux.HandleFunc("POST "+pages.PathMove, that.handleMove)
	mux.HandleFunc("POST "+pages.PathJump, that.handleJump)
	mux.HandleFunc("POST "+pages.PathOrder, that.handleReverseOrder)
	mux.HandleFunc("POST "+pages.PathReset, that.handleReset)

	mux.HandleFunc("GET "+pages.PathProduct, that.handleProducts)

	return mux
}

// Start - starts HTTP server and shuts it down when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
