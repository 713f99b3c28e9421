package rest

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rocketscienceinc/playground/internal/apperror"
	"github.com/rocketscienceinc/playground/internal/pkg"
	"github.com/rocketscienceinc/playground/internal/view/pages"
)

// sessionID resolves the session of the request and refreshes its cookie.
func (that *Server) sessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	log := that.logger.With("method", "sessionID")

	var id string
	if cookie, err := r.Cookie(pkg.SessionCookieName); err == nil {
		id = cookie.Value
	}

	state, err := that.demo.GetOrCreateSession(r.Context(), id)
	if err != nil {
		return "", fmt.Errorf("failed to get or create session: %w", err)
	}

	if state.ID != id {
		log.Info("session cookie not found, new one created", "cookie", state.ID)
	}

	http.SetCookie(w, pkg.SessionCookie(state.ID, that.sessionTTL, time.Now()))

	return state.ID, nil
}

// handleEndSession forgets the session and drops its cookie.
func (that *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(pkg.SessionCookieName); err == nil && pkg.IsValidSessionID(cookie.Value) {
		err = that.demo.EndSession(r.Context(), cookie.Value)
		if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
			that.writeError(w, r, err)
			return
		}
	}

	http.SetCookie(w, pkg.ExpiredSessionCookie())
	http.Redirect(w, r, pages.PathIndex, http.StatusSeeOther)
}

func (that *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrInvalidPayload), errors.Is(err, apperror.ErrUnknownEvent):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrSessionNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}

	http.Error(w, http.StatusText(status), status)
}
