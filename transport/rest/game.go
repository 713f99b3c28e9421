package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/rocketscienceinc/playground/internal/apperror"
	"github.com/rocketscienceinc/playground/internal/entity"
	"github.com/rocketscienceinc/playground/internal/view/pages"
)

func (that *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	templ.Handler(pages.IndexPage()).ServeHTTP(w, r)
}

func (that *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	id, err := that.sessionID(w, r)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	snapshot, err := that.demo.Snapshot(r.Context(), id)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	templ.Handler(pages.GamePage(snapshot.Game)).ServeHTTP(w, r)
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	cell, err := formInt(r, "cell")
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.dispatchAndRedirect(w, r, entity.MoveEvent(cell))
}

func (that *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	index, err := formInt(r, "index")
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.dispatchAndRedirect(w, r, entity.JumpEvent(index))
}

func (that *Server) handleReverseOrder(w http.ResponseWriter, r *http.Request) {
	that.dispatchAndRedirect(w, r, entity.ReverseHistoryEvent())
}

func (that *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	that.dispatchAndRedirect(w, r, entity.ResetGameEvent())
}

func (that *Server) dispatchAndRedirect(w http.ResponseWriter, r *http.Request, event entity.Event) {
	id, err := that.sessionID(w, r)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	if _, err = that.demo.Dispatch(r.Context(), id, event); err != nil {
		that.writeError(w, r, err)
		return
	}

	http.Redirect(w, r, pages.PathGame, http.StatusSeeOther)
}

func formInt(r *http.Request, key string) (int, error) {
	value, err := strconv.Atoi(r.PostFormValue(key))
	if err != nil {
		return 0, fmt.Errorf("%w: field %s: %w", apperror.ErrInvalidPayload, key, err)
	}

	return value, nil
}
