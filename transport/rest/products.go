package rest

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/rocketscienceinc/playground/internal/entity"
	"github.com/rocketscienceinc/playground/internal/view"
	"github.com/rocketscienceinc/playground/internal/view/pages"
)

// handleProducts renders the table. A submitted search form (q present)
// updates both filter fields before rendering.
func (that *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	id, err := that.sessionID(w, r)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	query := r.URL.Query()

	var snapshot view.Snapshot
	if query.Has("q") {
		snapshot, err = that.demo.Dispatch(r.Context(), id,
			entity.FilterTextEvent(query.Get("q")),
			entity.InStockOnlyEvent(query.Get("stock") == "on"),
		)
	} else {
		snapshot, err = that.demo.Snapshot(r.Context(), id)
	}

	if err != nil {
		that.writeError(w, r, err)
		return
	}

	templ.Handler(pages.ProductsPage(snapshot.Products)).ServeHTTP(w, r)
}
