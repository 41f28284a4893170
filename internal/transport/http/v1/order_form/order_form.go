package orderform

import (
	"log/slog"
	"net/http"

	"github.com/pomanager/po-admin/internal/service/services/formview"
	"github.com/pomanager/po-admin/internal/transport/http/v1/converters"
)

// OrderForm serves the form screen activation. Create mode loads the
// provider collection; edit mode additionally seeds the order fields and
// the line-item collection from backend data.
func OrderForm(
	w http.ResponseWriter,
	r *http.Request,
	orderID *int64,
	deps formview.Deps,
) {
	var form *formview.FormView
	if orderID != nil {
		form = formview.NewEdit(*orderID, deps)
	} else {
		form = formview.NewCreate(deps)
	}

	if err := form.Activate(r.Context()); err != nil {
		converters.WriteError(w, converters.StatusFromError(err), "failed to load order form")
		slog.Error("Error activating order form", "error", err)

		return
	}

	converters.WriteJSON(w, http.StatusOK, form.Snapshot())
}
