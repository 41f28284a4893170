package updateorder

import (
	"log/slog"
	"net/http"

	"github.com/pomanager/po-admin/internal/service/services/formview"
	"github.com/pomanager/po-admin/internal/transport/http/v1/converters"
)

// UpdateOrder handles the edit-mode form submission: one full-replace order
// update, then per-item reconciliation of the submitted collection. Items
// the user removed are simply absent from the submission and get no backend
// call. A partial item failure surfaces as a single aggregate error; the
// browser keeps its form state and may resubmit.
func UpdateOrder(
	w http.ResponseWriter,
	r *http.Request,
	orderID int64,
	deps formview.Deps,
) {
	var req converters.SaveOrderRequest
	if !converters.DecodeJSON(w, r, &req) {
		return
	}

	form := formview.NewEdit(orderID, deps)
	req.ApplyToForm(form)

	if err := form.Submit(r.Context()); err != nil {
		converters.WriteError(w, converters.StatusFromError(err), "failed to save order")
		slog.Error("Error updating order", "order_id", orderID, "error", err)

		return
	}

	converters.WriteJSON(w, http.StatusOK, form.Snapshot())
}
