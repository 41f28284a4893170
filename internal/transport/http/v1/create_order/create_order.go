package createorder

import (
	"log/slog"
	"net/http"

	"github.com/pomanager/po-admin/internal/service/services/formview"
	"github.com/pomanager/po-admin/internal/transport/http/v1/converters"
)

// CreateOrder handles the create-mode form submission: the whole order+items
// graph is persisted through one nested backend call. On failure the browser
// keeps its form state and may resubmit.
func CreateOrder(w http.ResponseWriter, r *http.Request, deps formview.Deps) {
	var req converters.SaveOrderRequest
	if !converters.DecodeJSON(w, r, &req) {
		return
	}

	form := formview.NewCreate(deps)
	req.ApplyToForm(form)

	if err := form.Submit(r.Context()); err != nil {
		converters.WriteError(w, converters.StatusFromError(err), "failed to save order")
		slog.Error("Error creating order", "error", err)

		return
	}

	converters.WriteJSON(w, http.StatusCreated, form.Snapshot())
}
