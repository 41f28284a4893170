package converters

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pomanager/po-admin/internal/dal/backend"
	"github.com/pomanager/po-admin/internal/service/models/isodate"
	"github.com/pomanager/po-admin/internal/service/models/orderitem"
	"github.com/pomanager/po-admin/internal/service/reconcile"
	"github.com/pomanager/po-admin/internal/service/services/formview"
)

// SaveOrderRequest is the form submission payload: the order fields plus the
// browser's full copy of the line-item collection. Items carrying an id are
// persisted lines; items without one are locally created.
type SaveOrderRequest struct {
	Number     string        `json:"number"`
	Date       isodate.Date  `json:"date"`
	ProviderID int64         `json:"providerId"`
	Items      []ItemRequest `json:"items"`
}

// ItemRequest is one submitted line item.
type ItemRequest struct {
	ID       *int64          `json:"id,omitempty"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// ApplyToForm copies the submitted order fields and item collection into the
// form view model. Persisted items seed the collection as existing; the rest
// enter through add+edit so the reconciler tags them new.
func (req SaveOrderRequest) ApplyToForm(form *formview.FormView) {
	form.SetNumber(req.Number)
	form.SetDate(req.Date)
	form.SetProviderID(req.ProviderID)

	var existing []orderitem.LineItem
	for _, item := range req.Items {
		if item.ID != nil {
			existing = append(existing, orderitem.LineItem{
				ID:       item.ID,
				Name:     item.Name,
				Quantity: item.Quantity,
				Unit:     item.Unit,
			})
		}
	}
	form.SeedItems(existing)

	for _, item := range req.Items {
		if item.ID != nil {
			continue
		}
		ref := form.AddItem()
		name, quantity, unit := item.Name, item.Quantity, item.Unit
		_ = form.EditItem(ref, reconcile.Patch{
			Name:     &name,
			Quantity: &quantity,
			Unit:     &unit,
		})
	}
}

// DecodeJSON decodes a request body, answering 400 on malformed input.
// It reports whether decoding succeeded.
func DecodeJSON(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		slog.Error("Error decoding request body", "error", err)

		return false
	}

	return true
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// WriteError writes a JSON error envelope.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// StatusFromError maps an error from the service layer to a response status:
// upstream 404s pass through, other upstream failures surface as 502.
func StatusFromError(err error) int {
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}

		return http.StatusBadGateway
	}

	var commitErr *reconcile.CommitError
	if errors.As(err, &commitErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
