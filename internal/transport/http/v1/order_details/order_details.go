package orderdetails

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/pomanager/po-admin/internal/dal/interfaces/iauditrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iorderitemrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iorderrepo"
	"github.com/pomanager/po-admin/internal/service/compare"
	"github.com/pomanager/po-admin/internal/service/models/orderitem"
	"github.com/pomanager/po-admin/internal/service/services/detailview"
	"github.com/pomanager/po-admin/internal/transport/http/v1/converters"
)

type orderDetailsRequest struct {
	Name      string `schema:"name"`
	Unit      string `schema:"unit"`
	SortField string `schema:"sortField"`
	SortDir   string `schema:"sortDir"`
}

// OrderDetails serves the order detail screen: one order plus its line
// items, filtered server-side by name/unit and re-sorted client-side.
func OrderDetails(
	w http.ResponseWriter,
	r *http.Request,
	orderID int64,
	orderRepo iorderrepo.IOrderRepository,
	itemRepo iorderitemrepo.IOrderItemRepository,
	auditRepo iauditrepo.IAuditRepository,
) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	req := &orderDetailsRequest{}
	if err := decoder.Decode(req, r.URL.Query()); err != nil {
		converters.WriteError(w, http.StatusBadRequest, "invalid query parameters")
		slog.Error("Error decoding order details request", "error", err)

		return
	}

	view := detailview.NewDetailView(orderID, orderRepo, itemRepo, auditRepo)
	view.SetItemFilter(req.Name, req.Unit)

	field, _ := orderitem.ParseSortField(req.SortField)
	view.SetSort(field, compare.ParseDirection(req.SortDir))

	if err := view.Activate(r.Context()); err != nil {
		converters.WriteError(w, converters.StatusFromError(err), "failed to load order")
		slog.Error("Error loading order details", "order_id", orderID, "error", err)

		return
	}

	converters.WriteJSON(w, http.StatusOK, view.Snapshot())
}
