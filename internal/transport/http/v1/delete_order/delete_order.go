package deleteorder

import (
	"log/slog"
	"net/http"

	"github.com/pomanager/po-admin/internal/dal/interfaces/iauditrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iorderitemrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iorderrepo"
	"github.com/pomanager/po-admin/internal/service/services/detailview"
	"github.com/pomanager/po-admin/internal/transport/http/v1/converters"
)

// DeleteOrder removes an order from the detail screen. Line-item removal is
// cascaded server-side. On failure the caller stays on the detail screen.
func DeleteOrder(
	w http.ResponseWriter,
	r *http.Request,
	orderID int64,
	orderRepo iorderrepo.IOrderRepository,
	itemRepo iorderitemrepo.IOrderItemRepository,
	auditRepo iauditrepo.IAuditRepository,
) {
	view := detailview.NewDetailView(orderID, orderRepo, itemRepo, auditRepo)

	if err := view.Delete(r.Context()); err != nil {
		converters.WriteError(w, converters.StatusFromError(err), "failed to delete order")
		slog.Error("Error deleting order", "order_id", orderID, "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
