package listorders

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/pomanager/po-admin/internal/dal/interfaces/iorderrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iproviderrepo"
	"github.com/pomanager/po-admin/internal/service/compare"
	"github.com/pomanager/po-admin/internal/service/models/isodate"
	"github.com/pomanager/po-admin/internal/service/models/order"
	"github.com/pomanager/po-admin/internal/service/services/listview"
	"github.com/pomanager/po-admin/internal/transport/http/v1/converters"
)

type listOrdersRequest struct {
	Number      string  `schema:"number"`
	StartDate   string  `schema:"startDate"`
	EndDate     string  `schema:"endDate"`
	ProviderIDs []int64 `schema:"providerIds"`
	SortField   string  `schema:"sortField"`
	SortDir     string  `schema:"sortDir"`
}

// filterKeys are the parameters that override the default date-range filter.
var filterKeys = []string{"number", "startDate", "endDate", "providerIds"}

// ListOrders serves the order list screen: filtered server-side, re-sorted
// client-side, provider names resolved against the loaded collection.
func ListOrders(
	w http.ResponseWriter,
	r *http.Request,
	orderRepo iorderrepo.IOrderRepository,
	providerRepo iproviderrepo.IProviderRepository,
) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	req := &listOrdersRequest{}
	if err := decoder.Decode(req, r.URL.Query()); err != nil {
		converters.WriteError(w, http.StatusBadRequest, "invalid query parameters")
		slog.Error("Error decoding list orders request", "error", err)

		return
	}

	view := listview.NewListView(orderRepo, providerRepo)

	if hasFilterParams(r) {
		query := order.Query{
			Number:      req.Number,
			ProviderIDs: req.ProviderIDs,
		}
		// Malformed dates are passed through empty; the backend validates.
		query.StartDate, _ = isoOrZero(req.StartDate)
		query.EndDate, _ = isoOrZero(req.EndDate)
		view.SetQuery(query)
	}

	field, _ := order.ParseSortField(req.SortField)
	view.SetSort(field, compare.ParseDirection(req.SortDir))

	view.Refresh(r.Context())

	converters.WriteJSON(w, http.StatusOK, view.Snapshot())
}

func isoOrZero(s string) (isodate.Date, error) {
	if s == "" {
		return isodate.Date{}, nil
	}

	return isodate.Parse(s)
}

func hasFilterParams(r *http.Request) bool {
	query := r.URL.Query()
	for _, key := range filterKeys {
		if query.Has(key) {
			return true
		}
	}

	return false
}
