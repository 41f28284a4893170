package listview

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pomanager/po-admin/internal/dal/interfaces/iorderrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iproviderrepo"
	"github.com/pomanager/po-admin/internal/service/compare"
	"github.com/pomanager/po-admin/internal/service/models/order"
	"github.com/pomanager/po-admin/internal/service/models/provider"
)

// Phase is the screen lifecycle state.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
)

// ListView is the view model of the order list screen. It owns its own copy
// of the order and provider collections; nothing is shared across screens.
// The server-side filter and the client-side sort are two independent knobs:
// changing the sort re-orders the collection that last finished loading
// without touching the backend.
type ListView struct {
	mu           sync.Mutex
	orderRepo    iorderrepo.IOrderRepository
	providerRepo iproviderrepo.IProviderRepository

	phase     Phase
	query     order.Query
	sortField order.SortField
	sortDir   compare.Direction
	orders    []order.Order
	providers []provider.Provider

	// gen guards against a slow, stale orders response clobbering the
	// result of a newer request.
	gen uint64
}

// NewListView constructs the view model with the default filter (last
// calendar month through today, computed once here) and the default sort
// (id ascending).
func NewListView(
	orderRepo iorderrepo.IOrderRepository,
	providerRepo iproviderrepo.IProviderRepository,
) *ListView {
	return &ListView{
		orderRepo:    orderRepo,
		providerRepo: providerRepo,
		phase:        PhaseLoading,
		query:        order.DefaultQuery(),
		sortField:    order.SortByID,
		sortDir:      compare.Asc,
	}
}

// SetQuery replaces the filter criteria for the next Refresh.
func (v *ListView) SetQuery(q order.Query) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = q
}

// SetSort changes the client-side sort. No backend query is issued.
func (v *ListView) SetSort(field order.SortField, dir compare.Direction) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sortField = field
	v.sortDir = dir
}

// Refresh loads orders and providers concurrently. A fetch failure is
// recovered locally: it is logged and the view keeps its prior (or empty)
// collections. A response that lost the race against a newer Refresh is
// discarded.
func (v *ListView) Refresh(ctx context.Context) {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	query := v.query
	v.mu.Unlock()

	var orders []order.Order
	var providers []provider.Provider

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := v.orderRepo.Query(gctx, query)
		if err != nil {
			return err
		}
		orders = loaded

		return nil
	})
	g.Go(func() error {
		loaded, err := v.providerRepo.List(gctx)
		if err != nil {
			return err
		}
		providers = loaded

		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Failed to load order list", "error", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.gen {
		slog.Debug("Discarding stale order list response", "generation", gen)

		return
	}

	if orders != nil {
		v.orders = orders
	}
	if providers != nil {
		v.providers = providers
	}
	v.phase = PhaseReady
}

// Row is one rendered line of the order table.
type Row struct {
	Order        order.Order `json:"order"`
	ProviderName string      `json:"providerName"`
}

// Snapshot is the rendered state of the list screen.
type Snapshot struct {
	Phase     Phase               `json:"phase"`
	Query     order.Query         `json:"query"`
	SortField order.SortField     `json:"sortField"`
	SortDir   compare.Direction   `json:"sortDir"`
	Rows      []Row               `json:"rows"`
	Providers []provider.Provider `json:"providers"`
}

// Snapshot re-sorts the loaded collection under the current sort and
// resolves provider names by linear lookup, falling back to the raw id.
func (v *ListView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	sorted := order.Sort(v.orders, v.sortField, v.sortDir)
	rows := make([]Row, len(sorted))
	for i, o := range sorted {
		rows[i] = Row{
			Order:        o,
			ProviderName: provider.ResolveName(v.providers, o.ProviderID),
		}
	}

	return Snapshot{
		Phase:     v.phase,
		Query:     v.query,
		SortField: v.sortField,
		SortDir:   v.sortDir,
		Rows:      rows,
		Providers: v.providers,
	}
}
