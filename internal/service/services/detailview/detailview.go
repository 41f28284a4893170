package detailview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pomanager/po-admin/internal/dal/interfaces/iauditrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iorderitemrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iorderrepo"
	"github.com/pomanager/po-admin/internal/service/compare"
	"github.com/pomanager/po-admin/internal/service/models/auditevent"
	"github.com/pomanager/po-admin/internal/service/models/order"
	"github.com/pomanager/po-admin/internal/service/models/orderitem"
)

// Phase is the screen lifecycle state.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
)

// DetailView is the view model of the order detail screen: one order plus
// its line items. Items are filtered server-side by name/unit on demand and
// re-sorted client-side; the two are independent knobs.
type DetailView struct {
	mu        sync.Mutex
	orderRepo iorderrepo.IOrderRepository
	itemRepo  iorderitemrepo.IOrderItemRepository
	auditRepo iauditrepo.IAuditRepository

	orderID   int64
	phase     Phase
	order     order.Order
	items     []orderitem.LineItem
	filter    orderitem.Query
	sortField orderitem.SortField
	sortDir   compare.Direction

	// gen guards against a stale items response clobbering a newer one.
	gen uint64
}

func NewDetailView(
	orderID int64,
	orderRepo iorderrepo.IOrderRepository,
	itemRepo iorderitemrepo.IOrderItemRepository,
	auditRepo iauditrepo.IAuditRepository,
) *DetailView {
	return &DetailView{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		auditRepo: auditRepo,
		orderID:   orderID,
		phase:     PhaseLoading,
		filter:    orderitem.Query{OrderID: orderID},
		sortField: orderitem.SortByID,
		sortDir:   compare.Asc,
	}
}

// SetItemFilter replaces the server-side item filter for the next refresh.
func (v *DetailView) SetItemFilter(name, unit string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter.Name = name
	v.filter.Unit = unit
}

// SetSort changes the client-side item sort. No backend query is issued.
func (v *DetailView) SetSort(field orderitem.SortField, dir compare.Direction) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sortField = field
	v.sortDir = dir
}

// Activate loads the order and its items concurrently. The screen cannot
// render without its order, so that failure propagates; an item fetch
// failure is logged and leaves the item collection empty.
func (v *DetailView) Activate(ctx context.Context) error {
	v.mu.Lock()
	filter := v.filter
	v.mu.Unlock()

	var loadedOrder order.Order
	var items []orderitem.LineItem

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o, err := v.orderRepo.Get(gctx, v.orderID)
		if err != nil {
			return err
		}
		loadedOrder = o

		return nil
	})
	g.Go(func() error {
		loaded, err := v.itemRepo.Query(gctx, filter)
		if err != nil {
			slog.Error("Failed to load order items", "order_id", v.orderID, "error", err)
		} else {
			items = loaded
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load order %d: %w", v.orderID, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.order = loadedOrder
	v.items = items
	v.phase = PhaseReady

	return nil
}

// RefreshItems re-queries the item collection under the current filter.
// A fetch failure is logged and the prior collection kept; a response that
// lost the race against a newer refresh is discarded.
func (v *DetailView) RefreshItems(ctx context.Context) {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	filter := v.filter
	v.mu.Unlock()

	items, err := v.itemRepo.Query(ctx, filter)
	if err != nil {
		slog.Error("Failed to refresh order items", "order_id", v.orderID, "error", err)

		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.gen {
		slog.Debug("Discarding stale order items response", "generation", gen)

		return
	}
	v.items = items
}

// Delete removes the order. Cascading item removal is assumed server-side.
// On failure the caller stays on the detail screen; the error is logged and
// returned so the transport can report it without navigating.
func (v *DetailView) Delete(ctx context.Context) error {
	if err := v.orderRepo.Delete(ctx, v.orderID); err != nil {
		slog.Error("Failed to delete order", "order_id", v.orderID, "error", err)

		return fmt.Errorf("failed to delete order %d: %w", v.orderID, err)
	}

	v.mu.Lock()
	number := v.order.Number
	v.mu.Unlock()

	if err := v.auditRepo.Record(ctx, auditevent.Event{
		Action:      auditevent.ActionOrderDeleted,
		OrderID:     v.orderID,
		OrderNumber: number,
		OccurredAt:  time.Now(),
	}); err != nil {
		slog.Warn("Failed to record audit event", "error", err)
	}

	return nil
}

// Snapshot is the rendered state of the detail screen.
type Snapshot struct {
	Phase     Phase                `json:"phase"`
	Order     order.Order          `json:"order"`
	Items     []orderitem.LineItem `json:"items"`
	Filter    orderitem.Query      `json:"filter"`
	SortField orderitem.SortField  `json:"sortField"`
	SortDir   compare.Direction    `json:"sortDir"`
}

// Snapshot re-sorts the loaded item collection under the current sort.
func (v *DetailView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	return Snapshot{
		Phase:     v.phase,
		Order:     v.order,
		Items:     orderitem.Sort(v.items, v.sortField, v.sortDir),
		Filter:    v.filter,
		SortField: v.sortField,
		SortDir:   v.sortDir,
	}
}
