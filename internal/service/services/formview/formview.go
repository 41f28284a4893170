package formview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pomanager/po-admin/internal/dal/interfaces/iauditrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iorderitemrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iorderrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iproviderrepo"
	"github.com/pomanager/po-admin/internal/service/models/auditevent"
	"github.com/pomanager/po-admin/internal/service/models/isodate"
	"github.com/pomanager/po-admin/internal/service/models/order"
	"github.com/pomanager/po-admin/internal/service/models/orderitem"
	"github.com/pomanager/po-admin/internal/service/models/provider"
	"github.com/pomanager/po-admin/internal/service/reconcile"
)

// Mode distinguishes the two form flows. Create submits the whole
// order+items graph as one nested backend call; edit updates the order and
// reconciles the item collection per item.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Phase is the form lifecycle state.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseSaving  Phase = "saving"
	PhaseDone    Phase = "done"
	PhaseFailed  Phase = "failed"
)

// ErrNotPersisted is returned when an edit submit targets an order id the
// form was not bound to.
var ErrNotPersisted = errors.New("form is not bound to a persisted order")

// FormView is the view model of the order form screen. It owns the order
// fields and the line-item collection of one edit session. On any save
// failure the state is left intact for retry.
type FormView struct {
	mu           sync.Mutex
	orderRepo    iorderrepo.IOrderRepository
	itemRepo     iorderitemrepo.IOrderItemRepository
	providerRepo iproviderrepo.IProviderRepository
	auditRepo    iauditrepo.IAuditRepository

	mode    Mode
	phase   Phase
	orderID int64 // persisted id, edit mode only

	number     string
	date       isodate.Date
	providerID int64

	items     *reconcile.Collection
	providers []provider.Provider
}

// Deps bundles the repositories a form needs.
type Deps struct {
	Orders    iorderrepo.IOrderRepository
	Items     iorderitemrepo.IOrderItemRepository
	Providers iproviderrepo.IProviderRepository
	Audit     iauditrepo.IAuditRepository
}

// NewCreate constructs a form for a brand-new order.
func NewCreate(deps Deps) *FormView {
	return newForm(deps, ModeCreate, 0)
}

// NewEdit constructs a form bound to the persisted order with the given id.
func NewEdit(orderID int64, deps Deps) *FormView {
	return newForm(deps, ModeEdit, orderID)
}

func newForm(deps Deps, mode Mode, orderID int64) *FormView {
	return &FormView{
		orderRepo:    deps.Orders,
		itemRepo:     deps.Items,
		providerRepo: deps.Providers,
		auditRepo:    deps.Audit,
		mode:         mode,
		phase:        PhaseLoading,
		orderID:      orderID,
		items:        reconcile.NewCollection(),
	}
}

// Activate loads the provider collection, and in edit mode additionally
// seeds the order fields and the item collection from backend data. The
// form cannot render an edit without its order, so that failure propagates;
// a provider or item fetch failure is logged and leaves the respective
// collection empty.
func (f *FormView) Activate(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	var providers []provider.Provider
	g.Go(func() error {
		loaded, err := f.providerRepo.List(gctx)
		if err != nil {
			slog.Error("Failed to load providers", "error", err)
		} else {
			providers = loaded
		}

		return nil
	})

	var loadedOrder order.Order
	var items []orderitem.LineItem
	if f.mode == ModeEdit {
		g.Go(func() error {
			o, err := f.orderRepo.Get(gctx, f.orderID)
			if err != nil {
				return err
			}
			loadedOrder = o

			return nil
		})
		g.Go(func() error {
			loaded, err := f.itemRepo.Query(gctx, orderitem.Query{OrderID: f.orderID})
			if err != nil {
				slog.Error("Failed to load order items", "order_id", f.orderID, "error", err)
			} else {
				items = loaded
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to activate order form: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.providers = providers
	if f.mode == ModeEdit {
		f.number = loadedOrder.Number
		f.date = loadedOrder.Date
		f.providerID = loadedOrder.ProviderID
		f.items.Seed(items)
	}
	f.phase = PhaseReady

	return nil
}

// SetNumber sets the user-defined order number.
func (f *FormView) SetNumber(number string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.number = number
}

// SetDate sets the order date.
func (f *FormView) SetDate(date isodate.Date) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.date = date
}

// SetProviderID sets the provider selection.
func (f *FormView) SetProviderID(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.providerID = id
}

// SeedItems replaces the item collection with persisted records, all tagged
// existing. Used on edit activation and when an edit submission carries the
// browser's current copy of the persisted items.
func (f *FormView) SeedItems(items []orderitem.LineItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items.Seed(items)
}

// AddItem appends a fresh line in state new and returns its local reference.
func (f *FormView) AddItem() reconcile.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.items.Add()
}

// EditItem applies a partial update to one line.
func (f *FormView) EditItem(ref reconcile.Ref, patch reconcile.Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.items.Edit(ref, patch)
}

// RemoveItem deletes one line from the local collection. No backend delete
// is issued, now or at submit.
func (f *FormView) RemoveItem(ref reconcile.Ref) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.items.Remove(ref)
}

// Submit saves the form. Create mode issues one nested create for the whole
// order+items graph. Edit mode issues one full-replace order update and then
// reconciles the item collection: one create per new line, one update per
// existing line, removed lines untouched. Any failure leaves the form state
// intact for retry and surfaces as a single error.
func (f *FormView) Submit(ctx context.Context) error {
	f.mu.Lock()
	f.phase = PhaseSaving
	f.mu.Unlock()

	var err error
	if f.mode == ModeCreate {
		err = f.submitCreate(ctx)
	} else {
		err = f.submitEdit(ctx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.phase = PhaseFailed

		return err
	}
	f.phase = PhaseDone

	return nil
}

func (f *FormView) submitCreate(ctx context.Context) error {
	f.mu.Lock()
	payload := order.Order{
		Number:     f.number,
		Date:       f.date,
		ProviderID: f.providerID,
		OrderItems: f.items.Lines(),
	}
	f.mu.Unlock()

	created, err := f.orderRepo.Create(ctx, payload)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	if created.Persisted() {
		f.mu.Lock()
		f.orderID = *created.ID
		f.mu.Unlock()
	}

	f.recordAudit(ctx, auditevent.Event{
		Action:       auditevent.ActionOrderCreated,
		OrderID:      f.orderID,
		OrderNumber:  payload.Number,
		ItemsCreated: len(payload.OrderItems),
		OccurredAt:   time.Now(),
	})

	return nil
}

func (f *FormView) submitEdit(ctx context.Context) error {
	if f.orderID == 0 {
		return ErrNotPersisted
	}

	f.mu.Lock()
	id := f.orderID
	payload := order.Order{
		ID:         &id,
		Number:     f.number,
		Date:       f.date,
		ProviderID: f.providerID,
	}
	f.mu.Unlock()

	if _, err := f.orderRepo.Update(ctx, payload); err != nil {
		return fmt.Errorf("failed to update order %d: %w", id, err)
	}

	f.mu.Lock()
	items := f.items
	f.mu.Unlock()

	report, err := items.Commit(ctx, id, f.itemRepo)
	if err != nil {
		return fmt.Errorf("failed to save order items: %w", err)
	}

	f.recordAudit(ctx, auditevent.Event{
		Action:       auditevent.ActionOrderUpdated,
		OrderID:      id,
		OrderNumber:  payload.Number,
		ItemsCreated: report.Created,
		ItemsUpdated: report.Updated,
		OccurredAt:   time.Now(),
	})

	return nil
}

func (f *FormView) recordAudit(ctx context.Context, event auditevent.Event) {
	if err := f.auditRepo.Record(ctx, event); err != nil {
		slog.Warn("Failed to record audit event", "error", err)
	}
}

// Snapshot is the rendered state of the form screen.
type Snapshot struct {
	Mode       Mode                `json:"mode"`
	Phase      Phase               `json:"phase"`
	OrderID    *int64              `json:"orderId,omitempty"`
	Number     string              `json:"number"`
	Date       isodate.Date        `json:"date"`
	ProviderID int64               `json:"providerId"`
	Items      []reconcile.Item    `json:"items"`
	Providers  []provider.Provider `json:"providers"`
}

func (f *FormView) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{
		Mode:       f.mode,
		Phase:      f.phase,
		Number:     f.number,
		Date:       f.date,
		ProviderID: f.providerID,
		Items:      f.items.Items(),
		Providers:  f.providers,
	}
	if f.orderID != 0 {
		id := f.orderID
		snap.OrderID = &id
	}

	return snap
}
