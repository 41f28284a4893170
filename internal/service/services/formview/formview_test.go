package formview

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomanager/po-admin/internal/service/models/auditevent"
	"github.com/pomanager/po-admin/internal/service/models/isodate"
	"github.com/pomanager/po-admin/internal/service/models/order"
	"github.com/pomanager/po-admin/internal/service/models/orderitem"
	"github.com/pomanager/po-admin/internal/service/models/provider"
	"github.com/pomanager/po-admin/internal/service/reconcile"
)

type orderRepoStub struct {
	mu        sync.Mutex
	getFn     func(ctx context.Context, id int64) (order.Order, error)
	createErr error
	updateErr error
	created   []order.Order
	updated   []order.Order
}

func (s *orderRepoStub) Query(context.Context, order.Query) ([]order.Order, error) {
	return nil, errors.New("not implemented")
}

func (s *orderRepoStub) Get(ctx context.Context, id int64) (order.Order, error) {
	if s.getFn == nil {
		return order.Order{}, errors.New("not implemented")
	}

	return s.getFn(ctx, id)
}

func (s *orderRepoStub) Create(_ context.Context, o order.Order) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.created = append(s.created, o)
	if s.createErr != nil {
		return order.Order{}, s.createErr
	}

	id := int64(55)
	o.ID = &id

	return o, nil
}

func (s *orderRepoStub) Update(_ context.Context, o order.Order) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updated = append(s.updated, o)
	if s.updateErr != nil {
		return order.Order{}, s.updateErr
	}

	return o, nil
}

func (s *orderRepoStub) Delete(context.Context, int64) error {
	return errors.New("not implemented")
}

type itemRepoStub struct {
	mu        sync.Mutex
	queryFn   func(ctx context.Context, q orderitem.Query) ([]orderitem.LineItem, error)
	createErr error
	created   []orderitem.LineItem
	updated   []orderitem.LineItem
}

func (s *itemRepoStub) Query(ctx context.Context, q orderitem.Query) ([]orderitem.LineItem, error) {
	if s.queryFn == nil {
		return nil, nil
	}

	return s.queryFn(ctx, q)
}

func (s *itemRepoStub) Create(_ context.Context, item orderitem.LineItem) (orderitem.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.created = append(s.created, item)
	if s.createErr != nil {
		return orderitem.LineItem{}, s.createErr
	}

	id := int64(901)
	item.ID = &id

	return item, nil
}

func (s *itemRepoStub) Update(_ context.Context, item orderitem.LineItem) (orderitem.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updated = append(s.updated, item)

	return item, nil
}

type providerRepoStub struct {
	providers []provider.Provider
	err       error
}

func (s *providerRepoStub) List(context.Context) ([]provider.Provider, error) {
	return s.providers, s.err
}

type auditRepoStub struct {
	mu     sync.Mutex
	events []auditevent.Event
}

func (s *auditRepoStub) Record(_ context.Context, event auditevent.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)

	return nil
}

func ptr[T any](v T) *T { return &v }

func mustDate(t *testing.T, s string) isodate.Date {
	t.Helper()
	d, err := isodate.Parse(s)
	require.NoError(t, err)

	return d
}

func deps(orders *orderRepoStub, items *itemRepoStub, providers *providerRepoStub, audit *auditRepoStub) Deps {
	return Deps{Orders: orders, Items: items, Providers: providers, Audit: audit}
}

func TestCreateActivateLoadsProviders(t *testing.T) {
	providers := &providerRepoStub{providers: []provider.Provider{{ID: 1, Name: "Acme"}}}
	form := NewCreate(deps(&orderRepoStub{}, &itemRepoStub{}, providers, &auditRepoStub{}))

	require.NoError(t, form.Activate(context.Background()))

	snap := form.Snapshot()
	assert.Equal(t, ModeCreate, snap.Mode)
	assert.Equal(t, PhaseReady, snap.Phase)
	assert.Nil(t, snap.OrderID)
	require.Len(t, snap.Providers, 1)
	assert.Empty(t, snap.Items)
}

func TestCreateActivateToleratesProviderFailure(t *testing.T) {
	providers := &providerRepoStub{err: errors.New("backend down")}
	form := NewCreate(deps(&orderRepoStub{}, &itemRepoStub{}, providers, &auditRepoStub{}))

	require.NoError(t, form.Activate(context.Background()))
	assert.Equal(t, PhaseReady, form.Snapshot().Phase)
	assert.Empty(t, form.Snapshot().Providers)
}

func TestCreateSubmitIssuesOneNestedCall(t *testing.T) {
	orders := &orderRepoStub{}
	items := &itemRepoStub{}
	audit := &auditRepoStub{}
	form := NewCreate(deps(orders, items, &providerRepoStub{}, audit))

	form.SetNumber("PO-77")
	form.SetDate(mustDate(t, "2026-08-30"))
	form.SetProviderID(3)

	for _, name := range []string{"bolts", "nuts"} {
		ref := form.AddItem()
		qty := decimal.NewFromInt(2)
		require.NoError(t, form.EditItem(ref, reconcile.Patch{
			Name:     ptr(name),
			Quantity: &qty,
			Unit:     ptr("pcs"),
		}))
	}

	require.NoError(t, form.Submit(context.Background()))

	// The whole graph went through one nested create; the item resource was
	// never touched.
	require.Len(t, orders.created, 1)
	assert.Empty(t, orders.updated)
	assert.Empty(t, items.created)
	assert.Empty(t, items.updated)

	payload := orders.created[0]
	assert.Nil(t, payload.ID)
	assert.Equal(t, "PO-77", payload.Number)
	assert.Equal(t, int64(3), payload.ProviderID)
	require.Len(t, payload.OrderItems, 2)
	assert.Equal(t, "bolts", payload.OrderItems[0].Name)

	snap := form.Snapshot()
	assert.Equal(t, PhaseDone, snap.Phase)
	require.NotNil(t, snap.OrderID)
	assert.Equal(t, int64(55), *snap.OrderID)

	require.Len(t, audit.events, 1)
	assert.Equal(t, auditevent.ActionOrderCreated, audit.events[0].Action)
	assert.Equal(t, 2, audit.events[0].ItemsCreated)
}

func TestCreateSubmitFailureKeepsState(t *testing.T) {
	orders := &orderRepoStub{createErr: errors.New("backend down")}
	audit := &auditRepoStub{}
	form := NewCreate(deps(orders, &itemRepoStub{}, &providerRepoStub{}, audit))

	form.SetNumber("PO-77")
	form.AddItem()

	require.Error(t, form.Submit(context.Background()))

	snap := form.Snapshot()
	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.Equal(t, "PO-77", snap.Number)
	assert.Len(t, snap.Items, 1)
	assert.Empty(t, audit.events)
}

func TestEditActivateSeedsOrderAndItems(t *testing.T) {
	orders := &orderRepoStub{getFn: func(_ context.Context, id int64) (order.Order, error) {
		return order.Order{
			ID:         &id,
			Number:     "PO-10",
			Date:       mustDate(t, "2026-08-01"),
			ProviderID: 4,
		}, nil
	}}
	items := &itemRepoStub{queryFn: func(_ context.Context, q orderitem.Query) ([]orderitem.LineItem, error) {
		assert.Equal(t, int64(10), q.OrderID)

		return []orderitem.LineItem{{ID: ptr(int64(7)), Name: "bolts"}}, nil
	}}

	form := NewEdit(10, deps(orders, items, &providerRepoStub{}, &auditRepoStub{}))
	require.NoError(t, form.Activate(context.Background()))

	snap := form.Snapshot()
	assert.Equal(t, ModeEdit, snap.Mode)
	assert.Equal(t, "PO-10", snap.Number)
	assert.Equal(t, int64(4), snap.ProviderID)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, reconcile.StateExisting, snap.Items[0].State)
}

func TestEditActivateFailsWithoutOrder(t *testing.T) {
	orders := &orderRepoStub{getFn: func(context.Context, int64) (order.Order, error) {
		return order.Order{}, errors.New("not found")
	}}

	form := NewEdit(10, deps(orders, &itemRepoStub{}, &providerRepoStub{}, &auditRepoStub{}))
	assert.Error(t, form.Activate(context.Background()))
}

func TestEditSubmitReconcilesItems(t *testing.T) {
	orders := &orderRepoStub{}
	items := &itemRepoStub{}
	audit := &auditRepoStub{}
	form := NewEdit(10, deps(orders, items, &providerRepoStub{}, audit))

	form.SetNumber("PO-10")
	form.SetDate(mustDate(t, "2026-08-01"))
	form.SetProviderID(4)

	// The backend holds items 7 and 42; the submission carries only 7, so 42
	// was removed locally and must get no backend call of any kind.
	form.SeedItems([]orderitem.LineItem{{ID: ptr(int64(7)), Name: "bolts", Unit: "pcs"}})

	ref := form.AddItem()
	qty := decimal.NewFromInt(5)
	require.NoError(t, form.EditItem(ref, reconcile.Patch{
		Name:     ptr("washers"),
		Quantity: &qty,
		Unit:     ptr("pcs"),
	}))

	require.NoError(t, form.Submit(context.Background()))

	// One full-replace order update, without embedded items.
	require.Len(t, orders.updated, 1)
	assert.Empty(t, orders.created)
	require.NotNil(t, orders.updated[0].ID)
	assert.Equal(t, int64(10), *orders.updated[0].ID)
	assert.Empty(t, orders.updated[0].OrderItems)

	// One update for the surviving item, one create for the new one.
	require.Len(t, items.updated, 1)
	assert.Equal(t, int64(7), *items.updated[0].ID)
	assert.Equal(t, int64(10), *items.updated[0].OrderID)

	require.Len(t, items.created, 1)
	assert.Nil(t, items.created[0].ID)
	assert.Equal(t, "washers", items.created[0].Name)

	// Nothing referenced the removed item 42.
	for _, it := range append(items.updated, items.created...) {
		if it.ID != nil {
			assert.NotEqual(t, int64(42), *it.ID)
		}
	}

	require.Len(t, audit.events, 1)
	assert.Equal(t, auditevent.ActionOrderUpdated, audit.events[0].Action)
	assert.Equal(t, 1, audit.events[0].ItemsCreated)
	assert.Equal(t, 1, audit.events[0].ItemsUpdated)
}

func TestEditSubmitItemFailureSurfacesAggregate(t *testing.T) {
	orders := &orderRepoStub{}
	items := &itemRepoStub{createErr: errors.New("backend down")}
	form := NewEdit(10, deps(orders, items, &providerRepoStub{}, &auditRepoStub{}))

	form.SeedItems([]orderitem.LineItem{{ID: ptr(int64(7)), Name: "bolts"}})
	form.AddItem()

	err := form.Submit(context.Background())
	require.Error(t, err)

	var commitErr *reconcile.CommitError
	assert.ErrorAs(t, err, &commitErr)

	// The order update and the surviving item update still went through.
	assert.Len(t, orders.updated, 1)
	assert.Len(t, items.updated, 1)
	assert.Equal(t, PhaseFailed, form.Snapshot().Phase)
}

func TestEditSubmitRequiresBoundOrder(t *testing.T) {
	form := NewEdit(0, deps(&orderRepoStub{}, &itemRepoStub{}, &providerRepoStub{}, &auditRepoStub{}))
	assert.ErrorIs(t, form.Submit(context.Background()), ErrNotPersisted)
}
