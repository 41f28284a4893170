package listview

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomanager/po-admin/internal/service/compare"
	"github.com/pomanager/po-admin/internal/service/models/order"
	"github.com/pomanager/po-admin/internal/service/models/provider"
)

type orderRepoStub struct {
	queryFn func(ctx context.Context, q order.Query) ([]order.Order, error)
	calls   atomic.Int32
}

func (s *orderRepoStub) Query(ctx context.Context, q order.Query) ([]order.Order, error) {
	s.calls.Add(1)

	return s.queryFn(ctx, q)
}

func (s *orderRepoStub) Get(context.Context, int64) (order.Order, error) {
	return order.Order{}, errors.New("not implemented")
}

func (s *orderRepoStub) Create(context.Context, order.Order) (order.Order, error) {
	return order.Order{}, errors.New("not implemented")
}

func (s *orderRepoStub) Update(context.Context, order.Order) (order.Order, error) {
	return order.Order{}, errors.New("not implemented")
}

func (s *orderRepoStub) Delete(context.Context, int64) error {
	return errors.New("not implemented")
}

type providerRepoStub struct {
	listFn func(ctx context.Context) ([]provider.Provider, error)
}

func (s *providerRepoStub) List(ctx context.Context) ([]provider.Provider, error) {
	if s.listFn == nil {
		return nil, nil
	}

	return s.listFn(ctx)
}

func ptr[T any](v T) *T { return &v }

func staticOrders(orders ...order.Order) *orderRepoStub {
	return &orderRepoStub{queryFn: func(context.Context, order.Query) ([]order.Order, error) {
		return orders, nil
	}}
}

func staticProviders(providers ...provider.Provider) *providerRepoStub {
	return &providerRepoStub{listFn: func(context.Context) ([]provider.Provider, error) {
		return providers, nil
	}}
}

func TestRefreshLoadsOrdersAndProviders(t *testing.T) {
	orders := staticOrders(
		order.Order{ID: ptr(int64(2)), Number: "PO-2", ProviderID: 1},
		order.Order{ID: ptr(int64(1)), Number: "PO-1", ProviderID: 9},
	)
	view := NewListView(orders, staticProviders(provider.Provider{ID: 1, Name: "Acme"}))

	view.Refresh(context.Background())
	snap := view.Snapshot()

	assert.Equal(t, PhaseReady, snap.Phase)
	require.Len(t, snap.Rows, 2)

	// Default sort is id ascending.
	assert.Equal(t, "PO-1", snap.Rows[0].Order.Number)
	assert.Equal(t, "PO-2", snap.Rows[1].Order.Number)

	// Known provider resolves to its name, unknown falls back to the raw id.
	assert.Equal(t, "9", snap.Rows[0].ProviderName)
	assert.Equal(t, "Acme", snap.Rows[1].ProviderName)
}

func TestDefaultQueryIsLastMonth(t *testing.T) {
	var got order.Query
	orders := &orderRepoStub{queryFn: func(_ context.Context, q order.Query) ([]order.Order, error) {
		got = q

		return nil, nil
	}}
	view := NewListView(orders, staticProviders())

	view.Refresh(context.Background())

	assert.False(t, got.StartDate.IsZero())
	assert.False(t, got.EndDate.IsZero())
	assert.Equal(t, got.EndDate.AddMonths(-1).String(), got.StartDate.String())
}

func TestSetSortDoesNotRequery(t *testing.T) {
	orders := staticOrders(
		order.Order{ID: ptr(int64(1)), Number: "beta"},
		order.Order{ID: ptr(int64(2)), Number: "Alpha"},
	)
	view := NewListView(orders, staticProviders())

	view.Refresh(context.Background())
	require.Equal(t, int32(1), orders.calls.Load())

	view.SetSort(order.SortByNumber, compare.Asc)
	snap := view.Snapshot()

	assert.Equal(t, int32(1), orders.calls.Load())
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, "Alpha", snap.Rows[0].Order.Number)

	view.SetSort(order.SortByNumber, compare.Desc)
	snap = view.Snapshot()
	assert.Equal(t, int32(1), orders.calls.Load())
	assert.Equal(t, "beta", snap.Rows[0].Order.Number)
}

func TestRefreshFailureKeepsPriorCollections(t *testing.T) {
	var fail atomic.Bool
	orders := &orderRepoStub{queryFn: func(context.Context, order.Query) ([]order.Order, error) {
		if fail.Load() {
			return nil, errors.New("backend down")
		}

		return []order.Order{{ID: ptr(int64(1)), Number: "PO-1"}}, nil
	}}
	view := NewListView(orders, staticProviders())

	view.Refresh(context.Background())
	require.Len(t, view.Snapshot().Rows, 1)

	fail.Store(true)
	view.Refresh(context.Background())

	snap := view.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase)
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "PO-1", snap.Rows[0].Order.Number)
}

func TestRefreshDiscardsStaleResponse(t *testing.T) {
	inFlight := make(chan struct{})
	release := make(chan struct{})

	var calls atomic.Int32
	orders := &orderRepoStub{queryFn: func(context.Context, order.Query) ([]order.Order, error) {
		if calls.Add(1) == 1 {
			close(inFlight)
			<-release

			return []order.Order{{ID: ptr(int64(1)), Number: "stale"}}, nil
		}

		return []order.Order{{ID: ptr(int64(2)), Number: "fresh"}}, nil
	}}
	view := NewListView(orders, staticProviders())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		view.Refresh(context.Background())
	}()

	<-inFlight
	view.Refresh(context.Background())

	close(release)
	wg.Wait()

	snap := view.Snapshot()
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "fresh", snap.Rows[0].Order.Number)
}
