package restrepo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pomanager/po-admin/internal/dal/backend"
	"github.com/pomanager/po-admin/internal/service/models/order"
)

// RestOrderRepository maps the order repository onto the upstream REST
// resource. The wire format is the model's JSON form; dates are exchanged
// as ISO 8601 strings and truncated by the model's date type.
type RestOrderRepository struct {
	client *backend.Client
}

func NewRestOrderRepository(client *backend.Client) *RestOrderRepository {
	return &RestOrderRepository{client: client}
}

// Query lists orders matching the filter.
func (r *RestOrderRepository) Query(ctx context.Context, filter order.Query) ([]order.Order, error) {
	var orders []order.Order
	if err := r.client.Get(ctx, "/orders", filter.Params(), &orders); err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	return orders, nil
}

// Get fetches one order by id.
func (r *RestOrderRepository) Get(ctx context.Context, id int64) (order.Order, error) {
	var o order.Order
	if err := r.client.Get(ctx, "/orders/"+strconv.FormatInt(id, 10), nil, &o); err != nil {
		return order.Order{}, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	return o, nil
}

// Create persists a new order, embedded order items included.
func (r *RestOrderRepository) Create(ctx context.Context, o order.Order) (order.Order, error) {
	var created order.Order
	if err := r.client.Post(ctx, "/orders", o, &created); err != nil {
		return order.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	return created, nil
}

// Update fully replaces a persisted order.
func (r *RestOrderRepository) Update(ctx context.Context, o order.Order) (order.Order, error) {
	if !o.Persisted() {
		return order.Order{}, fmt.Errorf("cannot update an order without an id")
	}

	var updated order.Order
	path := "/orders/" + strconv.FormatInt(*o.ID, 10)
	if err := r.client.Put(ctx, path, o, &updated); err != nil {
		return order.Order{}, fmt.Errorf("failed to update order %d: %w", *o.ID, err)
	}

	return updated, nil
}

// Delete removes an order. Cascading item removal is the backend's concern.
func (r *RestOrderRepository) Delete(ctx context.Context, id int64) error {
	if err := r.client.Delete(ctx, "/orders/"+strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}

	return nil
}
