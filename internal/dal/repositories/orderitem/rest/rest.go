package restrepo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pomanager/po-admin/internal/dal/backend"
	"github.com/pomanager/po-admin/internal/service/models/orderitem"
)

// RestOrderItemRepository maps the order-item repository onto the upstream
// REST resource. It also satisfies the reconciler's Writer contract.
type RestOrderItemRepository struct {
	client *backend.Client
}

func NewRestOrderItemRepository(client *backend.Client) *RestOrderItemRepository {
	return &RestOrderItemRepository{client: client}
}

// Query lists line items of one order matching the filter.
func (r *RestOrderItemRepository) Query(ctx context.Context, filter orderitem.Query) ([]orderitem.LineItem, error) {
	var items []orderitem.LineItem
	if err := r.client.Get(ctx, "/orderItems", filter.Params(), &items); err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	return items, nil
}

// Create persists a new line item bound to its order.
func (r *RestOrderItemRepository) Create(ctx context.Context, item orderitem.LineItem) (orderitem.LineItem, error) {
	var created orderitem.LineItem
	if err := r.client.Post(ctx, "/orderItems", item, &created); err != nil {
		return orderitem.LineItem{}, fmt.Errorf("failed to create order item: %w", err)
	}

	return created, nil
}

// Update fully replaces a persisted line item.
func (r *RestOrderItemRepository) Update(ctx context.Context, item orderitem.LineItem) (orderitem.LineItem, error) {
	if !item.Persisted() {
		return orderitem.LineItem{}, fmt.Errorf("cannot update an order item without an id")
	}

	var updated orderitem.LineItem
	path := "/orderItems/" + strconv.FormatInt(*item.ID, 10)
	if err := r.client.Put(ctx, path, item, &updated); err != nil {
		return orderitem.LineItem{}, fmt.Errorf("failed to update order item %d: %w", *item.ID, err)
	}

	return updated, nil
}
