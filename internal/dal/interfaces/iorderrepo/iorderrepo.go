package iorderrepo

import (
	"context"

	"github.com/pomanager/po-admin/internal/service/models/order"
)

// IOrderRepository is an interface for the order resource of the upstream
// backend.
type IOrderRepository interface {
	Query(ctx context.Context, filter order.Query) ([]order.Order, error)
	Get(ctx context.Context, id int64) (order.Order, error)
	// Create persists a new order; the backend accepts embedded order items
	// for nested creation.
	Create(ctx context.Context, o order.Order) (order.Order, error)
	// Update fully replaces the order identified by its id.
	Update(ctx context.Context, o order.Order) (order.Order, error)
	Delete(ctx context.Context, id int64) error
}
