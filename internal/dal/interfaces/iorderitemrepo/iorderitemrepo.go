package iorderitemrepo

import (
	"context"

	"github.com/pomanager/po-admin/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for the order-item resource of the
// upstream backend. There is deliberately no Delete: line-item removal never
// propagates to the backend from this system.
type IOrderItemRepository interface {
	Query(ctx context.Context, filter orderitem.Query) ([]orderitem.LineItem, error)
	Create(ctx context.Context, item orderitem.LineItem) (orderitem.LineItem, error)
	Update(ctx context.Context, item orderitem.LineItem) (orderitem.LineItem, error)
}
