package order

import (
	"github.com/pomanager/po-admin/internal/service/compare"
	"github.com/pomanager/po-admin/internal/service/models/isodate"
	"github.com/pomanager/po-admin/internal/service/models/orderitem"
)

// Order represents a purchase order in the system. ID is assigned by the
// backend and is absent, not zero, until the order has been persisted.
// OrderItems is populated only for the nested-create payload; reads fetch
// items separately through the order-item resource.
type Order struct {
	ID         *int64               `json:"id,omitempty"`
	Number     string               `json:"number"`
	Date       isodate.Date         `json:"date"`
	ProviderID int64                `json:"providerId"`
	OrderItems []orderitem.LineItem `json:"orderItems,omitempty"`
}

// Persisted reports whether the order has a backend-assigned id.
func (o Order) Persisted() bool {
	return o.ID != nil
}

// SortField identifies a client-side sortable column of the order list.
type SortField string

const (
	SortByID       SortField = "id"
	SortByNumber   SortField = "number"
	SortByDate     SortField = "date"
	SortByProvider SortField = "providerId"
)

// ParseSortField validates a sort field name. The empty string selects the
// default (id); anything unknown reports false and falls back to the default.
func ParseSortField(s string) (SortField, bool) {
	switch SortField(s) {
	case SortByID, SortByNumber, SortByDate, SortByProvider:
		return SortField(s), true
	case "":
		return SortByID, true
	default:
		return SortByID, false
	}
}

// Kind returns the declared comparison type of the field.
func (f SortField) Kind() compare.Kind {
	switch f {
	case SortByID, SortByProvider:
		return compare.KindNumeric
	case SortByDate:
		return compare.KindTime
	default:
		return compare.KindText
	}
}

// Key extracts the field value used for comparison.
func (f SortField) Key(o Order) any {
	switch f {
	case SortByNumber:
		return o.Number
	case SortByDate:
		return o.Date
	case SortByProvider:
		return o.ProviderID
	default:
		if o.ID == nil {
			return nil
		}

		return *o.ID
	}
}

// Sort returns a stably sorted copy of orders.
func Sort(orders []Order, field SortField, dir compare.Direction) []Order {
	return compare.Sorted(orders, field.Kind(), dir, field.Key)
}
