package orderitem

import (
	"github.com/shopspring/decimal"

	"github.com/pomanager/po-admin/internal/service/compare"
)

// LineItem represents one line of a purchase order. ID and OrderID are
// backend-assigned and absent until the item, respectively its owning order,
// has been persisted. Quantity carries up to three fractional digits; the
// form enforces the step, the backend validates the rest.
type LineItem struct {
	ID       *int64          `json:"id,omitempty"`
	OrderID  *int64          `json:"orderId,omitempty"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// Persisted reports whether the item has a backend-assigned id.
func (li LineItem) Persisted() bool {
	return li.ID != nil
}

// SortField identifies a client-side sortable column of a line-item table.
type SortField string

const (
	SortByID       SortField = "id"
	SortByName     SortField = "name"
	SortByQuantity SortField = "quantity"
	SortByUnit     SortField = "unit"
)

// ParseSortField validates a sort field name. The empty string selects the
// default (id); anything unknown reports false and falls back to the default.
func ParseSortField(s string) (SortField, bool) {
	switch SortField(s) {
	case SortByID, SortByName, SortByQuantity, SortByUnit:
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
	case SortByID:
		return compare.KindNumeric
	case SortByQuantity:
		return compare.KindNative
	default:
		return compare.KindText
	}
}

// Key extracts the field value used for comparison.
func (f SortField) Key(li LineItem) any {
	switch f {
	case SortByName:
		return li.Name
	case SortByQuantity:
		return li.Quantity
	case SortByUnit:
		return li.Unit
	default:
		if li.ID == nil {
			return nil
		}

		return *li.ID
	}
}

// Sort returns a stably sorted copy of items.
func Sort(items []LineItem, field SortField, dir compare.Direction) []LineItem {
	return compare.Sorted(items, field.Kind(), dir, field.Key)
}
