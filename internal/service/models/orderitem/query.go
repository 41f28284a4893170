package orderitem

import (
	"net/url"
	"strconv"
)

// Query represents filter criteria for line items of one order. Name and
// unit are passed through as empty values when blank, matching the order
// list filter contract.
type Query struct {
	OrderID int64  `json:"orderId" schema:"-"`
	Name    string `json:"name" schema:"name"`
	Unit    string `json:"unit" schema:"unit"`
}

// Params translates the criteria into backend query parameters.
func (q Query) Params() url.Values {
	params := url.Values{}
	params.Set("orderId", strconv.FormatInt(q.OrderID, 10))
	params.Set("name", q.Name)
	params.Set("unit", q.Unit)

	return params
}
