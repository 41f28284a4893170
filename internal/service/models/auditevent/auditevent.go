package auditevent

import "time"

// Action names an admin mutation worth an audit record.
type Action string

const (
	ActionOrderCreated Action = "order.created"
	ActionOrderUpdated Action = "order.updated"
	ActionOrderDeleted Action = "order.deleted"
)

// Event is one audit record of an admin mutation. ItemsCreated and
// ItemsUpdated count the per-item writes of the save that produced the event.
type Event struct {
	Action       Action    `json:"action"`
	OrderID      int64     `json:"orderId"`
	OrderNumber  string    `json:"orderNumber,omitempty"`
	ItemsCreated int       `json:"itemsCreated,omitempty"`
	ItemsUpdated int       `json:"itemsUpdated,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}
