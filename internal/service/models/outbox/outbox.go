package outbox

import (
	"time"
)

// Message is one pending publication queued for delivery to the broker.
type Message struct {
	ID          int64
	QueueName   string
	Payload     []byte
	ContentType string
	RetryCount  int
	LastError   string
	CreatedAt   time.Time
	NextRetryAt time.Time
}
