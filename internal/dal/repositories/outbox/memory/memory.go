package memoryrepo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pomanager/po-admin/internal/service/models/outbox"
)

// MemoryOutboxRepository keeps pending publications in memory. The gateway
// owns no database, so undelivered audit events do not survive a restart;
// audit delivery is best-effort and never blocks a user operation.
type MemoryOutboxRepository struct {
	mu       sync.Mutex
	nextID   int64
	messages []outbox.Message
	capacity int
}

func NewMemoryOutboxRepository(capacity int) *MemoryOutboxRepository {
	if capacity <= 0 {
		capacity = 1024
	}

	return &MemoryOutboxRepository{capacity: capacity}
}

// Insert adds a message, evicting the oldest entry when the queue is full.
func (r *MemoryOutboxRepository) Insert(_ context.Context, msg outbox.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.messages) >= r.capacity {
		slog.Warn("Outbox full, dropping oldest message", "dropped_id", r.messages[0].ID)
		r.messages = r.messages[1:]
	}

	r.nextID++
	msg.ID = r.nextID
	msg.CreatedAt = time.Now()
	r.messages = append(r.messages, msg)

	return nil
}

// GetPendingMessages returns up to limit messages whose retry time has come.
func (r *MemoryOutboxRepository) GetPendingMessages(_ context.Context, limit int) ([]outbox.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	pending := make([]outbox.Message, 0, limit)
	for _, msg := range r.messages {
		if len(pending) >= limit {
			break
		}
		if msg.NextRetryAt.After(now) {
			continue
		}
		pending = append(pending, msg)
	}

	return pending, nil
}

// Delete removes a delivered message.
func (r *MemoryOutboxRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, msg := range r.messages {
		if msg.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)

			return nil
		}
	}

	return nil
}

// UpdateRetry records a failed delivery attempt and its next retry time.
func (r *MemoryOutboxRepository) UpdateRetry(
	_ context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages[i].RetryCount = retryCount
			r.messages[i].LastError = lastError
			r.messages[i].NextRetryAt = nextRetryAt

			return nil
		}
	}

	return nil
}
