package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/viper"

	"github.com/pomanager/po-admin/internal/dal/interfaces/ioutboxrepo"
	"github.com/pomanager/po-admin/internal/service/models/auditevent"
	"github.com/pomanager/po-admin/internal/service/models/outbox"
)

// OutboxAuditRepository queues audit events for asynchronous delivery to the
// broker through the outbox worker.
type OutboxAuditRepository struct {
	outboxRepo ioutboxrepo.IOutboxRepository
	queueName  string
}

func NewOutboxAuditRepository(outboxRepo ioutboxrepo.IOutboxRepository) *OutboxAuditRepository {
	queueName := viper.GetString("rabbitmq.audit.queue")
	if queueName == "" {
		queueName = "po.admin.audit"
	}

	return &OutboxAuditRepository{
		outboxRepo: outboxRepo,
		queueName:  queueName,
	}
}

// Record marshals the event and places it on the outbox.
func (r *OutboxAuditRepository) Record(ctx context.Context, event auditevent.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	return r.outboxRepo.Insert(ctx, outbox.Message{
		QueueName:   r.queueName,
		Payload:     payload,
		ContentType: "application/json",
	})
}

// NopAuditRepository discards audit events. Wired when the broker is
// disabled by configuration.
type NopAuditRepository struct{}

func (NopAuditRepository) Record(context.Context, auditevent.Event) error {
	return nil
}
