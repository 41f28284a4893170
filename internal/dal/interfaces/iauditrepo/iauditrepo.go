package iauditrepo

import (
	"context"

	"github.com/pomanager/po-admin/internal/service/models/auditevent"
)

// IAuditRepository records audit events of admin mutations. Recording must
// never fail a user operation; implementations log and swallow delivery
// problems.
type IAuditRepository interface {
	Record(ctx context.Context, event auditevent.Event) error
}
