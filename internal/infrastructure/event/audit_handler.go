package event

import (
	"context"

	"github.com/storelaunch/backend/internal/domain/audit"
	"github.com/storelaunch/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditHandler writes an audit log row for every auditable event
type AuditHandler struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewAuditHandler creates an AuditHandler
func NewAuditHandler(repo audit.Repository, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{repo: repo, logger: logger}
}

// EventTypes subscribes to every event; non-auditable ones are skipped
func (h *AuditHandler) EventTypes() []string {
	return nil
}

// Handle persists the event's before and after snapshots
func (h *AuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	ev, ok := event.(shared.AuditableEvent)
	if !ok {
		return nil
	}
	entry, err := audit.NewLog(ev.AggregateType(), ev.AggregateID(), ev.AuditAction(), ev.Actor(), ev.Before(), ev.After())
	if err != nil {
		return err
	}
	if err := h.repo.Create(ctx, entry); err != nil {
		return err
	}
	h.logger.Debug("audit log written",
		zap.String("entity_type", entry.EntityType),
		zap.String("entity_id", entry.EntityID.String()),
		zap.String("action", entry.Action),
	)
	return nil
}
