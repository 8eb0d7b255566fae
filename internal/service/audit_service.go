// Package service holds event-driven side services of the bot.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/events"
	"github.com/limonericx/community-bot/internal/observability"
)

// AuditService records every domain event to the log and the in-memory
// counters exposed by the status endpoint.
type AuditService struct {
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to every event type.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventRequestSubmitted, a.handleRequestSubmitted)
	a.dispatcher.Subscribe(events.EventWorkspaceProvisioned, a.handleWorkspaceProvisioned)
	a.dispatcher.Subscribe(events.EventReviewStateChanged, a.handleReviewStateChanged)
	a.dispatcher.Subscribe(events.EventWorkspaceArchived, a.handleWorkspaceArchived)
	a.dispatcher.Subscribe(events.EventMemberJoined, a.handleMembership)
	a.dispatcher.Subscribe(events.EventMemberLeft, a.handleMembership)
}

func (a *AuditService) handleRequestSubmitted(ctx context.Context, event events.Event) error {
	a.metrics.RecordAction("request_submitted")
	a.logger.Info("RequestSubmitted",
		zap.String("request_id", event.RequestID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleWorkspaceProvisioned(ctx context.Context, event events.Event) error {
	a.metrics.RecordAction("workspace_provisioned")
	a.logger.Info("WorkspaceProvisioned",
		zap.String("request_id", event.RequestID),
		zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleReviewStateChanged(ctx context.Context, event events.Event) error {
	a.metrics.RecordAction("review_state_changed")
	a.logger.Info("ReviewStateChanged",
		zap.String("request_id", event.RequestID),
		zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleWorkspaceArchived(ctx context.Context, event events.Event) error {
	a.metrics.RecordAction("workspace_archived")
	a.logger.Info("WorkspaceArchived", zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleMembership(ctx context.Context, event events.Event) error {
	a.metrics.RecordAction(string(event.Type))
	a.logger.Info("MembershipChanged",
		zap.String("type", string(event.Type)),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	return nil
}
