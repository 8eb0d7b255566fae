// Package worker hosts the background loops of the bot.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/events"
	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/pkg/util"
)

// DueClaimer yields workspaces whose retention window has elapsed.
type DueClaimer interface {
	ClaimDue(ctx context.Context, before time.Time) ([]string, error)
}

// ArchiveWorker polls the archival queue and deletes expired workspaces.
type ArchiveWorker struct {
	queue      DueClaimer
	client     platform.Client
	dispatcher events.Dispatcher
	interval   time.Duration
	logger     *zap.Logger
}

// NewArchiveWorker constructs the worker.
func NewArchiveWorker(queue DueClaimer, client platform.Client, dispatcher events.Dispatcher, interval time.Duration, logger *zap.Logger) *ArchiveWorker {
	return &ArchiveWorker{
		queue:      queue,
		client:     client,
		dispatcher: dispatcher,
		interval:   interval,
		logger:     logger,
	}
}

// Run polls until the context is cancelled. It waits for the platform
// session to be ready before the first sweep.
func (w *ArchiveWorker) Run(ctx context.Context) {
	select {
	case <-w.client.Ready():
	case <-ctx.Done():
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep claims every due entry and deletes its channel. A workspace that
// was already removed by hand counts as done.
func (w *ArchiveWorker) Sweep(ctx context.Context) {
	ids, err := w.queue.ClaimDue(ctx, time.Now())
	if err != nil {
		w.logger.Error("archival queue read failed", zap.Error(err))
		return
	}

	for _, channelID := range ids {
		err := w.client.DeleteChannel(ctx, channelID)
		switch {
		case err == nil:
			w.logger.Info("expired workspace deleted", zap.String("channel_id", channelID))
			w.publishArchived(ctx, channelID)
		case util.IsCode(err, util.CodeNotFound):
			w.logger.Info("expired workspace already gone", zap.String("channel_id", channelID))
			w.publishArchived(ctx, channelID)
		default:
			w.logger.Error("workspace deletion failed",
				zap.String("channel_id", channelID), zap.Error(err))
		}
	}
}

func (w *ArchiveWorker) publishArchived(ctx context.Context, channelID string) {
	if w.dispatcher == nil {
		return
	}
	_ = w.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventWorkspaceArchived,
		Payload: events.WorkspaceArchivedPayload{ChannelID: channelID},
	})
}
