// Package bot wires the platform session to the intake, lifecycle and
// activity components and routes incoming interactions.
package bot

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/activity"
	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/lifecycle"
	"github.com/limonericx/community-bot/internal/observability"
	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/internal/render"
	"github.com/limonericx/community-bot/internal/review"
	"github.com/limonericx/community-bot/pkg/util"
)

// Control custom ids owned by the bot's panels and forms. Review-message
// control ids live in the review package.
const (
	idSupportPanel   = "support.panel.create"
	idCategorySelect = "support.category" // suffixed with the posting unix time
	idTicketModal    = "support.modal"    // suffixed with the chosen category
	idMinecraftPanel = "app.mc.panel"
	idMinecraftModal = "app.mc.modal"
	idDiscordPanel   = "app.dc.panel"
	idDiscordModal   = "app.dc.modal"
)

// Bot owns the session and dispatches its events.
type Bot struct {
	session    platform.Session
	controller *lifecycle.Controller
	monitor    *activity.Monitor
	greeter    *Greeter
	panels     *Panels
	cfg        *config.Config
	metrics    *observability.Metrics
	logger     *zap.Logger

	ctx context.Context
}

// Dependencies bundles everything the bot needs.
type Dependencies struct {
	Session    platform.Session
	Controller *lifecycle.Controller
	Monitor    *activity.Monitor
	Greeter    *Greeter
	Panels     *Panels
	Config     *config.Config
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// New constructs the bot.
func New(deps Dependencies) *Bot {
	return &Bot{
		session:    deps.Session,
		controller: deps.Controller,
		monitor:    deps.Monitor,
		greeter:    deps.Greeter,
		panels:     deps.Panels,
		cfg:        deps.Config,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// Start registers the event handlers, opens the gateway connection and
// refreshes the panels once the session is ready. The given context is
// inherited by every handler invocation.
func (b *Bot) Start(ctx context.Context) error {
	b.ctx = ctx

	b.session.HandleInteraction(func(inter platform.Interaction) {
		b.routeInteraction(b.ctx, inter)
	})
	b.session.HandleMessage(func(msg platform.HistoryMessage) {
		if b.monitor != nil {
			b.monitor.HandleMessage(b.ctx, msg)
		}
	})
	b.session.HandleMemberJoin(func(member platform.Member) {
		b.greeter.HandleJoin(b.ctx, member)
	})
	b.session.HandleMemberLeave(func(member platform.Member) {
		b.greeter.HandleLeave(b.ctx, member)
	})

	if err := b.session.Open(); err != nil {
		return util.NewTransportError("open gateway session", err)
	}

	go func() {
		select {
		case <-b.session.Ready():
		case <-ctx.Done():
			return
		}
		b.panels.Publish(ctx)
	}()
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}

// routeInteraction dispatches one interaction by its custom id. Handler
// errors are logged and counted; the user-facing notice is the handler's
// own concern.
func (b *Bot) routeInteraction(ctx context.Context, inter platform.Interaction) {
	customID := inter.Input().CustomID
	action := actionName(customID)
	b.metrics.RecordAction(action)

	var err error
	switch {
	case customID == idSupportPanel:
		err = b.openCategorySelect(ctx, inter)
	case strings.HasPrefix(customID, idCategorySelect+":"):
		err = b.onCategoryChosen(ctx, inter)
	case strings.HasPrefix(customID, idTicketModal+":"):
		err = b.onTicketModal(ctx, inter)
	case customID == idMinecraftPanel:
		err = b.openApplicationModal(ctx, inter, render.MinecraftAdminModal(idMinecraftModal))
	case customID == idDiscordPanel:
		err = b.openApplicationModal(ctx, inter, render.DiscordAdminModal(idDiscordModal))
	case customID == idMinecraftModal || customID == idDiscordModal:
		err = b.onApplicationModal(ctx, inter)
	case isReviewControl(customID):
		err = b.controller.HandleControl(ctx, inter)
	default:
		b.logger.Warn("unrecognized interaction", zap.String("custom_id", customID))
		return
	}

	if err != nil {
		domainErr := util.ToDomainError(err)
		b.metrics.RecordError(action, domainErr.Code)
		b.logger.Error("interaction failed",
			zap.String("custom_id", customID),
			zap.String("code", domainErr.Code),
			zap.Error(err))
	}
}

func isReviewControl(customID string) bool {
	switch customID {
	case review.ControlClaim, review.ControlClose,
		review.ControlAccept, review.ControlReject, review.ControlReview:
		return true
	}
	return false
}

// actionName collapses parameterized custom ids to a stable counter key.
func actionName(customID string) string {
	if idx := strings.Index(customID, ":"); idx >= 0 {
		return customID[:idx]
	}
	return customID
}
