package bot

import (
	"context"

	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/events"
	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/internal/render"
)

// Greeter posts welcome and goodbye cards for membership changes.
type Greeter struct {
	client     platform.Client
	cfg        config.DiscordConfig
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewGreeter constructs the greeter.
func NewGreeter(client platform.Client, cfg config.DiscordConfig, dispatcher events.Dispatcher, logger *zap.Logger) *Greeter {
	return &Greeter{client: client, cfg: cfg, dispatcher: dispatcher, logger: logger}
}

// HandleJoin announces a new member in the welcome channel.
func (g *Greeter) HandleJoin(ctx context.Context, member platform.Member) {
	if !g.relevant(member) {
		return
	}

	if _, err := g.client.SendMessage(ctx, g.cfg.WelcomeChannelID, render.WelcomeMessage(member)); err != nil {
		g.logger.Warn("welcome message failed",
			zap.String("user", member.Username), zap.Error(err))
		return
	}

	g.publish(ctx, events.EventMemberJoined, member)
	g.logger.Info("member welcomed",
		zap.String("user", member.Username),
		zap.Int("member_count", member.MemberCount))
}

// HandleLeave announces a departure in the welcome channel.
func (g *Greeter) HandleLeave(ctx context.Context, member platform.Member) {
	if !g.relevant(member) {
		return
	}

	if _, err := g.client.SendMessage(ctx, g.cfg.WelcomeChannelID, render.GoodbyeMessage(member)); err != nil {
		g.logger.Warn("goodbye message failed",
			zap.String("user", member.Username), zap.Error(err))
		return
	}

	g.publish(ctx, events.EventMemberLeft, member)
	g.logger.Info("member farewelled", zap.String("user", member.Username))
}

func (g *Greeter) relevant(member platform.Member) bool {
	if g.cfg.WelcomeChannelID == "" {
		return false
	}
	return g.cfg.GuildID == "" || member.GuildID == g.cfg.GuildID
}

func (g *Greeter) publish(ctx context.Context, eventType events.EventType, member platform.Member) {
	if g.dispatcher == nil {
		return
	}
	_ = g.dispatcher.Publish(ctx, events.Event{
		Type:    eventType,
		ActorID: member.ID,
		Payload: events.MemberPayload{
			UserID:      member.ID,
			Username:    member.Username,
			MemberCount: member.MemberCount,
		},
	})
}
