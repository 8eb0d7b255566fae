package bot

import (
	"context"

	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/internal/render"
)

// panelSweepLimit bounds how much history a housekeeping pass inspects.
const panelSweepLimit = 50

// Panels reposts the static entry-point panels on startup, removing the
// bot's stale copies first so each channel carries exactly one.
type Panels struct {
	client platform.Client
	cfg    config.DiscordConfig
	logger *zap.Logger
}

// NewPanels constructs the panel publisher.
func NewPanels(client platform.Client, cfg config.DiscordConfig, logger *zap.Logger) *Panels {
	return &Panels{client: client, cfg: cfg, logger: logger}
}

// Publish refreshes every configured panel channel. Failures are logged
// per channel and never block the others.
func (p *Panels) Publish(ctx context.Context) {
	p.refresh(ctx, p.cfg.SupportChannelID, render.SupportPanel(idSupportPanel))
	p.refresh(ctx, p.cfg.MinecraftAdminPanelChannelID, render.MinecraftAdminPanel(idMinecraftPanel))
	p.refresh(ctx, p.cfg.DiscordAdminPanelChannelID, render.DiscordAdminPanel(idDiscordPanel))
}

func (p *Panels) refresh(ctx context.Context, channelID string, panel platform.Message) {
	if channelID == "" {
		return
	}

	history, err := p.client.RecentMessages(ctx, channelID, panelSweepLimit)
	if err != nil {
		p.logger.Warn("panel history fetch failed",
			zap.String("channel_id", channelID), zap.Error(err))
	} else {
		for _, msg := range history {
			if msg.AuthorID != p.client.BotUserID() {
				continue
			}
			if err := p.client.DeleteMessage(ctx, channelID, msg.ID); err != nil {
				p.logger.Warn("stale panel delete failed",
					zap.String("message_id", msg.ID), zap.Error(err))
			}
		}
	}

	if _, err := p.client.SendMessage(ctx, channelID, panel); err != nil {
		p.logger.Error("panel publish failed",
			zap.String("channel_id", channelID), zap.Error(err))
		return
	}
	p.logger.Info("panel published", zap.String("channel_id", channelID))
}
