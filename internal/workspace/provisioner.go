// Package workspace provisions the isolated ticket channel for a request.
package workspace

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/domain"
	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/pkg/util"
)

// MaxChannelNameLen bounds derived channel names; longer names are
// truncated tail-first.
const MaxChannelNameLen = 50

// Workspace is the isolated communication channel created for a request.
type Workspace struct {
	ChannelID   string
	Name        string
	GuildID     string
	RequesterID string
	CreatedAt   time.Time
}

// Provisioner creates ticket workspaces under the shared grouping category.
type Provisioner struct {
	client platform.Client
	cfg    config.DiscordConfig
	logger *zap.Logger
}

// NewProvisioner constructs the provisioner.
func NewProvisioner(client platform.Client, cfg config.DiscordConfig, logger *zap.Logger) *Provisioner {
	return &Provisioner{client: client, cfg: cfg, logger: logger}
}

// Provision creates the request's private channel: the grouping category is
// found or lazily created, then the channel is created with a three-party
// grant (requester, reviewer role, bot implicit). A failure aborts the whole
// intake and is not retried; a late failure may leave an orphaned channel
// behind, which is accepted.
func (p *Provisioner) Provision(ctx context.Context, req *domain.Request) (*Workspace, error) {
	categoryID, err := p.ensureCategory(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	name := DeriveChannelName(req.Requester.Username, req.ID)
	create := platform.ChannelCreate{
		Name:     name,
		Topic:    fmt.Sprintf("Тикет поддержки от %s | Minecraft: %s", req.Requester.Username, req.Identifier),
		ParentID: categoryID,
		Grants: []platform.Grant{
			{Kind: platform.GrantEveryone, Deny: platform.PermView},
			{
				Kind:  platform.GrantMember,
				ID:    req.Requester.ID,
				Allow: platform.PermView | platform.PermSend | platform.PermHistory | platform.PermAttach,
			},
			{
				Kind: platform.GrantRole,
				ID:   p.cfg.ReviewerRoleID,
				Allow: platform.PermView | platform.PermSend | platform.PermHistory |
					platform.PermManageMessages | platform.PermManageChannel,
			},
		},
	}

	channel, err := p.client.CreateChannel(ctx, req.GuildID, create)
	if err != nil {
		return nil, util.NewResourceError("create ticket channel", err)
	}

	p.logger.Info("workspace provisioned",
		zap.String("channel", channel.Name),
		zap.String("request_id", req.ID),
		zap.String("requester", req.Requester.Username))

	return &Workspace{
		ChannelID:   channel.ID,
		Name:        channel.Name,
		GuildID:     req.GuildID,
		RequesterID: req.Requester.ID,
		CreatedAt:   time.Now(),
	}, nil
}

// ensureCategory finds the fixed-name grouping category, creating it on
// first need: hidden from general membership, visible to the reviewer role.
func (p *Provisioner) ensureCategory(ctx context.Context, guildID string) (string, error) {
	id, err := p.client.FindCategory(ctx, guildID, config.TicketsCategoryName)
	if err == nil {
		return id, nil
	}
	if !util.IsCode(err, util.CodeNotFound) {
		return "", util.NewResourceError("look up tickets category", err)
	}

	grants := []platform.Grant{
		{Kind: platform.GrantEveryone, Deny: platform.PermView},
		{
			Kind: platform.GrantRole,
			ID:   p.cfg.ReviewerRoleID,
			Allow: platform.PermView | platform.PermSend | platform.PermHistory |
				platform.PermManageMessages,
		},
	}
	id, err = p.client.CreateCategory(ctx, guildID, config.TicketsCategoryName, grants)
	if err != nil {
		return "", util.NewResourceError("create tickets category", err)
	}
	p.logger.Info("tickets category created", zap.String("category_id", id))
	return id, nil
}

// DeriveChannelName builds the workspace channel name from the requester
// handle and the request correlation id, truncating the tail to fit.
func DeriveChannelName(handle, requestID string) string {
	name := fmt.Sprintf("тикет-%s-%s", strings.ToLower(handle), strings.ToLower(requestID))
	runes := []rune(name)
	if len(runes) > MaxChannelNameLen {
		runes = runes[:MaxChannelNameLen]
	}
	return string(runes)
}
