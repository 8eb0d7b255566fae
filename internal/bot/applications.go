package bot

import (
	"context"

	"github.com/limonericx/community-bot/internal/domain"
	"github.com/limonericx/community-bot/internal/intake"
	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/internal/render"
)

// openApplicationModal answers an application-panel button with its form.
func (b *Bot) openApplicationModal(ctx context.Context, inter platform.Interaction, modal platform.Modal) error {
	return inter.RespondModal(ctx, modal)
}

// onApplicationModal runs a submitted application through intake and
// posts it into the flow's review channel.
func (b *Bot) onApplicationModal(ctx context.Context, inter platform.Interaction) error {
	flow := domain.FlowMinecraftAdmin
	if inter.Input().CustomID == idDiscordModal {
		flow = domain.FlowDiscordAdmin
	}

	fields := inter.Input().Fields
	req, err := intake.SubmitInput{
		Flow:        flow,
		Requester:   requester(inter),
		GuildID:     inter.GuildID(),
		Identifier:  fields["identifier"],
		Description: fields["description"],
		Extra:       fields["extra"],
		Age:         fields["age"],
	}.Submit()
	if err != nil {
		respondFailure(ctx, inter, err)
		return err
	}

	if err := b.controller.OpenApplication(ctx, req); err != nil {
		respondFailure(ctx, inter, err)
		return err
	}
	return inter.RespondEphemeral(ctx, render.ApplicationSubmittedNotice(flow, req.Identifier))
}
