package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/limonericx/community-bot/internal/domain"
	"github.com/limonericx/community-bot/internal/intake"
	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/internal/render"
	"github.com/limonericx/community-bot/pkg/util"
)

// openCategorySelect answers the support-panel button with a private
// category picker. The posting time rides in the custom id so expiry
// needs no server-side state.
func (b *Bot) openCategorySelect(ctx context.Context, inter platform.Interaction) error {
	selectID := fmt.Sprintf("%s:%d", idCategorySelect, time.Now().Unix())
	return inter.RespondEphemeral(ctx, render.CategorySelect(selectID))
}

// onCategoryChosen validates the picker's age and opens the ticket form
// for the chosen category.
func (b *Bot) onCategoryChosen(ctx context.Context, inter platform.Interaction) error {
	raw := strings.TrimPrefix(inter.Input().CustomID, idCategorySelect+":")
	postedAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		err = util.NewValidationError(
			"❌ Некорректный выбор категории. Нажмите кнопку создания тикета заново.",
			map[string]any{"custom_id": raw})
		respondFailure(ctx, inter, err)
		return err
	}
	if time.Since(time.Unix(postedAt, 0)) > b.cfg.Lifecycle.SelectTimeout {
		return inter.RespondEphemeral(ctx, render.Notice(
			"⏰ Время выбора истекло. Нажмите кнопку создания тикета заново."))
	}

	category, err := domain.ClassifyCategory(inter.Input().Value())
	if err != nil {
		respondFailure(ctx, inter, err)
		return err
	}

	modalID := idTicketModal + ":" + category.Value
	return inter.RespondModal(ctx, render.TicketModal(modalID))
}

// onTicketModal runs the submitted form through intake and, when it
// validates, provisions a workspace and opens the ticket.
func (b *Bot) onTicketModal(ctx context.Context, inter platform.Interaction) error {
	categoryValue := strings.TrimPrefix(inter.Input().CustomID, idTicketModal+":")
	category, err := domain.ClassifyCategory(categoryValue)
	if err != nil {
		respondFailure(ctx, inter, err)
		return err
	}

	fields := inter.Input().Fields
	req, err := intake.SubmitInput{
		Flow:        domain.FlowSupport,
		Requester:   requester(inter),
		GuildID:     inter.GuildID(),
		Identifier:  fields["identifier"],
		Description: fields["description"],
		Extra:       fields["extra"],
		Category:    &category,
	}.Submit()
	if err != nil {
		respondFailure(ctx, inter, err)
		return err
	}

	ws, err := b.controller.OpenTicket(ctx, req)
	if err != nil {
		respondFailure(ctx, inter, err)
		return err
	}
	return inter.RespondEphemeral(ctx, render.TicketCreatedNotice(ws.ChannelID))
}

func requester(inter platform.Interaction) domain.Requester {
	actor := inter.Actor()
	return domain.Requester{
		ID:        actor.ID,
		Username:  actor.Username,
		Mention:   actor.Mention,
		AvatarURL: actor.AvatarURL,
	}
}

// respondFailure shows the error's user notice privately. Validation
// errors carry their own message; everything else collapses to the
// generic retry notice.
func respondFailure(ctx context.Context, inter platform.Interaction, err error) {
	_ = inter.RespondEphemeral(ctx, render.Notice(util.ToDomainError(err).Notice()))
}
