package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/pkg/util"
)

// interaction adapts a discordgo interaction to the platform boundary.
type interaction struct {
	adapter *Adapter
	ic      *discordgo.InteractionCreate
}

func (i *interaction) ID() string      { return i.ic.ID }
func (i *interaction) GuildID() string { return i.ic.GuildID }

func (i *interaction) ChannelID() string { return i.ic.ChannelID }

func (i *interaction) MessageID() string {
	if i.ic.Message == nil {
		return ""
	}
	return i.ic.Message.ID
}

func (i *interaction) Actor() platform.Member {
	var user *discordgo.User
	if i.ic.Member != nil {
		user = i.ic.Member.User
	} else {
		user = i.ic.User
	}
	member := platform.Member{GuildID: i.ic.GuildID}
	if user != nil {
		member.ID = user.ID
		member.Username = user.Username
		member.Mention = user.Mention()
		member.AvatarURL = user.AvatarURL("")
	}
	return member
}

func (i *interaction) Input() platform.Input {
	switch i.ic.Type {
	case discordgo.InteractionMessageComponent:
		data := i.ic.MessageComponentData()
		return platform.Input{CustomID: data.CustomID, Values: data.Values}
	case discordgo.InteractionModalSubmit:
		data := i.ic.ModalSubmitData()
		return platform.Input{CustomID: data.CustomID, Fields: modalFields(data)}
	default:
		return platform.Input{}
	}
}

func modalFields(data discordgo.ModalSubmitInteractionData) map[string]string {
	fields := make(map[string]string)
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok {
				fields[input.CustomID] = input.Value
			}
		}
	}
	return fields
}

func (i *interaction) Respond(ctx context.Context, msg platform.Message) error {
	return i.respond(ctx, msg, 0)
}

func (i *interaction) RespondEphemeral(ctx context.Context, msg platform.Message) error {
	return i.respond(ctx, msg, discordgo.MessageFlagsEphemeral)
}

func (i *interaction) respond(ctx context.Context, msg platform.Message, flags discordgo.MessageFlags) error {
	response := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    msg.Content,
			Embeds:     encodeEmbeds(msg.Embeds),
			Components: encodeControls(msg.Controls),
			Flags:      flags,
		},
	}
	if err := i.adapter.session.InteractionRespond(i.ic.Interaction, response, discordgo.WithContext(ctx)); err != nil {
		return util.NewTransportError("interaction respond", err)
	}
	return nil
}

func (i *interaction) RespondModal(ctx context.Context, modal platform.Modal) error {
	response := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   modal.ID,
			Title:      modal.Title,
			Components: encodeModalFields(modal.Fields),
		},
	}
	if err := i.adapter.session.InteractionRespond(i.ic.Interaction, response, discordgo.WithContext(ctx)); err != nil {
		return util.NewTransportError("open modal", err)
	}
	return nil
}

func (i *interaction) UpdateMessage(ctx context.Context, msg platform.Message) error {
	response := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    msg.Content,
			Embeds:     encodeEmbeds(msg.Embeds),
			Components: encodeControls(msg.Controls),
		},
	}
	if err := i.adapter.session.InteractionRespond(i.ic.Interaction, response, discordgo.WithContext(ctx)); err != nil {
		return util.NewTransportError("update message", err)
	}
	return nil
}
