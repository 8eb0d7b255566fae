package render

import (
	"fmt"

	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/domain"
	"github.com/limonericx/community-bot/internal/intake"
	"github.com/limonericx/community-bot/internal/platform"
)

func panelEmbed(title, description string, color int, fields []config.EmbedField, footer string) platform.Embed {
	embed := platform.Embed{
		Title:       title,
		Description: description,
		Color:       color,
		FooterText:  footer,
	}
	for _, f := range fields {
		embed.Fields = append(embed.Fields, platform.EmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return embed
}

// SupportPanel is the persistent ticket-creation message.
func SupportPanel(buttonID string) platform.Message {
	return platform.Message{
		Embeds: []platform.Embed{panelEmbed(
			config.SupportTitle, config.SupportDescription,
			config.ColorSupport, config.SupportFields, config.SupportFooter,
		)},
		Controls: []platform.Control{
			&platform.Button{ID: buttonID, Label: config.SupportButtonLabel, Emoji: "🎫", Style: platform.ButtonPrimary},
		},
	}
}

// MinecraftAdminPanel is the persistent Minecraft application message.
func MinecraftAdminPanel(buttonID string) platform.Message {
	return platform.Message{
		Embeds: []platform.Embed{panelEmbed(
			config.MinecraftAdminTitle, config.MinecraftAdminDescription,
			config.ColorMinecraftAdmin, config.MinecraftAdminFields, config.MinecraftAdminFooter,
		)},
		Controls: []platform.Control{
			&platform.Button{ID: buttonID, Label: config.MinecraftAdminButtonLabel, Emoji: "🛡️", Style: platform.ButtonPrimary},
		},
	}
}

// DiscordAdminPanel is the persistent Discord application message.
func DiscordAdminPanel(buttonID string) platform.Message {
	return platform.Message{
		Embeds: []platform.Embed{panelEmbed(
			config.DiscordAdminTitle, config.DiscordAdminDescription,
			config.ColorDiscordAdmin, config.DiscordAdminFields, config.DiscordAdminFooter,
		)},
		Controls: []platform.Control{
			&platform.Button{ID: buttonID, Label: config.DiscordAdminButtonLabel, Emoji: "🎫", Style: platform.ButtonPrimary},
		},
	}
}

// CategorySelect is the ephemeral category chooser shown before the ticket
// modal.
func CategorySelect(selectID string) platform.Message {
	menu := &platform.SelectMenu{
		ID:          selectID,
		Placeholder: "Выберите категорию проблемы...",
	}
	for _, category := range domain.Categories() {
		menu.Options = append(menu.Options, platform.SelectOption{
			Label: category.Label,
			Value: category.Value,
			Emoji: category.Emoji,
		})
	}
	return platform.Message{
		Embeds: []platform.Embed{{
			Title:       "📋 Выбор категории тикета",
			Description: "Пожалуйста, выберите категорию, которая лучше всего описывает вашу проблему:",
			Color:       config.ColorSupport,
		}},
		Controls: []platform.Control{menu},
	}
}

// TicketModal is the support-ticket intake form.
func TicketModal(modalID string) platform.Modal {
	return platform.Modal{
		ID:    modalID,
		Title: "Создание тикета тех. поддержки",
		Fields: []*platform.TextField{
			{
				ID:          "identifier",
				Label:       "Ваш ник в Minecraft",
				Placeholder: "Введите точный ник на сервере...",
				Required:    true,
				MaxLen:      intake.GameHandleMaxLen,
			},
			{
				ID:          "description",
				Label:       "Описание проблемы",
				Placeholder: "Опишите подробно что произошло, когда, при каких обстоятельствах...",
				Required:    true,
				MaxLen:      intake.DescriptionMaxLen,
				Paragraph:   true,
			},
			{
				ID:          "extra",
				Label:       "Дополнительная информация (необязательно)",
				Placeholder: "Время события, скриншоты (ссылки), другие детали...",
				MaxLen:      intake.ExtraMaxLen,
				Paragraph:   true,
			},
		},
	}
}

// MinecraftAdminModal is the Minecraft application intake form.
func MinecraftAdminModal(modalID string) platform.Modal {
	return platform.Modal{
		ID:    modalID,
		Title: "Заявка в администрацию Minecraft",
		Fields: []*platform.TextField{
			{
				ID:          "identifier",
				Label:       "Ваш ник в Minecraft",
				Placeholder: "Введите точный игровой ник...",
				Required:    true,
				MaxLen:      intake.GameHandleMaxLen,
			},
			{
				ID:          "description",
				Label:       "Почему именно вас должны взять?",
				Placeholder: "Расскажите о своих качествах, опыте, мотивации...",
				Required:    true,
				MaxLen:      intake.DescriptionMaxLen,
				Paragraph:   true,
			},
			{
				ID:          "age",
				Label:       "Ваш возраст",
				Placeholder: "Укажите полных лет...",
				Required:    true,
				MaxLen:      2,
			},
			{
				ID:          "extra",
				Label:       "Опыт администрирования",
				Placeholder: "Расскажите о вашем опыте модерирования/администрирования...",
				MaxLen:      intake.ExtraMaxLen,
				Paragraph:   true,
			},
		},
	}
}

// DiscordAdminModal is the Discord application intake form.
func DiscordAdminModal(modalID string) platform.Modal {
	return platform.Modal{
		ID:    modalID,
		Title: "Заявка в администрацию Discord",
		Fields: []*platform.TextField{
			{
				ID:          "identifier",
				Label:       "Ваш ник в Discord",
				Placeholder: "Ваш текущий ник в Discord...",
				Required:    true,
				MaxLen:      intake.ChatHandleMaxLen,
			},
			{
				ID:          "description",
				Label:       "Почему именно вас должны взять?",
				Placeholder: "Расскажите о своих качествах, опыте модерирования Discord...",
				Required:    true,
				MaxLen:      intake.DescriptionMaxLen,
				Paragraph:   true,
			},
			{
				ID:          "age",
				Label:       "Ваш возраст",
				Placeholder: "Укажите полных лет...",
				Required:    true,
				MaxLen:      2,
			},
			{
				ID:          "extra",
				Label:       "Опыт модерирования Discord",
				Placeholder: "Расскажите о вашем опыте работы с Discord, ботами, модерированием...",
				MaxLen:      intake.ExtraMaxLen,
				Paragraph:   true,
			},
		},
	}
}

// TicketCreatedNotice is the ephemeral confirmation after a successful
// ticket intake.
func TicketCreatedNotice(channelID string) platform.Message {
	return platform.Message{
		Embeds: []platform.Embed{{
			Title: "✅ Тикет создан успешно!",
			Description: fmt.Sprintf(
				"Ваш приватный тикет создан: %s\n\nМодераторы уже уведомлены и ответят в ближайшее время.",
				platform.ChannelMention(channelID)),
			Color: config.ColorSuccess,
		}},
	}
}

// ApplicationSubmittedNotice is the ephemeral confirmation after a
// successful application intake.
func ApplicationSubmittedNotice(flow domain.Flow, identifier string) platform.Message {
	var description string
	if flow == domain.FlowMinecraftAdmin {
		description = fmt.Sprintf(
			"Ваша заявка в администрацию Minecraft отправлена на рассмотрение.\n\nИгровой ник: `%s`\nРезультат рассмотрения сообщат в личные сообщения в течение 3-7 дней.",
			identifier)
	} else {
		description = fmt.Sprintf(
			"Ваша заявка в администрацию Discord отправлена на рассмотрение.\n\nDiscord ник: `%s`\nРезультат рассмотрения сообщат в личные сообщения в течение 2-5 дней.",
			identifier)
	}
	return platform.Message{
		Embeds: []platform.Embed{{
			Title:       "✅ Заявка подана успешно!",
			Description: description,
			Color:       config.ColorSuccess,
		}},
	}
}

// Notice wraps plain text for an interaction reply.
func Notice(text string) platform.Message {
	return platform.Message{Content: text}
}
