// Package render builds the bot's outgoing messages: panels, review
// messages, greetings and notices.
package render

import (
	"fmt"

	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/domain"
	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/internal/review"
)

// ReviewMessage renders the full reviewable message for an item's current
// state. Transitions re-render from scratch rather than patching the
// previous embed.
func ReviewMessage(item *review.Item) platform.Message {
	embed := platform.Embed{
		Title:     reviewTitle(item),
		Color:     reviewColor(item),
		Timestamp: item.Request.CreatedAt,
	}

	req := item.Request
	embed.Fields = append(embed.Fields, platform.EmbedField{
		Name:   "👤 Пользователь Discord",
		Value:  fmt.Sprintf("%s\n`%s`", req.Requester.Mention, req.Requester.Username),
		Inline: true,
	})

	switch req.Flow {
	case domain.FlowSupport:
		embed.Fields = append(embed.Fields,
			platform.EmbedField{Name: "🎮 Ник в Minecraft", Value: fmt.Sprintf("`%s`", req.Identifier), Inline: true},
			platform.EmbedField{Name: "📂 Категория", Value: fmt.Sprintf("%s %s", req.Category.Emoji, req.Category.Label), Inline: true},
			platform.EmbedField{Name: "📝 Описание проблемы", Value: req.Description, Inline: false},
		)
		if req.Extra != "" {
			embed.Fields = append(embed.Fields,
				platform.EmbedField{Name: "ℹ️ Дополнительная информация", Value: req.Extra, Inline: false})
		}
	case domain.FlowMinecraftAdmin:
		embed.Fields = append(embed.Fields,
			platform.EmbedField{Name: "🎮 Ник в Minecraft", Value: fmt.Sprintf("`%s`", req.Identifier), Inline: true},
			platform.EmbedField{Name: "🎂 Возраст", Value: fmt.Sprintf("%d лет", req.Age), Inline: true},
			platform.EmbedField{Name: "📝 Почему должны взять", Value: req.Description, Inline: false},
		)
		if req.Extra != "" {
			embed.Fields = append(embed.Fields,
				platform.EmbedField{Name: "⭐ Опыт администрирования", Value: req.Extra, Inline: false})
		}
	case domain.FlowDiscordAdmin:
		embed.Fields = append(embed.Fields,
			platform.EmbedField{Name: "💬 Ник в Discord", Value: fmt.Sprintf("`%s`", req.Identifier), Inline: true},
			platform.EmbedField{Name: "🎂 Возраст", Value: fmt.Sprintf("%d лет", req.Age), Inline: true},
			platform.EmbedField{Name: "📝 Почему должны взять", Value: req.Description, Inline: false},
		)
		if req.Extra != "" {
			embed.Fields = append(embed.Fields,
				platform.EmbedField{Name: "⭐ Опыт модерирования Discord", Value: req.Extra, Inline: false})
		}
	}

	for _, annotation := range item.Annotations {
		embed.Fields = append(embed.Fields, platform.EmbedField{
			Name:   annotation.Label,
			Value:  annotation.ActorMention,
			Inline: true,
		})
	}

	embed.FooterText = reviewFooter(item)
	embed.FooterIcon = req.Requester.AvatarURL

	return platform.Message{Embeds: []platform.Embed{embed}, Controls: item.Controls}
}

func reviewTitle(item *review.Item) string {
	switch item.Request.Flow {
	case domain.FlowSupport:
		label := item.Request.Category.Label
		switch item.Status {
		case review.StatusClaimed:
			return "🎫 Тикет в работе: " + label
		case review.StatusClosed:
			return "🎫 Закрытый тикет: " + label
		default:
			return "🎫 Тикет поддержки: " + label
		}
	case domain.FlowMinecraftAdmin:
		return applicationTitle(item.Status, "🛡️", "Minecraft")
	default:
		return applicationTitle(item.Status, "🎫", "Discord")
	}
}

func applicationTitle(status review.Status, emoji, kind string) string {
	switch status {
	case review.StatusAccepted:
		return fmt.Sprintf("✅ Принятая заявка в администрацию %s", kind)
	case review.StatusRejected:
		return fmt.Sprintf("❌ Отклоненная заявка в администрацию %s", kind)
	case review.StatusInReview:
		return fmt.Sprintf("📋 Заявка на рассмотрении в администрацию %s", kind)
	default:
		return fmt.Sprintf("%s Новая заявка в администрацию %s", emoji, kind)
	}
}

func reviewColor(item *review.Item) int {
	switch item.Status {
	case review.StatusClaimed, review.StatusInReview:
		return config.ColorInProgress
	case review.StatusClosed:
		return config.ColorClosed
	case review.StatusAccepted:
		return config.ColorAccepted
	case review.StatusRejected:
		return config.ColorRejected
	}
	switch item.Request.Flow {
	case domain.FlowSupport:
		return config.ColorSupport
	case domain.FlowMinecraftAdmin:
		return config.ColorMinecraftAdmin
	default:
		return config.ColorDiscordAdmin
	}
}

func reviewFooter(item *review.Item) string {
	if item.Workspace != nil {
		return fmt.Sprintf("ID тикета: %s • Канал: #%s", item.Request.ID, item.Workspace.Name)
	}
	return fmt.Sprintf("ID заявки: %s", item.Request.ID)
}

// TicketIntro is the greeting posted into a freshly provisioned workspace.
func TicketIntro(req *domain.Request, reviewerRoleID string) string {
	return fmt.Sprintf("Добро пожаловать, %s! %s поможет вам с проблемой.",
		req.Requester.Mention, platform.RoleMention(reviewerRoleID))
}

// ClosureNotice is posted into the workspace when the ticket closes.
func ClosureNotice(actorMention string) string {
	return fmt.Sprintf("🔒 **Тикет закрыт**\nЗакрыл: %s\nКанал будет удален через 24 часа.", actorMention)
}
