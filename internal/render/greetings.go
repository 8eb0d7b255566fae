package render

import (
	"fmt"

	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/platform"
)

// WelcomeMessage greets a freshly joined member.
func WelcomeMessage(member platform.Member) platform.Message {
	embed := panelEmbed(
		config.WelcomeTitle,
		fmt.Sprintf("%s\n\n%s", config.WelcomeDescription, member.Mention),
		config.ColorWelcome,
		config.WelcomeFields,
		fmt.Sprintf("Участник #%d • Добро пожаловать!", member.MemberCount),
	)
	embed.Thumbnail = member.AvatarURL

	return platform.Message{
		Embeds: []platform.Embed{embed},
		Controls: []platform.Control{
			&platform.Button{
				Label: config.WelcomeButtonLabel,
				URL:   config.WelcomeButtonURL,
				Style: platform.ButtonLink,
			},
		},
	}
}

// GoodbyeMessage marks a member's departure.
func GoodbyeMessage(member platform.Member) platform.Message {
	embed := platform.Embed{
		Title:       config.GoodbyeTitle,
		Description: fmt.Sprintf("%s\n\n%s", member.Mention, config.GoodbyeDescription),
		Color:       config.ColorGoodbye,
		FooterText:  fmt.Sprintf("До свидания! • Участников осталось: %d", member.MemberCount),
	}
	embed.Thumbnail = member.AvatarURL
	return platform.Message{Embeds: []platform.Embed{embed}}
}
