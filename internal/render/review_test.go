package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/domain"
	"github.com/limonericx/community-bot/internal/review"
	"github.com/limonericx/community-bot/internal/workspace"
)

func ticketItem() *review.Item {
	category, _ := domain.ClassifyCategory("economy")
	req := &domain.Request{
		ID:          "A1B2C3D4",
		Flow:        domain.FlowSupport,
		Requester:   domain.Requester{ID: "u1", Username: "steve", Mention: "<@u1>"},
		Identifier:  "steve_mc",
		Description: "баланс ушел в минус",
		Category:    &category,
		CreatedAt:   time.Now(),
	}
	ws := &workspace.Workspace{ChannelID: "ch1", Name: "тикет-steve-a1b2c3d4"}
	return review.NewTicketItem(req, ws)
}

func applicationItem() *review.Item {
	req := &domain.Request{
		ID:          "F0E1D2C3",
		Flow:        domain.FlowMinecraftAdmin,
		Requester:   domain.Requester{ID: "u2", Username: "alex", Mention: "<@u2>"},
		Identifier:  "alex_mc",
		Description: "хочу помогать",
		Extra:       "два года опыта",
		Age:         18,
		CreatedAt:   time.Now(),
	}
	return review.NewApplicationItem(req)
}

func TestReviewMessageOpenTicket(t *testing.T) {
	msg := ReviewMessage(ticketItem())

	require.Len(t, msg.Embeds, 1)
	embed := msg.Embeds[0]
	assert.Contains(t, embed.Title, "Тикет поддержки")
	assert.Equal(t, config.ColorSupport, embed.Color)
	assert.Contains(t, embed.FooterText, "A1B2C3D4")
	assert.Contains(t, embed.FooterText, "тикет-steve-a1b2c3d4")
	assert.Len(t, msg.Controls, 2)
}

func TestReviewMessageAnnotations(t *testing.T) {
	item := ticketItem()
	item.Status = review.StatusClaimed
	item.Annotate("👨‍💻 Взял в работу", "<@mod1>", time.Now())

	embed := ReviewMessage(item).Embeds[0]
	assert.Contains(t, embed.Title, "в работе")
	assert.Equal(t, config.ColorInProgress, embed.Color)

	last := embed.Fields[len(embed.Fields)-1]
	assert.Equal(t, "👨‍💻 Взял в работу", last.Name)
	assert.Equal(t, "<@mod1>", last.Value)
}

func TestReviewMessageApplicationStates(t *testing.T) {
	tests := []struct {
		status review.Status
		title  string
		color  int
	}{
		{review.StatusOpen, "Новая заявка", config.ColorMinecraftAdmin},
		{review.StatusAccepted, "Принятая", config.ColorAccepted},
		{review.StatusRejected, "Отклоненная", config.ColorRejected},
		{review.StatusInReview, "на рассмотрении", config.ColorInProgress},
	}

	for _, tt := range tests {
		item := applicationItem()
		item.Status = tt.status

		embed := ReviewMessage(item).Embeds[0]
		assert.Contains(t, embed.Title, tt.title)
		assert.Equal(t, tt.color, embed.Color)
		assert.Contains(t, embed.FooterText, "ID заявки")
	}
}

func TestReviewMessageRerendersFromScratch(t *testing.T) {
	item := ticketItem()
	first := ReviewMessage(item)

	item.Status = review.StatusClosed
	item.DisableAllControls()
	second := ReviewMessage(item)

	assert.NotEqual(t, first.Embeds[0].Title, second.Embeds[0].Title)
	assert.Equal(t, config.ColorClosed, second.Embeds[0].Color)
}

func TestClosureNotice(t *testing.T) {
	notice := ClosureNotice("<@mod1>")
	assert.Contains(t, notice, "<@mod1>")
	assert.Contains(t, notice, "24 часа")
}
