package bot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/events"
	"github.com/limonericx/community-bot/internal/lifecycle"
	"github.com/limonericx/community-bot/internal/observability"
	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/internal/platform/platformtest"
	"github.com/limonericx/community-bot/internal/review"
	"github.com/limonericx/community-bot/internal/workspace"
)

type archiverStub struct{}

func (archiverStub) Schedule(ctx context.Context, channelID string, due time.Time) error { return nil }

func testBot(t *testing.T) (*Bot, *platformtest.Fake, *lifecycle.Controller) {
	t.Helper()
	fake := platformtest.NewFake()
	fake.Roles["reviewer"] = []string{"mod"}

	cfg := &config.Config{
		Discord: config.DiscordConfig{
			GuildID:          "g1",
			WelcomeChannelID: "welcome",
			SupportChannelID: "support",
			ReviewerRoleID:   "mod",
		},
		Lifecycle: config.LifecycleConfig{
			Retention:     24 * time.Hour,
			SelectTimeout: 5 * time.Minute,
		},
	}
	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher()

	controller := lifecycle.NewController(lifecycle.Dependencies{
		Client:      fake,
		Provisioner: workspace.NewProvisioner(fake, cfg.Discord, logger),
		Archiver:    archiverStub{},
		Dispatcher:  dispatcher,
		Config:      cfg,
		Logger:      logger,
	})

	b := New(Dependencies{
		Session:    fake,
		Controller: controller,
		Greeter:    NewGreeter(fake, cfg.Discord, dispatcher, logger),
		Panels:     NewPanels(fake, config.DiscordConfig{}, logger),
		Config:     cfg,
		Metrics:    observability.NewMetrics(),
		Logger:     logger,
	})
	require.NoError(t, b.Start(context.Background()))
	return b, fake, controller
}

func userInteraction(input platform.Input) *platformtest.FakeInteraction {
	return &platformtest.FakeInteraction{
		GuildIDVal: "g1",
		ActorVal:   platform.Member{ID: "u1", Username: "steve", Mention: "<@u1>"},
		InputVal:   input,
	}
}

func TestSupportPanelOpensCategorySelect(t *testing.T) {
	_, fake, _ := testBot(t)

	inter := userInteraction(platform.Input{CustomID: idSupportPanel})
	fake.InjectInteraction(inter)

	resp := inter.LastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, "ephemeral", resp.Kind)
	require.Len(t, resp.Msg.Controls, 1)
	assert.Contains(t, resp.Msg.Controls[0].ControlID(), idCategorySelect+":")
}

func TestCategoryChoiceOpensModal(t *testing.T) {
	_, fake, _ := testBot(t)

	selectID := fmt.Sprintf("%s:%d", idCategorySelect, time.Now().Unix())
	inter := userInteraction(platform.Input{CustomID: selectID, Values: []string{"bug"}})
	fake.InjectInteraction(inter)

	resp := inter.LastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, "modal", resp.Kind)
	assert.Equal(t, idTicketModal+":bug", resp.Modal.ID)
}

func TestExpiredCategorySelect(t *testing.T) {
	_, fake, _ := testBot(t)

	stale := time.Now().Add(-10 * time.Minute).Unix()
	inter := userInteraction(platform.Input{
		CustomID: fmt.Sprintf("%s:%d", idCategorySelect, stale),
		Values:   []string{"bug"},
	})
	fake.InjectInteraction(inter)

	resp := inter.LastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, "ephemeral", resp.Kind)
	assert.Contains(t, resp.Msg.Content, "истекло")
}

func TestMalformedCategorySelectGetsReply(t *testing.T) {
	_, fake, _ := testBot(t)

	inter := userInteraction(platform.Input{
		CustomID: idCategorySelect + ":not-a-timestamp",
		Values:   []string{"bug"},
	})
	fake.InjectInteraction(inter)

	// The actor still gets a private failure notice instead of a
	// silently hanging interaction.
	resp := inter.LastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, "ephemeral", resp.Kind)
	assert.Contains(t, resp.Msg.Content, "Некорректный выбор категории")
}

func TestTicketModalCreatesWorkspace(t *testing.T) {
	_, fake, controller := testBot(t)

	inter := userInteraction(platform.Input{
		CustomID: idTicketModal + ":bug",
		Fields: map[string]string{
			"identifier":  "steve_mc",
			"description": "пропал дом на спавне",
		},
	})
	fake.InjectInteraction(inter)

	resp := inter.LastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, "ephemeral", resp.Kind)
	require.Len(t, resp.Msg.Embeds, 1)
	assert.Contains(t, resp.Msg.Embeds[0].Title, "Тикет создан")

	require.Len(t, fake.Channels, 2) // category + workspace
	assert.Equal(t, 1, controller.OpenItems())
}

func TestTicketModalValidationFailure(t *testing.T) {
	_, fake, controller := testBot(t)

	inter := userInteraction(platform.Input{
		CustomID: idTicketModal + ":bug",
		Fields:   map[string]string{"identifier": "", "description": "что-то"},
	})
	fake.InjectInteraction(inter)

	resp := inter.LastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, "ephemeral", resp.Kind)
	assert.Contains(t, resp.Msg.Content, "❌")
	assert.Equal(t, 0, controller.OpenItems())
	assert.Empty(t, fake.Channels)
}

func TestApplicationPanelOpensModal(t *testing.T) {
	_, fake, _ := testBot(t)

	inter := userInteraction(platform.Input{CustomID: idMinecraftPanel})
	fake.InjectInteraction(inter)

	resp := inter.LastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, "modal", resp.Kind)
	assert.Equal(t, idMinecraftModal, resp.Modal.ID)
}

func TestApplicationModalSubmission(t *testing.T) {
	b, fake, _ := testBot(t)
	b.cfg.Discord.MinecraftAdminReviewChannelID = "mc-review"

	inter := userInteraction(platform.Input{
		CustomID: idMinecraftModal,
		Fields: map[string]string{
			"identifier":  "steve_mc",
			"description": "хочу помогать серверу",
			"age":         "17",
			"extra":       "опыт есть",
		},
	})
	fake.InjectInteraction(inter)

	resp := inter.LastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, "ephemeral", resp.Kind)
	require.Len(t, resp.Msg.Embeds, 1)
	assert.Contains(t, resp.Msg.Embeds[0].Description, "steve_mc")
	require.Len(t, fake.MessagesIn("mc-review"), 1)
}

func TestApplicationModalUnderage(t *testing.T) {
	b, fake, _ := testBot(t)
	b.cfg.Discord.MinecraftAdminReviewChannelID = "mc-review"

	inter := userInteraction(platform.Input{
		CustomID: idMinecraftModal,
		Fields: map[string]string{
			"identifier":  "kid",
			"description": "возьмите",
			"age":         "12",
		},
	})
	fake.InjectInteraction(inter)

	resp := inter.LastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, "ephemeral", resp.Kind)
	assert.Contains(t, resp.Msg.Content, "Минимальный возраст")
	assert.Empty(t, fake.MessagesIn("mc-review"))
}

func TestReviewControlRouting(t *testing.T) {
	_, fake, controller := testBot(t)

	// Open a ticket end to end, then claim it through the router.
	fake.InjectInteraction(userInteraction(platform.Input{
		CustomID: idTicketModal + ":bug",
		Fields:   map[string]string{"identifier": "steve_mc", "description": "помогите"},
	}))

	var reviewMessageID string
	for _, sent := range fake.Sent {
		if len(sent.Msg.Controls) > 0 {
			reviewMessageID = sent.ID
		}
	}
	require.NotEmpty(t, reviewMessageID)

	claim := &platformtest.FakeInteraction{
		GuildIDVal:   "g1",
		MessageIDVal: reviewMessageID,
		ActorVal:     platform.Member{ID: "reviewer", Username: "mod1", Mention: "<@reviewer>"},
		InputVal:     platform.Input{CustomID: review.ControlClaim},
	}
	fake.InjectInteraction(claim)

	item, ok := controller.Item(reviewMessageID)
	require.True(t, ok)
	assert.Equal(t, review.StatusClaimed, item.Status)
}

func TestUnknownInteractionIgnored(t *testing.T) {
	_, fake, _ := testBot(t)

	inter := userInteraction(platform.Input{CustomID: "weird.control"})
	fake.InjectInteraction(inter)
	assert.Nil(t, inter.LastResponse())
}

func TestGreeterWelcome(t *testing.T) {
	_, fake, _ := testBot(t)

	fake.InjectMemberJoin(platform.Member{
		ID: "u9", Username: "newbie", Mention: "<@u9>", GuildID: "g1", MemberCount: 150,
	})

	msgs := fake.MessagesIn("welcome")
	require.Len(t, msgs, 1)
	require.Len(t, msgs[0].Msg.Embeds, 1)
	assert.Contains(t, msgs[0].Msg.Embeds[0].Description, "<@u9>")
}

func TestGreeterIgnoresOtherGuilds(t *testing.T) {
	_, fake, _ := testBot(t)

	fake.InjectMemberJoin(platform.Member{ID: "u9", Username: "newbie", GuildID: "other"})
	assert.Empty(t, fake.MessagesIn("welcome"))
}

func TestGreeterGoodbye(t *testing.T) {
	_, fake, _ := testBot(t)

	fake.InjectMemberLeave(platform.Member{ID: "u9", Username: "leaver", Mention: "<@u9>", GuildID: "g1"})
	msgs := fake.MessagesIn("welcome")
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Msg.Embeds[0].Description, "<@u9>")
}
