package activity

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/internal/platform/platformtest"
)

const chatChannel = "chat"

func testMonitor(fake *platformtest.Fake, seed int64) *Monitor {
	return NewMonitor(Dependencies{
		Client: fake,
		Config: config.ActivityConfig{
			ChannelID:          chatChannel,
			CheckInterval:      5 * time.Minute,
			IdleThreshold:      30 * time.Minute,
			ReplyChance:        0.15,
			ReactChance:        0.25,
			ReactionPassChance: 0.30,
			HistoryDepth:       5,
		},
		CommandPrefix: "!",
		Rand:          rand.New(rand.NewSource(seed)),
		Logger:        zap.NewNop(),
	})
}

func historyMessage(id, author string, age time.Duration) platform.HistoryMessage {
	return platform.HistoryMessage{
		ID:        id,
		ChannelID: chatChannel,
		AuthorID:  author,
		Content:   "привет всем",
		CreatedAt: time.Now().Add(-age),
	}
}

func TestCheckIdlePromptsAfterSilence(t *testing.T) {
	fake := platformtest.NewFake()
	fake.History[chatChannel] = []platform.HistoryMessage{historyMessage("m1", "u1", 45*time.Minute)}
	m := testMonitor(fake, 1)

	m.checkIdle(context.Background())

	msgs := fake.MessagesIn(chatChannel)
	require.Len(t, msgs, 1)
	assert.Contains(t, config.ActivityPrompts, msgs[0].Msg.Content)
}

func TestCheckIdleFreshChannelStaysQuiet(t *testing.T) {
	fake := platformtest.NewFake()
	fake.History[chatChannel] = []platform.HistoryMessage{historyMessage("m1", "u1", 10*time.Minute)}
	m := testMonitor(fake, 1)

	m.checkIdle(context.Background())
	assert.Empty(t, fake.MessagesIn(chatChannel))
}

func TestCheckIdleSkipsOwnPrompt(t *testing.T) {
	fake := platformtest.NewFake()
	fake.History[chatChannel] = []platform.HistoryMessage{historyMessage("m1", fake.BotID, 2*time.Hour)}
	m := testMonitor(fake, 1)

	m.checkIdle(context.Background())
	assert.Empty(t, fake.MessagesIn(chatChannel))
}

func TestCheckIdleEmptyChannel(t *testing.T) {
	fake := platformtest.NewFake()
	m := testMonitor(fake, 1)

	m.checkIdle(context.Background())
	assert.Empty(t, fake.MessagesIn(chatChannel))
}

func TestReactorPassPicksHumanMessages(t *testing.T) {
	fake := platformtest.NewFake()
	reacted := platform.HistoryMessage{
		ID: "m3", ChannelID: chatChannel, AuthorID: "u3",
		CreatedAt: time.Now(), HasReactions: true,
	}
	fake.History[chatChannel] = []platform.HistoryMessage{
		historyMessage("m1", "u1", time.Minute),
		historyMessage("m2", fake.BotID, 2*time.Minute),
		reacted,
	}
	m := testMonitor(fake, 7)

	m.reactorPass(context.Background())

	require.Len(t, fake.Reactions["m1"], 1)
	assert.Contains(t, config.ReactionEmojis, fake.Reactions["m1"][0])
	assert.Empty(t, fake.Reactions["m2"])
	assert.Empty(t, fake.Reactions["m3"])
}

func TestReactorPassNoCandidates(t *testing.T) {
	fake := platformtest.NewFake()
	fake.History[chatChannel] = []platform.HistoryMessage{historyMessage("m1", fake.BotID, time.Minute)}
	m := testMonitor(fake, 7)

	m.reactorPass(context.Background())
	assert.Empty(t, fake.Reactions)
}

func TestHandleMessageIgnoresOtherChannels(t *testing.T) {
	fake := platformtest.NewFake()
	m := testMonitor(fake, 1)

	msg := historyMessage("m1", "u1", 0)
	msg.ChannelID = "elsewhere"
	for i := 0; i < 50; i++ {
		m.HandleMessage(context.Background(), msg)
	}
	assert.Empty(t, fake.Sent)
	assert.Empty(t, fake.Reactions)
}

func TestHandleMessageIgnoresCommandsAndBots(t *testing.T) {
	fake := platformtest.NewFake()
	m := testMonitor(fake, 1)

	command := historyMessage("m1", "u1", 0)
	command.Content = "!help"
	botMsg := historyMessage("m2", "u2", 0)
	botMsg.AuthorIsBot = true

	for i := 0; i < 50; i++ {
		m.HandleMessage(context.Background(), command)
		m.HandleMessage(context.Background(), botMsg)
	}
	assert.Empty(t, fake.Sent)
	assert.Empty(t, fake.Reactions)
}

func TestHandleMessageEventuallyResponds(t *testing.T) {
	fake := platformtest.NewFake()
	m := testMonitor(fake, 42)
	// Immediate delivery for the delayed reply path.
	m.cfg.ReplyDelayMin = 0
	m.cfg.ReplyDelayMax = 0

	for i := 0; i < 200; i++ {
		m.HandleMessage(context.Background(), historyMessage("m1", "u1", 0))
	}

	assert.Eventually(t, func() bool {
		return len(fake.MessagesIn(chatChannel)) > 0
	}, time.Second, 10*time.Millisecond)
	assert.NotEmpty(t, fake.Reactions["m1"])
}

func TestPickReactionToneMatching(t *testing.T) {
	fake := platformtest.NewFake()
	m := testMonitor(fake, 1)

	assert.Equal(t, "🤔", m.pickReaction("а когда вайп?"))
	assert.Equal(t, "👋", m.pickReaction("Привет народ"))
	assert.Equal(t, "😂", m.pickReaction("ахахах ну ты даешь"))
	assert.Equal(t, "🔥", m.pickReaction("спасибо за помощь"))
	assert.Contains(t, config.ReactionEmojis, m.pickReaction("обычное сообщение"))
}
