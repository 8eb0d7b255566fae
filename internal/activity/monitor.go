// Package activity keeps the community channel alive: it prompts after
// long silences, occasionally reacts to recent messages, and sometimes
// responds to fresh ones.
package activity

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/platform"
)

// Monitor owns the three liveliness loops for a single watched channel.
type Monitor struct {
	client platform.Client
	cfg    config.ActivityConfig
	prefix string
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Dependencies bundles collaborators for the monitor. Rand may be nil, in
// which case a time-seeded source is used.
type Dependencies struct {
	Client        platform.Client
	Config        config.ActivityConfig
	CommandPrefix string
	Rand          *rand.Rand
	Logger        *zap.Logger
}

// NewMonitor constructs the monitor.
func NewMonitor(deps Dependencies) *Monitor {
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Monitor{
		client: deps.Client,
		cfg:    deps.Config,
		prefix: deps.CommandPrefix,
		logger: deps.Logger,
		rng:    rng,
	}
}

// Run starts the idle watchdog and the periodic reactor, blocking until
// the context is cancelled. Both loops wait for the platform session to
// be ready first. A no-op when no channel is configured.
func (m *Monitor) Run(ctx context.Context) {
	if m.cfg.ChannelID == "" {
		m.logger.Info("activity monitor disabled, no channel configured")
		return
	}

	select {
	case <-m.client.Ready():
	case <-ctx.Done():
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		m.watchdogLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		m.reactorLoop(ctx)
	}()
	wg.Wait()
}

func (m *Monitor) watchdogLoop(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.checkIdle(ctx)
		}
	}
}

// checkIdle posts a conversation prompt when the channel's newest message
// is stale. A bot-authored newest message suppresses the prompt so one
// silence never produces two.
func (m *Monitor) checkIdle(ctx context.Context) {
	history, err := m.client.RecentMessages(ctx, m.cfg.ChannelID, 1)
	if err != nil {
		m.logger.Warn("idle check history fetch failed", zap.Error(err))
		return
	}
	if len(history) == 0 {
		return
	}

	last := history[0]
	if last.AuthorIsBot || last.AuthorID == m.client.BotUserID() {
		return
	}
	if time.Since(last.CreatedAt) <= m.cfg.IdleThreshold {
		return
	}

	prompt := config.ActivityPrompts[m.intn(len(config.ActivityPrompts))]
	if _, err := m.client.SendMessage(ctx, m.cfg.ChannelID, platform.Message{Content: prompt}); err != nil {
		m.logger.Warn("idle prompt failed", zap.Error(err))
		return
	}
	m.logger.Info("idle prompt posted", zap.Duration("idle", time.Since(last.CreatedAt)))
}

func (m *Monitor) reactorLoop(ctx context.Context) {
	startup := m.durationBetween(m.cfg.StartupDelayMin, m.cfg.StartupDelayMax)
	if !sleepCtx(ctx, startup) {
		return
	}

	for {
		if m.chance(m.cfg.ReactionPassChance) {
			m.reactorPass(ctx)
		}
		interval := m.durationBetween(m.cfg.ReactorMinInterval, m.cfg.ReactorMaxInterval)
		if !sleepCtx(ctx, interval) {
			return
		}
	}
}

// reactorPass reacts to one random recent human message that nobody has
// reacted to yet.
func (m *Monitor) reactorPass(ctx context.Context) {
	history, err := m.client.RecentMessages(ctx, m.cfg.ChannelID, m.cfg.HistoryDepth)
	if err != nil {
		m.logger.Warn("reactor history fetch failed", zap.Error(err))
		return
	}

	var candidates []platform.HistoryMessage
	for _, msg := range history {
		if msg.AuthorIsBot || msg.AuthorID == m.client.BotUserID() || msg.HasReactions {
			continue
		}
		candidates = append(candidates, msg)
	}
	if len(candidates) == 0 {
		return
	}

	target := candidates[m.intn(len(candidates))]
	emoji := config.ReactionEmojis[m.intn(len(config.ReactionEmojis))]
	if err := m.client.React(ctx, m.cfg.ChannelID, target.ID, emoji); err != nil {
		m.logger.Warn("reaction failed", zap.Error(err))
		return
	}
	m.logger.Info("reacted to recent message", zap.String("emoji", emoji))
}

// HandleMessage is the inline responder for fresh messages in the watched
// channel. A small fraction get a delayed reply; some of the rest get an
// immediate reaction.
func (m *Monitor) HandleMessage(ctx context.Context, msg platform.HistoryMessage) {
	if msg.ChannelID != m.cfg.ChannelID {
		return
	}
	if msg.AuthorIsBot || msg.AuthorID == m.client.BotUserID() {
		return
	}
	if m.prefix != "" && strings.HasPrefix(msg.Content, m.prefix) {
		return
	}

	if m.chance(m.cfg.ReplyChance) {
		delay := m.durationBetween(m.cfg.ReplyDelayMin, m.cfg.ReplyDelayMax)
		reply := config.ActivityReplies[m.intn(len(config.ActivityReplies))]
		go func() {
			if !sleepCtx(ctx, delay) {
				return
			}
			if err := m.client.ReplyTo(ctx, msg.ChannelID, msg.ID, reply); err != nil {
				m.logger.Warn("inline reply failed", zap.Error(err))
			}
		}()
		return
	}

	if m.chance(m.cfg.ReactChance) {
		emoji := m.pickReaction(msg.Content)
		if err := m.client.React(ctx, msg.ChannelID, msg.ID, emoji); err != nil {
			m.logger.Warn("inline reaction failed", zap.Error(err))
		}
	}
}

// pickReaction matches the message tone before falling back to a random
// emoji. First matching rule wins.
func (m *Monitor) pickReaction(content string) string {
	lowered := strings.ToLower(content)
	switch {
	case strings.Contains(lowered, "?"):
		return "🤔"
	case containsAny(lowered, "привет", "здравствуй", "хай", "ку"):
		return "👋"
	case containsAny(lowered, "ахах", "хаха", "lol", "лол", "))"):
		return "😂"
	case containsAny(lowered, "спасибо", "круто", "класс", "супер"):
		return "🔥"
	default:
		return config.ReactionEmojis[m.intn(len(config.ReactionEmojis))]
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func (m *Monitor) chance(p float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Float64() < p
}

func (m *Monitor) intn(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rng.Intn(n)
}

func (m *Monitor) durationBetween(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return min + time.Duration(m.rng.Int63n(int64(max-min)))
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
