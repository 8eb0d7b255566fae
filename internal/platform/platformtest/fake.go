// Package platformtest provides an in-memory platform.Session for tests.
package platformtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/pkg/util"
)

// SentMessage records one message posted through the fake.
type SentMessage struct {
	ID        string
	ChannelID string
	Msg       platform.Message
	ReplyToID string
	Deleted   bool
}

// FakeChannel records a provisioned channel.
type FakeChannel struct {
	ID       string
	Name     string
	Topic    string
	ParentID string
	Grants   []platform.Grant
	Deleted  bool
}

// Fake is an in-memory platform.Session. All state is exported for
// assertions; mutate it only before handing the fake to the code under test.
type Fake struct {
	mu sync.Mutex

	BotID      string
	Roles      map[string][]string // userID -> role ids
	Categories map[string]string   // category name -> id
	Channels   map[string]*FakeChannel
	Sent       []*SentMessage
	History    map[string][]platform.HistoryMessage // channelID -> newest first
	Reactions  map[string][]string                  // messageID -> emoji
	Revoked    map[string][]string                  // channelID -> member ids with view revoked
	Renames    map[string][]string                  // channelID -> successive names

	failures map[string]error
	nextID   int

	ready chan struct{}

	interactionFn func(platform.Interaction)
	messageFn     func(platform.HistoryMessage)
	joinFn        func(platform.Member)
	leaveFn       func(platform.Member)
}

// NewFake returns a ready fake session.
func NewFake() *Fake {
	ready := make(chan struct{})
	close(ready)
	return &Fake{
		BotID:      "bot",
		Roles:      make(map[string][]string),
		Categories: make(map[string]string),
		Channels:   make(map[string]*FakeChannel),
		History:    make(map[string][]platform.HistoryMessage),
		Reactions:  make(map[string][]string),
		Revoked:    make(map[string][]string),
		Renames:    make(map[string][]string),
		failures:   make(map[string]error),
		ready:      ready,
	}
}

// FailWith makes the next call of the named operation return err.
func (f *Fake) FailWith(operation string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[operation] = err
}

func (f *Fake) takeFailure(operation string) error {
	if err, ok := f.failures[operation]; ok {
		delete(f.failures, operation)
		return err
	}
	return nil
}

func (f *Fake) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func (f *Fake) BotUserID() string      { return f.BotID }
func (f *Fake) Ready() <-chan struct{} { return f.ready }
func (f *Fake) Open() error            { return nil }
func (f *Fake) Close() error           { return nil }

func (f *Fake) HandleInteraction(fn func(platform.Interaction)) { f.interactionFn = fn }
func (f *Fake) HandleMessage(fn func(platform.HistoryMessage))  { f.messageFn = fn }
func (f *Fake) HandleMemberJoin(fn func(platform.Member))       { f.joinFn = fn }
func (f *Fake) HandleMemberLeave(fn func(platform.Member))      { f.leaveFn = fn }

// InjectInteraction delivers an interaction to the registered handler.
func (f *Fake) InjectInteraction(i platform.Interaction) {
	if f.interactionFn != nil {
		f.interactionFn(i)
	}
}

// InjectMessage delivers an incoming message to the registered handler.
func (f *Fake) InjectMessage(m platform.HistoryMessage) {
	if f.messageFn != nil {
		f.messageFn(m)
	}
}

// InjectMemberJoin delivers a member-join event.
func (f *Fake) InjectMemberJoin(m platform.Member) {
	if f.joinFn != nil {
		f.joinFn(m)
	}
}

// InjectMemberLeave delivers a member-leave event.
func (f *Fake) InjectMemberLeave(m platform.Member) {
	if f.leaveFn != nil {
		f.leaveFn(m)
	}
}

func (f *Fake) SendMessage(ctx context.Context, channelID string, msg platform.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("SendMessage"); err != nil {
		return "", err
	}
	sent := &SentMessage{ID: f.newID("m"), ChannelID: channelID, Msg: msg}
	f.Sent = append(f.Sent, sent)
	return sent.ID, nil
}

func (f *Fake) EditMessage(ctx context.Context, channelID, messageID string, msg platform.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("EditMessage"); err != nil {
		return err
	}
	for _, sent := range f.Sent {
		if sent.ID == messageID {
			sent.Msg = msg
			return nil
		}
	}
	return util.NewNotFound("message", map[string]any{"message_id": messageID})
}

func (f *Fake) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sent := range f.Sent {
		if sent.ID == messageID {
			sent.Deleted = true
			return nil
		}
	}
	return util.NewNotFound("message", map[string]any{"message_id": messageID})
}

func (f *Fake) ReplyTo(ctx context.Context, channelID, messageID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("ReplyTo"); err != nil {
		return err
	}
	f.Sent = append(f.Sent, &SentMessage{
		ID:        f.newID("m"),
		ChannelID: channelID,
		Msg:       platform.Message{Content: content},
		ReplyToID: messageID,
	})
	return nil
}

func (f *Fake) RecentMessages(ctx context.Context, channelID string, limit int) ([]platform.HistoryMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("RecentMessages"); err != nil {
		return nil, err
	}
	history := f.History[channelID]
	if len(history) > limit {
		history = history[:limit]
	}
	out := make([]platform.HistoryMessage, len(history))
	copy(out, history)
	return out, nil
}

func (f *Fake) React(ctx context.Context, channelID, messageID, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("React"); err != nil {
		return err
	}
	f.Reactions[messageID] = append(f.Reactions[messageID], emoji)
	return nil
}

func (f *Fake) FindCategory(ctx context.Context, guildID, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("FindCategory"); err != nil {
		return "", err
	}
	if id, ok := f.Categories[name]; ok {
		return id, nil
	}
	return "", util.NewNotFound("category", map[string]any{"name": name})
}

func (f *Fake) CreateCategory(ctx context.Context, guildID, name string, grants []platform.Grant) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("CreateCategory"); err != nil {
		return "", err
	}
	id := f.newID("cat")
	f.Categories[name] = id
	f.Channels[id] = &FakeChannel{ID: id, Name: name, Grants: grants}
	return id, nil
}

func (f *Fake) CreateChannel(ctx context.Context, guildID string, create platform.ChannelCreate) (platform.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("CreateChannel"); err != nil {
		return platform.Channel{}, err
	}
	id := f.newID("ch")
	f.Channels[id] = &FakeChannel{
		ID:       id,
		Name:     create.Name,
		Topic:    create.Topic,
		ParentID: create.ParentID,
		Grants:   create.Grants,
	}
	return platform.Channel{ID: id, Name: create.Name}, nil
}

func (f *Fake) RenameChannel(ctx context.Context, channelID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("RenameChannel"); err != nil {
		return err
	}
	ch, ok := f.Channels[channelID]
	if !ok {
		return util.NewNotFound("channel", map[string]any{"channel_id": channelID})
	}
	ch.Name = name
	f.Renames[channelID] = append(f.Renames[channelID], name)
	return nil
}

func (f *Fake) RevokeMemberView(ctx context.Context, channelID, memberID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("RevokeMemberView"); err != nil {
		return err
	}
	f.Revoked[channelID] = append(f.Revoked[channelID], memberID)
	return nil
}

func (f *Fake) DeleteChannel(ctx context.Context, channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("DeleteChannel"); err != nil {
		return err
	}
	ch, ok := f.Channels[channelID]
	if !ok || ch.Deleted {
		return util.NewNotFound("channel", map[string]any{"channel_id": channelID})
	}
	ch.Deleted = true
	return nil
}

func (f *Fake) HasRole(ctx context.Context, guildID, userID, roleID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure("HasRole"); err != nil {
		return false, err
	}
	for _, role := range f.Roles[userID] {
		if role == roleID {
			return true, nil
		}
	}
	return false, nil
}

// MessagesIn returns the non-deleted messages sent to a channel, in order.
func (f *Fake) MessagesIn(channelID string) []*SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*SentMessage
	for _, sent := range f.Sent {
		if sent.ChannelID == channelID && !sent.Deleted {
			out = append(out, sent)
		}
	}
	return out
}

// Message returns the sent message with the given id, or nil.
func (f *Fake) Message(messageID string) *SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sent := range f.Sent {
		if sent.ID == messageID {
			return sent
		}
	}
	return nil
}
