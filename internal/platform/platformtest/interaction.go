package platformtest

import (
	"context"
	"sync"

	"github.com/limonericx/community-bot/internal/platform"
)

// Response records one reply made through a fake interaction.
type Response struct {
	Kind  string // "public", "ephemeral", "modal", "update"
	Msg   platform.Message
	Modal platform.Modal
}

// FakeInteraction implements platform.Interaction and records responses.
type FakeInteraction struct {
	mu sync.Mutex

	IDVal        string
	GuildIDVal   string
	ChannelIDVal string
	MessageIDVal string
	ActorVal     platform.Member
	InputVal     platform.Input

	Responses []Response
}

func (i *FakeInteraction) ID() string             { return i.IDVal }
func (i *FakeInteraction) GuildID() string        { return i.GuildIDVal }
func (i *FakeInteraction) ChannelID() string      { return i.ChannelIDVal }
func (i *FakeInteraction) MessageID() string      { return i.MessageIDVal }
func (i *FakeInteraction) Actor() platform.Member { return i.ActorVal }
func (i *FakeInteraction) Input() platform.Input  { return i.InputVal }

func (i *FakeInteraction) record(r Response) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.Responses = append(i.Responses, r)
}

func (i *FakeInteraction) Respond(ctx context.Context, msg platform.Message) error {
	i.record(Response{Kind: "public", Msg: msg})
	return nil
}

func (i *FakeInteraction) RespondEphemeral(ctx context.Context, msg platform.Message) error {
	i.record(Response{Kind: "ephemeral", Msg: msg})
	return nil
}

func (i *FakeInteraction) RespondModal(ctx context.Context, modal platform.Modal) error {
	i.record(Response{Kind: "modal", Modal: modal})
	return nil
}

func (i *FakeInteraction) UpdateMessage(ctx context.Context, msg platform.Message) error {
	i.record(Response{Kind: "update", Msg: msg})
	return nil
}

// LastResponse returns the most recent response, or nil.
func (i *FakeInteraction) LastResponse() *Response {
	i.mu.Lock()
	defer i.mu.Unlock()
	if len(i.Responses) == 0 {
		return nil
	}
	return &i.Responses[len(i.Responses)-1]
}
