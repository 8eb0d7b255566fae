package platform

import "context"

// Input carries the payload of a triggering interaction: the control's
// custom id plus, depending on the variant, the chosen value or the
// submitted modal fields.
type Input struct {
	CustomID string
	Values   []string          // select menus
	Fields   map[string]string // modal submissions, keyed by field id
}

// Value returns the single chosen value of a select interaction.
func (in Input) Value() string {
	if len(in.Values) == 0 {
		return ""
	}
	return in.Values[0]
}

// Interaction is a user-triggered event (button press, select choice,
// modal submission) together with its response surface. Each interaction
// may be responded to exactly once.
type Interaction interface {
	ID() string
	GuildID() string
	ChannelID() string
	// MessageID identifies the message carrying the exercised control.
	// Empty for modal submissions triggered from another interaction.
	MessageID() string

	Actor() Member
	Input() Input

	// Respond sends a public message in reply.
	Respond(ctx context.Context, msg Message) error
	// RespondEphemeral sends a reply visible only to the actor.
	RespondEphemeral(ctx context.Context, msg Message) error
	// RespondModal opens a structured input form.
	RespondModal(ctx context.Context, modal Modal) error
	// UpdateMessage edits the message the control lives on in place.
	UpdateMessage(ctx context.Context, msg Message) error
}
