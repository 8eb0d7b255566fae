package domain

import "time"

// Flow identifies which intake variant produced a request.
type Flow string

const (
	FlowSupport        Flow = "SUPPORT"
	FlowMinecraftAdmin Flow = "MINECRAFT_ADMIN"
	FlowDiscordAdmin   Flow = "DISCORD_ADMIN"
)

// Application reports whether the flow is an admin application rather than
// a support ticket.
func (f Flow) Application() bool {
	return f == FlowMinecraftAdmin || f == FlowDiscordAdmin
}

// Requester is the opaque reference to the submitting user.
type Requester struct {
	ID        string
	Username  string
	Mention   string
	AvatarURL string
}

// Request is one submitted ticket or admin application. Constructed
// atomically by the intake form and immutable afterwards; only its
// presentation and the workspace around it evolve.
type Request struct {
	ID          string
	Flow        Flow
	Requester   Requester
	Identifier  string
	Category    *Category // support flow only
	Description string
	Extra       string
	Age         int // application flows only
	GuildID     string
	CreatedAt   time.Time
}
