// Package platform defines the narrow boundary between the bot's workflows
// and the chat platform hosting them. Everything the workflows need from
// Discord goes through Client; the discordgo binding lives in the discord
// subpackage and an in-memory fake in platformtest.
package platform

import (
	"context"
	"time"
)

// Permission is the subset of channel permissions the bot grants.
type Permission uint8

const (
	PermView Permission = 1 << iota
	PermSend
	PermHistory
	PermAttach
	PermManageMessages
	PermManageChannel
)

// GrantKind identifies the principal type of a permission grant.
type GrantKind int

const (
	GrantEveryone GrantKind = iota
	GrantRole
	GrantMember
)

// Grant is a per-principal visibility/permission entry on a channel.
type Grant struct {
	Kind  GrantKind
	ID    string // empty for GrantEveryone
	Allow Permission
	Deny  Permission
}

// EmbedField is a rendered name/value pair.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is structured rich content attached to a message.
type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
	FooterText  string
	FooterIcon  string
	Thumbnail   string
	Timestamp   time.Time
}

// Message is an outgoing message: plain content, optional embeds and
// interactive controls.
type Message struct {
	Content  string
	Embeds   []Embed
	Controls []Control
}

// HistoryMessage is one entry of a channel's recent history.
type HistoryMessage struct {
	ID           string
	ChannelID    string
	AuthorID     string
	AuthorIsBot  bool
	Content      string
	CreatedAt    time.Time
	HasReactions bool
}

// ChannelCreate describes a channel to provision under a parent category.
type ChannelCreate struct {
	Name     string
	Topic    string
	ParentID string
	Grants   []Grant
}

// Channel is the provisioned channel reference handed back to callers.
type Channel struct {
	ID   string
	Name string
}

// Member is a guild member as seen by join/leave events and identity lookups.
type Member struct {
	ID          string
	Username    string
	Mention     string
	AvatarURL   string
	GuildID     string
	MemberCount int
}

// Client is the chat-platform collaborator. All calls may block on the
// network and honor ctx cancellation.
type Client interface {
	// Messaging.
	SendMessage(ctx context.Context, channelID string, msg Message) (messageID string, err error)
	EditMessage(ctx context.Context, channelID, messageID string, msg Message) error
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	ReplyTo(ctx context.Context, channelID, messageID, content string) error
	RecentMessages(ctx context.Context, channelID string, limit int) ([]HistoryMessage, error)
	React(ctx context.Context, channelID, messageID, emoji string) error

	// Channel lifecycle.
	FindCategory(ctx context.Context, guildID, name string) (id string, err error)
	CreateCategory(ctx context.Context, guildID, name string, grants []Grant) (id string, err error)
	CreateChannel(ctx context.Context, guildID string, create ChannelCreate) (Channel, error)
	RenameChannel(ctx context.Context, channelID, name string) error
	RevokeMemberView(ctx context.Context, channelID, memberID string) error
	DeleteChannel(ctx context.Context, channelID string) error

	// Identity.
	HasRole(ctx context.Context, guildID, userID, roleID string) (bool, error)
	BotUserID() string

	// Ready is closed once the gateway connection is fully established.
	Ready() <-chan struct{}
}

// Session extends Client with event registration and connection lifecycle.
// The registered handlers are invoked from the platform's own dispatch
// goroutines; two invocations may interleave freely.
type Session interface {
	Client

	HandleInteraction(fn func(Interaction))
	HandleMessage(fn func(HistoryMessage))
	HandleMemberJoin(fn func(Member))
	HandleMemberLeave(fn func(Member))

	Open() error
	Close() error
}

// RoleMention renders a role reference as platform mention markup.
func RoleMention(roleID string) string {
	return "<@&" + roleID + ">"
}

// UserMention renders a user reference as platform mention markup.
func UserMention(userID string) string {
	return "<@" + userID + ">"
}

// ChannelMention renders a channel reference as platform mention markup.
func ChannelMention(channelID string) string {
	return "<#" + channelID + ">"
}
