// Package discord binds the platform boundary to Discord via discordgo.
package discord

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/pkg/util"
)

// Adapter implements platform.Session on top of a discordgo session.
type Adapter struct {
	session *discordgo.Session
	logger  *zap.Logger

	mu        sync.RWMutex
	botUserID string

	ready     chan struct{}
	readyOnce sync.Once
}

// NewAdapter creates a gateway session with the intents the bot needs.
func NewAdapter(token string, logger *zap.Logger) (*Adapter, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, util.NewTransportError("create session", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent

	a := &Adapter{
		session: session,
		logger:  logger,
		ready:   make(chan struct{}),
	}

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		a.mu.Lock()
		if s.State != nil && s.State.User != nil {
			a.botUserID = s.State.User.ID
		}
		a.mu.Unlock()
		a.readyOnce.Do(func() { close(a.ready) })
		logger.Info("gateway ready")
	})

	return a, nil
}

// Open starts the gateway connection.
func (a *Adapter) Open() error {
	if err := a.session.Open(); err != nil {
		return util.NewTransportError("open gateway", err)
	}
	return nil
}

// Close shuts the gateway connection down.
func (a *Adapter) Close() error {
	return a.session.Close()
}

// Ready is closed once the gateway handshake completes.
func (a *Adapter) Ready() <-chan struct{} {
	return a.ready
}

// BotUserID returns the bot's own user id, empty before the first ready.
func (a *Adapter) BotUserID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.botUserID
}

// HandleInteraction registers a handler for component and modal interactions.
func (a *Adapter) HandleInteraction(fn func(platform.Interaction)) {
	a.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		switch ic.Type {
		case discordgo.InteractionMessageComponent, discordgo.InteractionModalSubmit:
			fn(&interaction{adapter: a, ic: ic})
		}
	})
}

// HandleMessage registers a handler for incoming channel messages.
func (a *Adapter) HandleMessage(fn func(platform.HistoryMessage)) {
	a.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil {
			return
		}
		fn(platform.HistoryMessage{
			ID:           m.ID,
			ChannelID:    m.ChannelID,
			AuthorID:     m.Author.ID,
			AuthorIsBot:  m.Author.Bot,
			Content:      m.Content,
			CreatedAt:    m.Timestamp,
			HasReactions: len(m.Reactions) > 0,
		})
	})
}

// HandleMemberJoin registers a handler for guild member joins.
func (a *Adapter) HandleMemberJoin(fn func(platform.Member)) {
	a.session.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
		fn(a.memberOf(m.Member, m.GuildID))
	})
}

// HandleMemberLeave registers a handler for guild member departures.
func (a *Adapter) HandleMemberLeave(fn func(platform.Member)) {
	a.session.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
		fn(a.memberOf(m.Member, m.GuildID))
	})
}

func (a *Adapter) memberOf(m *discordgo.Member, guildID string) platform.Member {
	member := platform.Member{GuildID: guildID}
	if m != nil && m.User != nil {
		member.ID = m.User.ID
		member.Username = m.User.Username
		member.Mention = m.User.Mention()
		member.AvatarURL = m.User.AvatarURL("")
	}
	if guild, err := a.session.State.Guild(guildID); err == nil {
		member.MemberCount = guild.MemberCount
	}
	return member
}

// SendMessage posts content, embeds and controls to a channel.
func (a *Adapter) SendMessage(ctx context.Context, channelID string, msg platform.Message) (string, error) {
	send := &discordgo.MessageSend{
		Content:    msg.Content,
		Embeds:     encodeEmbeds(msg.Embeds),
		Components: encodeControls(msg.Controls),
	}
	sent, err := a.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx))
	if err != nil {
		return "", util.NewTransportError("send message", err)
	}
	return sent.ID, nil
}

// EditMessage replaces a message's content, embeds and controls.
func (a *Adapter) EditMessage(ctx context.Context, channelID, messageID string, msg platform.Message) error {
	embeds := encodeEmbeds(msg.Embeds)
	components := encodeControls(msg.Controls)
	edit := &discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Content:    &msg.Content,
		Embeds:     &embeds,
		Components: &components,
	}
	if _, err := a.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		return util.NewTransportError("edit message", err)
	}
	return nil
}

// DeleteMessage removes a message.
func (a *Adapter) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if err := a.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return util.NewTransportError("delete message", err)
	}
	return nil
}

// ReplyTo posts content as a reply referencing an existing message.
func (a *Adapter) ReplyTo(ctx context.Context, channelID, messageID, content string) error {
	send := &discordgo.MessageSend{
		Content: content,
		Reference: &discordgo.MessageReference{
			MessageID: messageID,
			ChannelID: channelID,
		},
	}
	if _, err := a.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx)); err != nil {
		return util.NewTransportError("reply to message", err)
	}
	return nil
}

// RecentMessages fetches up to limit newest messages, newest first.
func (a *Adapter) RecentMessages(ctx context.Context, channelID string, limit int) ([]platform.HistoryMessage, error) {
	msgs, err := a.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, util.NewTransportError("fetch history", err)
	}
	history := make([]platform.HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		if m.Author == nil {
			continue
		}
		history = append(history, platform.HistoryMessage{
			ID:           m.ID,
			ChannelID:    channelID,
			AuthorID:     m.Author.ID,
			AuthorIsBot:  m.Author.Bot,
			Content:      m.Content,
			CreatedAt:    m.Timestamp,
			HasReactions: len(m.Reactions) > 0,
		})
	}
	return history, nil
}

// React attaches an emoji reaction to a message.
func (a *Adapter) React(ctx context.Context, channelID, messageID, emoji string) error {
	if err := a.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		return util.NewTransportError("add reaction", err)
	}
	return nil
}

// FindCategory looks up a category channel by display name. Returns
// NOT_FOUND when the guild has no category with that name.
func (a *Adapter) FindCategory(ctx context.Context, guildID, name string) (string, error) {
	channels, err := a.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return "", util.NewTransportError("list channels", err)
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildCategory && ch.Name == name {
			return ch.ID, nil
		}
	}
	return "", util.NewNotFound("category", map[string]any{"name": name})
}

// CreateCategory provisions a grouping category with the given grants.
func (a *Adapter) CreateCategory(ctx context.Context, guildID, name string, grants []platform.Grant) (string, error) {
	data := discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildCategory,
		PermissionOverwrites: encodeGrants(guildID, grants),
	}
	ch, err := a.session.GuildChannelCreateComplex(guildID, data, discordgo.WithContext(ctx))
	if err != nil {
		return "", util.NewTransportError("create category", err)
	}
	return ch.ID, nil
}

// CreateChannel provisions a text channel under a parent category.
func (a *Adapter) CreateChannel(ctx context.Context, guildID string, create platform.ChannelCreate) (platform.Channel, error) {
	data := discordgo.GuildChannelCreateData{
		Name:                 create.Name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                create.Topic,
		ParentID:             create.ParentID,
		PermissionOverwrites: encodeGrants(guildID, create.Grants),
	}
	ch, err := a.session.GuildChannelCreateComplex(guildID, data, discordgo.WithContext(ctx))
	if err != nil {
		return platform.Channel{}, util.NewTransportError("create channel", err)
	}
	return platform.Channel{ID: ch.ID, Name: ch.Name}, nil
}

// RenameChannel changes a channel's display name.
func (a *Adapter) RenameChannel(ctx context.Context, channelID, name string) error {
	if _, err := a.session.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name}, discordgo.WithContext(ctx)); err != nil {
		return util.NewTransportError("rename channel", err)
	}
	return nil
}

// RevokeMemberView denies a member's view permission on a channel.
func (a *Adapter) RevokeMemberView(ctx context.Context, channelID, memberID string) error {
	err := a.session.ChannelPermissionSet(
		channelID, memberID, discordgo.PermissionOverwriteTypeMember,
		0, discordgo.PermissionViewChannel, discordgo.WithContext(ctx),
	)
	if err != nil {
		return util.NewTransportError("revoke member view", err)
	}
	return nil
}

// DeleteChannel removes a channel. A channel that is already gone surfaces
// as NOT_FOUND so callers can swallow it.
func (a *Adapter) DeleteChannel(ctx context.Context, channelID string) error {
	if _, err := a.session.ChannelDelete(channelID, discordgo.WithContext(ctx)); err != nil {
		if restErr, ok := err.(*discordgo.RESTError); ok && restErr.Response != nil && restErr.Response.StatusCode == 404 {
			return util.NewNotFound("channel", map[string]any{"channel_id": channelID})
		}
		return util.NewTransportError("delete channel", err)
	}
	return nil
}

// HasRole reports whether the guild member holds the given role.
func (a *Adapter) HasRole(ctx context.Context, guildID, userID, roleID string) (bool, error) {
	member, err := a.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return false, util.NewTransportError("fetch member", err)
	}
	for _, role := range member.Roles {
		if role == roleID {
			return true, nil
		}
	}
	return false, nil
}

func encodeEmbeds(embeds []platform.Embed) []*discordgo.MessageEmbed {
	out := make([]*discordgo.MessageEmbed, 0, len(embeds))
	for _, e := range embeds {
		encoded := &discordgo.MessageEmbed{
			Title:       e.Title,
			Description: e.Description,
			Color:       e.Color,
		}
		for _, f := range e.Fields {
			encoded.Fields = append(encoded.Fields, &discordgo.MessageEmbedField{
				Name:   f.Name,
				Value:  f.Value,
				Inline: f.Inline,
			})
		}
		if e.FooterText != "" {
			encoded.Footer = &discordgo.MessageEmbedFooter{Text: e.FooterText, IconURL: e.FooterIcon}
		}
		if e.Thumbnail != "" {
			encoded.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.Thumbnail}
		}
		if !e.Timestamp.IsZero() {
			encoded.Timestamp = e.Timestamp.Format(time.RFC3339)
		}
		out = append(out, encoded)
	}
	return out
}

// encodeControls lays message controls out into action rows: buttons share
// a row, each select menu takes its own.
func encodeControls(controls []platform.Control) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	var buttonRow []discordgo.MessageComponent

	flushButtons := func() {
		if len(buttonRow) > 0 {
			rows = append(rows, discordgo.ActionsRow{Components: buttonRow})
			buttonRow = nil
		}
	}

	for _, control := range controls {
		switch c := control.(type) {
		case *platform.Button:
			buttonRow = append(buttonRow, encodeButton(c))
		case *platform.SelectMenu:
			flushButtons()
			rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{encodeSelect(c)}})
		}
	}
	flushButtons()
	return rows
}

func encodeButton(b *platform.Button) discordgo.Button {
	button := discordgo.Button{
		Label:    b.Label,
		Style:    encodeButtonStyle(b.Style),
		Disabled: b.Disabled,
	}
	if b.Style == platform.ButtonLink {
		button.URL = b.URL
	} else {
		button.CustomID = b.ID
	}
	if b.Emoji != "" {
		button.Emoji = &discordgo.ComponentEmoji{Name: b.Emoji}
	}
	return button
}

func encodeSelect(s *platform.SelectMenu) discordgo.SelectMenu {
	menu := discordgo.SelectMenu{
		CustomID:    s.ID,
		Placeholder: s.Placeholder,
		Disabled:    s.Disabled,
	}
	for _, opt := range s.Options {
		option := discordgo.SelectMenuOption{Label: opt.Label, Value: opt.Value}
		if opt.Emoji != "" {
			option.Emoji = &discordgo.ComponentEmoji{Name: opt.Emoji}
		}
		menu.Options = append(menu.Options, option)
	}
	return menu
}

func encodeButtonStyle(style platform.ButtonStyle) discordgo.ButtonStyle {
	switch style {
	case platform.ButtonSuccess:
		return discordgo.SuccessButton
	case platform.ButtonDanger:
		return discordgo.DangerButton
	case platform.ButtonSecondary:
		return discordgo.SecondaryButton
	case platform.ButtonLink:
		return discordgo.LinkButton
	default:
		return discordgo.PrimaryButton
	}
}

func encodeModalFields(fields []*platform.TextField) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, len(fields))
	for _, f := range fields {
		style := discordgo.TextInputShort
		if f.Paragraph {
			style = discordgo.TextInputParagraph
		}
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    f.ID,
				Label:       f.Label,
				Style:       style,
				Placeholder: f.Placeholder,
				Required:    f.Required,
				MinLength:   f.MinLen,
				MaxLength:   f.MaxLen,
			},
		}})
	}
	return rows
}

func encodeGrants(guildID string, grants []platform.Grant) []*discordgo.PermissionOverwrite {
	overwrites := make([]*discordgo.PermissionOverwrite, 0, len(grants))
	for _, g := range grants {
		overwrite := &discordgo.PermissionOverwrite{
			Allow: permissionBits(g.Allow),
			Deny:  permissionBits(g.Deny),
		}
		switch g.Kind {
		case platform.GrantEveryone:
			// The @everyone role shares the guild's id.
			overwrite.ID = guildID
			overwrite.Type = discordgo.PermissionOverwriteTypeRole
		case platform.GrantRole:
			overwrite.ID = g.ID
			overwrite.Type = discordgo.PermissionOverwriteTypeRole
		case platform.GrantMember:
			overwrite.ID = g.ID
			overwrite.Type = discordgo.PermissionOverwriteTypeMember
		}
		overwrites = append(overwrites, overwrite)
	}
	return overwrites
}

func permissionBits(p platform.Permission) int64 {
	var bits int64
	if p&platform.PermView != 0 {
		bits |= discordgo.PermissionViewChannel
	}
	if p&platform.PermSend != 0 {
		bits |= discordgo.PermissionSendMessages
	}
	if p&platform.PermHistory != 0 {
		bits |= discordgo.PermissionReadMessageHistory
	}
	if p&platform.PermAttach != 0 {
		bits |= discordgo.PermissionAttachFiles
	}
	if p&platform.PermManageMessages != 0 {
		bits |= discordgo.PermissionManageMessages
	}
	if p&platform.PermManageChannel != 0 {
		bits |= discordgo.PermissionManageChannels
	}
	return bits
}
