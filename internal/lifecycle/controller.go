// Package lifecycle drives review items through their state machine:
// rendering, transition handling, authorization and deferred archival.
package lifecycle

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/domain"
	"github.com/limonericx/community-bot/internal/events"
	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/internal/render"
	"github.com/limonericx/community-bot/internal/review"
	"github.com/limonericx/community-bot/internal/workspace"
	"github.com/limonericx/community-bot/pkg/util"
)

// Archiver schedules deferred workspace destruction.
type Archiver interface {
	Schedule(ctx context.Context, channelID string, due time.Time) error
}

// Controller owns the review-item registry and applies lifecycle
// transitions. The backing message is a shared document edited without
// compare-and-swap; two racing transitions resolve last-write-wins.
type Controller struct {
	mu    sync.Mutex
	items map[string]*review.Item // keyed by message id

	client      platform.Client
	provisioner *workspace.Provisioner
	archiver    Archiver
	dispatcher  events.Dispatcher
	cfg         *config.Config
	logger      *zap.Logger
}

// Dependencies bundles collaborators for the controller.
type Dependencies struct {
	Client      platform.Client
	Provisioner *workspace.Provisioner
	Archiver    Archiver
	Dispatcher  events.Dispatcher
	Config      *config.Config
	Logger      *zap.Logger
}

// NewController constructs the controller.
func NewController(deps Dependencies) *Controller {
	return &Controller{
		items:       make(map[string]*review.Item),
		client:      deps.Client,
		provisioner: deps.Provisioner,
		archiver:    deps.Archiver,
		dispatcher:  deps.Dispatcher,
		cfg:         deps.Config,
		logger:      deps.Logger,
	}
}

// OpenTicket provisions a workspace for a support request and posts the
// reviewable message into it.
func (c *Controller) OpenTicket(ctx context.Context, req *domain.Request) (*workspace.Workspace, error) {
	ws, err := c.provisioner.Provision(ctx, req)
	if err != nil {
		return nil, err
	}

	item := review.NewTicketItem(req, ws)
	msg := render.ReviewMessage(item)
	msg.Content = render.TicketIntro(req, c.cfg.Discord.ReviewerRoleID)

	messageID, err := c.client.SendMessage(ctx, ws.ChannelID, msg)
	if err != nil {
		return nil, err
	}
	item.ChannelID = ws.ChannelID
	item.MessageID = messageID
	c.register(item)

	c.publish(ctx, events.Event{
		Type:      events.EventRequestSubmitted,
		RequestID: req.ID,
		ActorID:   req.Requester.ID,
		Payload: events.RequestSubmittedPayload{
			Flow:       req.Flow,
			Identifier: req.Identifier,
			Category:   req.Category.Value,
		},
	})
	c.publish(ctx, events.Event{
		Type:      events.EventWorkspaceProvisioned,
		RequestID: req.ID,
		Payload: events.WorkspaceProvisionedPayload{
			ChannelID:   ws.ChannelID,
			ChannelName: ws.Name,
		},
	})

	c.logger.Info("ticket opened",
		zap.String("request_id", req.ID),
		zap.String("channel", ws.Name),
		zap.String("requester", req.Requester.Username))
	return ws, nil
}

// OpenApplication posts an admin application into its shared review channel.
func (c *Controller) OpenApplication(ctx context.Context, req *domain.Request) error {
	channelID := c.cfg.Discord.MinecraftAdminReviewChannelID
	if req.Flow == domain.FlowDiscordAdmin {
		channelID = c.cfg.Discord.DiscordAdminReviewChannelID
	}
	if channelID == "" {
		return util.NewResourceError("application review channel not configured", nil)
	}

	item := review.NewApplicationItem(req)
	messageID, err := c.client.SendMessage(ctx, channelID, render.ReviewMessage(item))
	if err != nil {
		return err
	}
	item.ChannelID = channelID
	item.MessageID = messageID
	c.register(item)

	c.publish(ctx, events.Event{
		Type:      events.EventRequestSubmitted,
		RequestID: req.ID,
		ActorID:   req.Requester.ID,
		Payload: events.RequestSubmittedPayload{
			Flow:       req.Flow,
			Identifier: req.Identifier,
		},
	})

	c.logger.Info("application submitted",
		zap.String("request_id", req.ID),
		zap.String("flow", string(req.Flow)),
		zap.String("requester", req.Requester.Username))
	return nil
}

// HandleControl dispatches a review-message control interaction.
func (c *Controller) HandleControl(ctx context.Context, inter platform.Interaction) error {
	switch inter.Input().CustomID {
	case review.ControlClaim:
		return c.Claim(ctx, inter)
	case review.ControlClose:
		return c.Close(ctx, inter)
	case review.ControlAccept:
		return c.Accept(ctx, inter)
	case review.ControlReject:
		return c.Reject(ctx, inter)
	case review.ControlReview:
		return c.MarkInReview(ctx, inter)
	default:
		return util.NewNotFound("control", map[string]any{"custom_id": inter.Input().CustomID})
	}
}

// Claim moves a ticket from Open to Claimed.
func (c *Controller) Claim(ctx context.Context, inter platform.Interaction) error {
	item, err := c.authorizedItem(ctx, inter)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if item.Status != review.StatusOpen || item.ControlDisabled(review.ControlClaim) {
		c.mu.Unlock()
		return inter.RespondEphemeral(ctx, render.Notice("ℹ️ Тикет уже взят в работу."))
	}
	oldStatus := item.Status
	item.Status = review.StatusClaimed
	item.Annotate("👨‍💻 Взял в работу", inter.Actor().Mention, time.Now())
	item.DisableControl(review.ControlClaim)
	msg := render.ReviewMessage(item)
	var renameChannelID, renameTo string
	if item.Workspace != nil {
		renameChannelID = item.Workspace.ChannelID
		renameTo = markedName("🔧-", item.Workspace.Name)
	}
	c.mu.Unlock()

	if err := inter.UpdateMessage(ctx, msg); err != nil {
		return err
	}

	if renameChannelID != "" {
		if err := c.client.RenameChannel(ctx, renameChannelID, renameTo); err != nil {
			c.logger.Warn("ticket channel rename failed", zap.Error(err))
		} else {
			c.mu.Lock()
			item.Workspace.Name = renameTo
			c.mu.Unlock()
		}
	}

	c.publishStateChange(ctx, item, oldStatus, review.StatusClaimed)
	c.logger.Info("ticket claimed",
		zap.String("request_id", item.Request.ID),
		zap.String("reviewer", inter.Actor().Username))
	return nil
}

// Close moves a ticket to its terminal Closed state: all controls off,
// requester visibility revoked, closure notice posted, destruction
// scheduled after the retention window.
func (c *Controller) Close(ctx context.Context, inter platform.Interaction) error {
	item, err := c.authorizedItem(ctx, inter)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if item.Status.Terminal() {
		c.mu.Unlock()
		return inter.RespondEphemeral(ctx, render.Notice("ℹ️ Тикет уже закрыт."))
	}
	oldStatus := item.Status
	item.Status = review.StatusClosed
	item.Annotate("🔒 Закрыл тикет", inter.Actor().Mention, time.Now())
	item.DisableAllControls()
	msg := render.ReviewMessage(item)
	var ws *workspace.Workspace
	if item.Workspace != nil {
		snapshot := *item.Workspace
		ws = &snapshot
	}
	c.mu.Unlock()

	if err := inter.UpdateMessage(ctx, msg); err != nil {
		return err
	}

	if ws != nil {
		c.closeWorkspace(ctx, ws, inter.Actor().Mention)
	}

	c.publishStateChange(ctx, item, oldStatus, review.StatusClosed)
	c.logger.Info("ticket closed",
		zap.String("request_id", item.Request.ID),
		zap.String("reviewer", inter.Actor().Username))
	return nil
}

// closeWorkspace applies the channel-side effects of closing. It works on
// a workspace snapshot taken under the controller lock. Each step is best
// effort; a failed step is logged and the rest still run so the archival
// entry is never lost to a rename hiccup.
func (c *Controller) closeWorkspace(ctx context.Context, ws *workspace.Workspace, actorMention string) {
	name := "🔒-закрыт-" + strippedName(ws.Name)
	if err := c.client.RenameChannel(ctx, ws.ChannelID, markedTruncate(name)); err != nil {
		c.logger.Warn("closed channel rename failed", zap.Error(err))
	}

	if err := c.client.RevokeMemberView(ctx, ws.ChannelID, ws.RequesterID); err != nil {
		c.logger.Warn("requester visibility revoke failed", zap.Error(err))
	}

	if _, err := c.client.SendMessage(ctx, ws.ChannelID, render.Notice(render.ClosureNotice(actorMention))); err != nil {
		c.logger.Warn("closure notice failed", zap.Error(err))
	}

	due := time.Now().Add(c.cfg.Lifecycle.Retention)
	if err := c.archiver.Schedule(ctx, ws.ChannelID, due); err != nil {
		c.logger.Error("archival scheduling failed",
			zap.String("channel_id", ws.ChannelID), zap.Error(err))
	}
}

// Accept marks an application accepted. Only the Accept control disables
// itself; the remaining controls stay live.
func (c *Controller) Accept(ctx context.Context, inter platform.Interaction) error {
	return c.transitionApplication(ctx, inter, review.ControlAccept, review.StatusAccepted, "👨‍💼 Принял заявку")
}

// Reject marks an application rejected.
func (c *Controller) Reject(ctx context.Context, inter platform.Interaction) error {
	return c.transitionApplication(ctx, inter, review.ControlReject, review.StatusRejected, "👨‍💼 Отклонил заявку")
}

// MarkInReview marks an application as being looked at.
func (c *Controller) MarkInReview(ctx context.Context, inter platform.Interaction) error {
	return c.transitionApplication(ctx, inter, review.ControlReview, review.StatusInReview, "👀 Взял на рассмотрение")
}

func (c *Controller) transitionApplication(ctx context.Context, inter platform.Interaction, controlID string, status review.Status, label string) error {
	item, err := c.authorizedItem(ctx, inter)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if item.ControlDisabled(controlID) {
		c.mu.Unlock()
		return inter.RespondEphemeral(ctx, render.Notice("ℹ️ Это действие уже выполнено."))
	}
	oldStatus := item.Status
	item.Status = status
	item.Annotate(label, inter.Actor().Mention, time.Now())
	item.DisableControl(controlID)
	msg := render.ReviewMessage(item)
	c.mu.Unlock()

	if err := inter.UpdateMessage(ctx, msg); err != nil {
		return err
	}

	c.publishStateChange(ctx, item, oldStatus, status)
	c.logger.Info("application transitioned",
		zap.String("request_id", item.Request.ID),
		zap.String("status", string(status)),
		zap.String("reviewer", inter.Actor().Username))
	return nil
}

// authorizedItem resolves the interaction's review item and enforces the
// reviewer-role guard. An unauthorized attempt produces a private notice
// and changes nothing.
func (c *Controller) authorizedItem(ctx context.Context, inter platform.Interaction) (*review.Item, error) {
	c.mu.Lock()
	item, ok := c.items[inter.MessageID()]
	c.mu.Unlock()
	if !ok {
		_ = inter.RespondEphemeral(ctx, render.Notice("❌ Произошла ошибка. Попробуйте позже."))
		return nil, util.NewNotFound("review item", map[string]any{"message_id": inter.MessageID()})
	}

	hasRole, err := c.client.HasRole(ctx, inter.GuildID(), inter.Actor().ID, c.cfg.Discord.ReviewerRoleID)
	if err != nil {
		_ = inter.RespondEphemeral(ctx, render.Notice("❌ Произошла ошибка. Попробуйте позже."))
		return nil, err
	}
	if !hasRole {
		notice := "❌ У вас нет прав для управления тикетами!"
		_ = inter.RespondEphemeral(ctx, render.Notice(notice))
		return nil, util.NewAuthorizationError(notice)
	}
	return item, nil
}

func (c *Controller) register(item *review.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[item.MessageID] = item
}

// Item returns the registered item for a message id, mainly for tests and
// the status endpoint.
func (c *Controller) Item(messageID string) (*review.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[messageID]
	return item, ok
}

// OpenItems counts registered items not yet in a terminal state.
func (c *Controller) OpenItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, item := range c.items {
		if !item.Status.Terminal() {
			count++
		}
	}
	return count
}

func (c *Controller) publishStateChange(ctx context.Context, item *review.Item, from, to review.Status) {
	c.publish(ctx, events.Event{
		Type:      events.EventReviewStateChanged,
		RequestID: item.Request.ID,
		Payload: events.ReviewStateChangedPayload{
			OldStatus: string(from),
			NewStatus: string(to),
		},
	})
}

func (c *Controller) publish(ctx context.Context, event events.Event) {
	if c.dispatcher == nil {
		return
	}
	_ = c.dispatcher.Publish(ctx, event)
}

// markedName swaps the workspace name's "тикет-" prefix for a state marker.
func markedName(marker, name string) string {
	return markedTruncate(marker + strippedName(name))
}

func strippedName(name string) string {
	if rest, ok := strings.CutPrefix(name, "тикет-"); ok {
		return rest
	}
	if idx := strings.Index(name, "-"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

func markedTruncate(name string) string {
	runes := []rune(name)
	if len(runes) > workspace.MaxChannelNameLen {
		runes = runes[:workspace.MaxChannelNameLen]
	}
	return string(runes)
}
