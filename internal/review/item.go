// Package review models the message that represents a request to
// reviewers, together with its interactive controls and transition history.
package review

import (
	"time"

	"github.com/limonericx/community-bot/internal/domain"
	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/internal/workspace"
)

// Status is the lifecycle state of a review item.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusClaimed  Status = "CLAIMED"
	StatusClosed   Status = "CLOSED"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
	StatusInReview Status = "IN_REVIEW"
)

// Terminal reports whether no further ticket-flow transition is possible.
func (s Status) Terminal() bool {
	return s == StatusClosed
}

// Control custom ids carried on review messages.
const (
	ControlClaim  = "ticket.claim"
	ControlClose  = "ticket.close"
	ControlAccept = "app.accept"
	ControlReject = "app.reject"
	ControlReview = "app.review"
)

// Annotation records who did what to the item, in order.
type Annotation struct {
	Label        string
	ActorMention string
	At           time.Time
}

// Item is the reviewable message for one request. State changes are
// one-way: a disabled control is never re-enabled and annotations are
// append-only.
type Item struct {
	Request   *domain.Request
	Workspace *workspace.Workspace // ticket flow only

	Status      Status
	Annotations []Annotation
	Controls    []platform.Control

	ChannelID string
	MessageID string
}

// NewTicketItem builds an Open item with the ticket flow's controls.
func NewTicketItem(req *domain.Request, ws *workspace.Workspace) *Item {
	return &Item{
		Request:   req,
		Workspace: ws,
		Status:    StatusOpen,
		Controls: []platform.Control{
			&platform.Button{ID: ControlClaim, Label: "✅ Взять в работу", Style: platform.ButtonSuccess},
			&platform.Button{ID: ControlClose, Label: "🔒 Закрыть тикет", Style: platform.ButtonDanger},
		},
	}
}

// NewApplicationItem builds an Open item with the application flow's three
// independent controls.
func NewApplicationItem(req *domain.Request) *Item {
	return &Item{
		Request: req,
		Status:  StatusOpen,
		Controls: []platform.Control{
			&platform.Button{ID: ControlAccept, Label: "✅ Принять", Style: platform.ButtonSuccess},
			&platform.Button{ID: ControlReject, Label: "❌ Отклонить", Style: platform.ButtonDanger},
			&platform.Button{ID: ControlReview, Label: "📋 На рассмотрении", Style: platform.ButtonSecondary},
		},
	}
}

// Annotate appends a transition annotation.
func (i *Item) Annotate(label, actorMention string, at time.Time) {
	i.Annotations = append(i.Annotations, Annotation{Label: label, ActorMention: actorMention, At: at})
}

// DisableControl switches off a single control by id.
func (i *Item) DisableControl(id string) {
	if d, ok := platform.FindControl(i.Controls, id).(platform.Disableable); ok {
		d.SetDisabled(true)
	}
}

// DisableAllControls switches off every disableable control.
func (i *Item) DisableAllControls() {
	platform.DisableAll(i.Controls)
}

// ControlDisabled reports whether the control with the given id is off.
func (i *Item) ControlDisabled(id string) bool {
	if d, ok := platform.FindControl(i.Controls, id).(platform.Disableable); ok {
		return d.IsDisabled()
	}
	return false
}
