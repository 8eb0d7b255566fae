package events

import (
	"time"

	"github.com/limonericx/community-bot/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestSubmitted     EventType = "request_submitted"
	EventWorkspaceProvisioned EventType = "workspace_provisioned"
	EventReviewStateChanged   EventType = "review_state_changed"
	EventWorkspaceArchived    EventType = "workspace_archived"
	EventMemberJoined         EventType = "member_joined"
	EventMemberLeft           EventType = "member_left"
)

// Event represents a domain event emitted by the bot's workflows.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id,omitempty"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestSubmittedPayload payload.
type RequestSubmittedPayload struct {
	Flow       domain.Flow `json:"flow"`
	Identifier string      `json:"identifier"`
	Category   string      `json:"category,omitempty"`
}

// WorkspaceProvisionedPayload payload.
type WorkspaceProvisionedPayload struct {
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
}

// ReviewStateChangedPayload payload.
type ReviewStateChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// WorkspaceArchivedPayload payload.
type WorkspaceArchivedPayload struct {
	ChannelID string `json:"channel_id"`
}

// MemberPayload payload for join/leave events.
type MemberPayload struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	MemberCount int    `json:"member_count"`
}
