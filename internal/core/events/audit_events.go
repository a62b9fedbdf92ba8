package events

import (
	"time"

	"github.com/google/uuid"
)

// Audit event types consumed by the admin module's audit recorder.
const (
	EventPostApproved    = "wall.post_approved"
	EventPostDeleted     = "wall.post_deleted"
	EventUserRoleUpdated = "user.role_updated"
	EventMenuPublished   = "mess.menu_published"
	EventEntrySettled    = "ledger.entry_settled"
)

// NewAuditEvent builds an event carrying the acting user, the affected
// record, and a human-readable detail line.
func NewAuditEvent(eventType string, actorID, targetID int64, details string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"actor_id":  actorID,
			"target_id": targetID,
			"details":   details,
		},
	}
}
