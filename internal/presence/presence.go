package presence

import (
	"context"
	"time"
)

const (
	StatusOnline  = "online"
	StatusAway    = "away"
	StatusOffline = "offline"
)

// Presence is a user's liveness snapshot derived from their last
// heartbeat.
type Presence struct {
	UserID   int64      `json:"user_id"`
	Status   string     `json:"status"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
}

// Store tracks heartbeats in a shared key-value store so every server
// instance sees the same liveness picture.
type Store interface {
	// Heartbeat records that the user is active right now.
	Heartbeat(ctx context.Context, userID int64) error
	// Get resolves a user's current presence. Users with no recorded
	// heartbeat are offline.
	Get(ctx context.Context, userID int64) (*Presence, error)
	// GetMany resolves presence for a batch of users.
	GetMany(ctx context.Context, userIDs []int64) (map[int64]*Presence, error)
}

// statusFor derives a status from the time since the last heartbeat.
func statusFor(sinceLastSeen, onlineTTL time.Duration) string {
	if sinceLastSeen <= onlineTTL {
		return StatusOnline
	}
	return StatusAway
}
