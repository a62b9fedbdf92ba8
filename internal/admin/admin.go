package admin

import "time"

// AuditLog is one entry in the admin trail. Rows are written by the
// event-bus recorder, never edited.
type AuditLog struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	EventType string    `json:"event_type" gorm:"column:event_type;not null;index"`
	ActorID   int64     `json:"actor_id" gorm:"column:actor_id;not null;index"`
	TargetID  int64     `json:"target_id" gorm:"column:target_id"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "admin_audit_logs"
}
