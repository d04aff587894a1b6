package notification

import (
	"context"
	"time"
)

type Kind string

const (
	KindApprovalRequested Kind = "approval_requested"
	KindApprovalProgress  Kind = "approval_progress"
	KindApprovalDecided   Kind = "approval_decided"
	KindSLAEscalation     Kind = "sla_escalation"
)

// Notification is one delivered (or at least recorded) user notification.
type Notification struct {
	ID             uint64            `gorm:"primaryKey;column:id" json:"-"`
	NotificationID string            `gorm:"size:36;uniqueIndex" json:"notification_id"`
	UserID         string            `gorm:"size:32;index:idx_notifications_user" json:"user_id"`
	Kind           Kind              `gorm:"size:32;index" json:"kind"`
	Title          string            `gorm:"size:255" json:"title"`
	Message        string            `gorm:"type:text" json:"message"`
	Metadata       map[string]string `gorm:"type:json;serializer:json" json:"metadata"`
	ReadAt         *time.Time        `json:"read_at"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// Emitter delivers notifications best-effort. Callers log failures and
// move on; delivery must never roll back a committed core change.
type Emitter interface {
	Notify(ctx context.Context, userID string, kind Kind, title, message string, metadata map[string]string) error
}
