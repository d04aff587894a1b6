package escalation

import (
	"context"
	"time"
)

type Severity string

const (
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Alert records one SLA escalation notification. The unique index over
// (alert_day, request_id, admin_id) is the sweep's idempotency mechanism:
// a duplicate insert fails instead of racing a check-then-write.
type Alert struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	AlertDay  string    `gorm:"size:10;not null;uniqueIndex:ux_alerts_day_request_admin" json:"alert_day"` // YYYY-MM-DD
	RequestID string    `gorm:"size:32;not null;uniqueIndex:ux_alerts_day_request_admin" json:"request_id"`
	AdminID   string    `gorm:"size:32;not null;uniqueIndex:ux_alerts_day_request_admin" json:"admin_id"`
	Severity  Severity  `gorm:"type:enum('medium','high');not null" json:"severity"`
	AgeHours  float64   `gorm:"type:decimal(10,2)" json:"age_hours"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Alert) TableName() string { return "escalation_alerts" }

// Day formats t as the dedupe calendar day (UTC).
func Day(t time.Time) string { return t.UTC().Format("2006-01-02") }

type Repository interface {
	// Create inserts the alert; a replay for the same (day, request, admin)
	// tuple returns gorm.ErrDuplicatedKey.
	Create(ctx context.Context, a *Alert) error
	ListByDay(ctx context.Context, day string) ([]Alert, error)
}
