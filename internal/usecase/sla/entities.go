package sla

import (
	"time"

	"equipmart-backend/internal/domain/escalation"
	"equipmart-backend/internal/domain/policy"
)

// Snapshot is the derived SLA state of one open request at a point in time.
// It is never persisted; recomputing it is always safe.
type Snapshot struct {
	AgeHours    float64 `json:"age_hours"`
	TargetHours float64 `json:"target_hours"`
	Ratio       float64 `json:"ratio"`
	Warning     bool    `json:"warning"`
	Critical    bool    `json:"critical"`
}

// QueueItem is one priority-queue entry for the ops dashboard.
type QueueItem struct {
	RequestID      string             `json:"request_id"`
	ServiceTier    policy.ServiceTier `json:"service_tier"`
	HasActiveOffer bool               `json:"has_active_offer"`
	Score          int                `json:"score"`
	Snapshot       Snapshot           `json:"sla"`
	CreatedAt      time.Time          `json:"created_at"`
}

// SweepResult summarizes one escalation sweep run.
type SweepResult struct {
	Day          string             `json:"day"`
	Scanned      int                `json:"scanned"`
	Breached     int                `json:"breached"`
	Emitted      int                `json:"emitted"`
	Deduplicated int                `json:"deduplicated"`
	Alerts       []escalation.Alert `json:"alerts"`
}

// Simulation previews warning/critical counts for proposed thresholds.
type Simulation struct {
	WarningRatio  float64 `json:"warning_ratio"`
	CriticalRatio float64 `json:"critical_ratio"`
	Total         int     `json:"total"`
	WarningCount  int     `json:"warning_count"`
	CriticalCount int     `json:"critical_count"`
}
