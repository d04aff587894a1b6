package sourcing

import (
	"time"
)

// SourcingEvent is one append-only log row keyed by type. Consumers only
// ever need the latest snapshot per type, so there is no replay machinery.
type SourcingEvent struct {
	ID        uint64            `gorm:"primaryKey;column:id" json:"-"`
	RequestID string            `gorm:"size:32;index:idx_sourcing_events_request" json:"request_id"`
	EventType string            `gorm:"size:64;index" json:"event_type"`
	ActorID   string            `gorm:"size:32" json:"actor_id"`
	Payload   map[string]string `gorm:"type:json;serializer:json" json:"payload"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (SourcingEvent) TableName() string { return "sourcing_events" }

// LatestByType returns the newest event of the given type, or nil. Events
// are expected in append order; ties on CreatedAt resolve to the later row.
func LatestByType(events []SourcingEvent, eventType string) *SourcingEvent {
	var latest *SourcingEvent
	for i := range events {
		e := &events[i]
		if e.EventType != eventType {
			continue
		}
		if latest == nil || !e.CreatedAt.Before(latest.CreatedAt) {
			latest = e
		}
	}
	return latest
}
