package sourcing

import (
	"errors"
	"time"

	"equipmart-backend/internal/domain/policy"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("sourcing request not found")
	ErrClosed   = errors.New("sourcing request is closed")
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusQuoted Status = "quoted"
	StatusClosed Status = "closed"
)

// Open reports whether the request still counts for SLA scoring and sweeps.
func (s Status) Open() bool { return s == StatusOpen || s == StatusQuoted }

// SourcingRequest is one buyer RFQ. The approval cycle and the SLA scorer
// both hang off this row.
type SourcingRequest struct {
	ID              uint64             `gorm:"primaryKey;column:id" json:"-"`
	RequestID       string             `gorm:"size:32;uniqueIndex:ux_sourcing_request_id_active" json:"request_id"`
	RequesterID     string             `gorm:"size:32;index:idx_sourcing_requester" json:"requester_id"`
	OrganizationID  *string            `gorm:"size:32;index:idx_sourcing_org" json:"organization_id"`
	ServiceTier     policy.ServiceTier `gorm:"type:enum('standard','priority','enterprise');default:'standard'" json:"service_tier"`
	Title           string             `gorm:"size:255" json:"title"`
	Status          Status             `gorm:"type:enum('open','quoted','closed');default:'open';index" json:"status"`
	HasActiveOffer  bool               `gorm:"not null;default:false" json:"has_active_offer"`
	StatusUpdatedAt time.Time          `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (SourcingRequest) TableName() string { return "sourcing_requests" }
