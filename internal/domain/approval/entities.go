package approval

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("approval request not found")
	ErrPendingExists  = errors.New("a pending approval request already exists")
	ErrAlreadyDecided = errors.New("approval request already decided")
	ErrNotAuthorized  = errors.New("submitter is not an eligible approver")
	ErrInvalidStatus  = errors.New("invalid decision status")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// ValidDecision reports whether s is a submittable vote; pending is not.
func ValidDecision(s Status) bool { return s == StatusApproved || s == StatusRejected }

// ApprovalRequest is one approval cycle for a sourcing request. Quorum and
// the candidate pool are snapshotted at creation; later policy edits never
// touch an in-flight row.
type ApprovalRequest struct {
	ID                   uint64         `gorm:"primaryKey;column:id" json:"-"`
	ApprovalID           string         `gorm:"size:32;uniqueIndex:ux_approval_requests_approval_id" json:"approval_id"`
	SourcingRequestID    string         `gorm:"size:32;index:idx_approval_requests_sourcing" json:"sourcing_request_id"`
	RequesterID          string         `gorm:"size:32;index" json:"requester_id"`
	OrganizationID       *string        `gorm:"size:32" json:"organization_id"`
	ServiceTier          string         `gorm:"size:16" json:"service_tier"`
	PolicyID             *string        `gorm:"size:32" json:"policy_id"` // nil = default/admin-pool fallback
	PolicySource         string         `gorm:"size:16" json:"policy_source"`
	RequiredApprovals    int            `gorm:"not null;default:1" json:"required_approvals"`
	CandidateApproverIDs []string       `gorm:"type:json;serializer:json" json:"candidate_approver_ids"`
	PrimaryApproverID    *string        `gorm:"size:32" json:"primary_approver_id"`
	Status               Status         `gorm:"type:enum('pending','approved','rejected');default:'pending';index" json:"status"`
	DeciderID            *string        `gorm:"size:32" json:"decider_id"` // most recent decider, display only
	DecisionNote         string         `gorm:"type:text" json:"decision_note"`
	DecidedAt            *time.Time     `json:"decided_at"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ApprovalRequest) TableName() string { return "approval_requests" }

// InPool reports whether userID was in the snapshotted candidate pool.
func (r *ApprovalRequest) InPool(userID string) bool {
	if r.PrimaryApproverID != nil && *r.PrimaryApproverID == userID {
		return true
	}
	for _, id := range r.CandidateApproverIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ApprovalDecision is one approver's current vote on one request. The
// (request, approver) pair is unique; resubmission overwrites.
type ApprovalDecision struct {
	ID                uint64    `gorm:"primaryKey;column:id" json:"-"`
	ApprovalRequestID uint64    `gorm:"column:approval_request_id;not null;uniqueIndex:ux_decisions_request_approver" json:"-"`
	ApproverID        string    `gorm:"size:32;not null;uniqueIndex:ux_decisions_request_approver" json:"approver_id"`
	Status            Status    `gorm:"type:enum('approved','rejected');not null" json:"status"`
	Note              string    `gorm:"type:text" json:"note"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ApprovalDecision) TableName() string { return "approval_decisions" }
