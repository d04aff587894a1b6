package policy

import (
	"errors"
	"time"

	"equipmart-backend/internal/domain/directory"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("policy not found")
	ErrInvalidInput = errors.New("invalid policy input")
)

// ServiceTier classifies a sourcing request and drives SLA targets and
// default approval quorums.
type ServiceTier string

const (
	TierStandard   ServiceTier = "standard"
	TierPriority   ServiceTier = "priority"
	TierEnterprise ServiceTier = "enterprise"
)

func (t ServiceTier) Valid() bool {
	switch t {
	case TierStandard, TierPriority, TierEnterprise:
		return true
	}
	return false
}

// DefaultRequiredApprovals is the quorum used when no policy applies.
func DefaultRequiredApprovals(t ServiceTier) int {
	if t == TierEnterprise {
		return 2
	}
	return 1
}

// DefaultTargetHours is the SLA response target per tier.
func DefaultTargetHours(t ServiceTier) float64 {
	switch t {
	case TierEnterprise:
		return 8
	case TierPriority:
		return 24
	default:
		return 72
	}
}

// DefaultApproverRole is the minimum team role seeded into new org policies.
func DefaultApproverRole(t ServiceTier) directory.TeamRole {
	switch t {
	case TierEnterprise:
		return directory.RoleOwner
	case TierPriority:
		return directory.RoleManager
	default:
		return directory.RoleApprover
	}
}

const (
	DefaultWarningRatio  = 1.0
	DefaultCriticalRatio = 1.5
)

// ApprovalPolicy configures approval routing and SLA thresholds for one
// (organization, service tier) pair. Rows are deactivated, never deleted;
// only the most recently updated active row applies.
type ApprovalPolicy struct {
	ID                     uint64             `gorm:"primaryKey;column:id" json:"-"`
	PolicyID               string             `gorm:"size:32;uniqueIndex:ux_policies_policy_id_active" json:"policy_id"`
	OrganizationID         string             `gorm:"size:32;index:idx_policies_org_tier" json:"organization_id"`
	ServiceTier            ServiceTier        `gorm:"type:enum('standard','priority','enterprise');index:idx_policies_org_tier" json:"service_tier"`
	RequiredApprovals      int                `gorm:"not null;default:1" json:"required_approvals"`
	ApproverTeamRole       directory.TeamRole `gorm:"type:enum('approver','manager','owner');default:'approver'" json:"approver_team_role"`
	AutoAssignEnabled      bool               `gorm:"not null;default:true" json:"auto_assign_enabled"`
	TargetHours            float64            `gorm:"type:decimal(8,2);default:0" json:"target_hours"` // 0 = tier default
	WarningThresholdRatio  float64            `gorm:"type:decimal(6,3);default:1.0" json:"warning_threshold_ratio"`
	CriticalThresholdRatio float64            `gorm:"type:decimal(6,3);default:1.5" json:"critical_threshold_ratio"`
	Active                 bool               `gorm:"not null;default:true;index" json:"active"`
	CreatedAt              time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt              gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (ApprovalPolicy) TableName() string { return "approval_policies" }

// EffectiveTargetHours resolves the SLA target, falling back to the tier
// default and flooring at 1h to keep ratio math sane.
func (p *ApprovalPolicy) EffectiveTargetHours() float64 {
	h := p.TargetHours
	if h <= 0 {
		h = DefaultTargetHours(p.ServiceTier)
	}
	if h < 1 {
		h = 1
	}
	return h
}
