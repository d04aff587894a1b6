package policycfg

import (
	"context"
	"errors"
	"time"

	"equipmart-backend/internal/domain/directory"
	"equipmart-backend/internal/domain/policy"
	"equipmart-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	policies policy.Repository
}

func NewUsecase(policies policy.Repository) *Usecase {
	return &Usecase{policies: policies}
}

type UpsertInput struct {
	OrganizationID    string
	ServiceTier       policy.ServiceTier
	RequiredApprovals int
	ApproverTeamRole  directory.TeamRole
	AutoAssignEnabled bool
	TargetHours       float64
	WarningRatio      float64
	CriticalRatio     float64
}

type PolicyDTO struct {
	PolicyID          string             `json:"policy_id"`
	OrganizationID    string             `json:"organization_id"`
	ServiceTier       policy.ServiceTier `json:"service_tier"`
	RequiredApprovals int                `json:"required_approvals"`
	ApproverTeamRole  directory.TeamRole `json:"approver_team_role"`
	AutoAssignEnabled bool               `json:"auto_assign_enabled"`
	TargetHours       float64            `json:"target_hours"`
	WarningRatio      float64            `json:"warning_threshold_ratio"`
	CriticalRatio     float64            `json:"critical_threshold_ratio"`
	Active            bool               `json:"active"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func (in UpsertInput) validate() error {
	if in.OrganizationID == "" || !in.ServiceTier.Valid() || !in.ApproverTeamRole.Valid() {
		return policy.ErrInvalidInput
	}
	if in.RequiredApprovals < 1 || in.TargetHours < 0 {
		return policy.ErrInvalidInput
	}
	if in.WarningRatio <= 0 || in.CriticalRatio < in.WarningRatio {
		return policy.ErrInvalidInput
	}
	return nil
}

// Upsert updates the active (org, tier) policy in place, or creates one.
// In-flight approval requests keep their creation-time snapshots.
func (u *Usecase) Upsert(ctx context.Context, in UpsertInput) (*PolicyDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := u.policies.FindActive(ctx, in.OrganizationID, in.ServiceTier)
	switch {
	case err == nil:
		existing.RequiredApprovals = in.RequiredApprovals
		existing.ApproverTeamRole = in.ApproverTeamRole
		existing.AutoAssignEnabled = in.AutoAssignEnabled
		existing.TargetHours = in.TargetHours
		existing.WarningThresholdRatio = in.WarningRatio
		existing.CriticalThresholdRatio = in.CriticalRatio
		if err := u.policies.Save(ctx, existing); err != nil {
			return nil, err
		}
		return toDTO(existing), nil
	case errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, policy.ErrNotFound):
		p := &policy.ApprovalPolicy{
			PolicyID:               id.NewID32(),
			OrganizationID:         in.OrganizationID,
			ServiceTier:            in.ServiceTier,
			RequiredApprovals:      in.RequiredApprovals,
			ApproverTeamRole:       in.ApproverTeamRole,
			AutoAssignEnabled:      in.AutoAssignEnabled,
			TargetHours:            in.TargetHours,
			WarningThresholdRatio:  in.WarningRatio,
			CriticalThresholdRatio: in.CriticalRatio,
			Active:                 true,
		}
		if err := u.policies.Create(ctx, p); err != nil {
			return nil, err
		}
		return toDTO(p), nil
	default:
		return nil, err
	}
}

// SeedDefaults creates the per-tier default policies for a new org,
// skipping tiers that already have an active policy.
func (u *Usecase) SeedDefaults(ctx context.Context, orgID string) error {
	if orgID == "" {
		return policy.ErrInvalidInput
	}
	for _, tier := range []policy.ServiceTier{policy.TierStandard, policy.TierPriority, policy.TierEnterprise} {
		_, err := u.policies.FindActive(ctx, orgID, tier)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, policy.ErrNotFound) {
			return err
		}
		p := &policy.ApprovalPolicy{
			PolicyID:               id.NewID32(),
			OrganizationID:         orgID,
			ServiceTier:            tier,
			RequiredApprovals:      policy.DefaultRequiredApprovals(tier),
			ApproverTeamRole:       policy.DefaultApproverRole(tier),
			AutoAssignEnabled:      true,
			WarningThresholdRatio:  policy.DefaultWarningRatio,
			CriticalThresholdRatio: policy.DefaultCriticalRatio,
			Active:                 true,
		}
		if err := u.policies.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (u *Usecase) ListByOrganization(ctx context.Context, orgID string) ([]PolicyDTO, error) {
	rows, err := u.policies.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	out := make([]PolicyDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

// Deactivate retires a policy; rows are never hard-deleted.
func (u *Usecase) Deactivate(ctx context.Context, policyID string) error {
	p, err := u.policies.GetByPolicyID(ctx, policyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return policy.ErrNotFound
		}
		return err
	}
	p.Active = false
	return u.policies.Save(ctx, p)
}

func toDTO(p *policy.ApprovalPolicy) *PolicyDTO {
	return &PolicyDTO{
		PolicyID:          p.PolicyID,
		OrganizationID:    p.OrganizationID,
		ServiceTier:       p.ServiceTier,
		RequiredApprovals: p.RequiredApprovals,
		ApproverTeamRole:  p.ApproverTeamRole,
		AutoAssignEnabled: p.AutoAssignEnabled,
		TargetHours:       p.TargetHours,
		WarningRatio:      p.WarningThresholdRatio,
		CriticalRatio:     p.CriticalThresholdRatio,
		Active:            p.Active,
		UpdatedAt:         p.UpdatedAt,
	}
}
