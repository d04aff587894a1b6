package mysql

import (
	"context"

	policyDomain "equipmart-backend/internal/domain/policy"

	"gorm.io/gorm"
)

type PolicyRepository struct{ db *gorm.DB }

func NewPolicyRepository(db *gorm.DB) *PolicyRepository { return &PolicyRepository{db: db} }

func (r *PolicyRepository) Create(ctx context.Context, p *policyDomain.ApprovalPolicy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PolicyRepository) Save(ctx context.Context, p *policyDomain.ApprovalPolicy) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// FindActive: multiple rows may exist per (org, tier); only the most
// recently updated active one applies.
func (r *PolicyRepository) FindActive(ctx context.Context, orgID string, tier policyDomain.ServiceTier) (*policyDomain.ApprovalPolicy, error) {
	var out policyDomain.ApprovalPolicy
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND service_tier = ? AND active = ?", orgID, tier, true).
		Order("updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *PolicyRepository) GetByPolicyID(ctx context.Context, policyID string) (*policyDomain.ApprovalPolicy, error) {
	var out policyDomain.ApprovalPolicy
	res := r.db.WithContext(ctx).
		Where("policy_id = ?", policyID).
		First(&out)
	return &out, res.Error
}

func (r *PolicyRepository) ListByOrganization(ctx context.Context, orgID string) ([]policyDomain.ApprovalPolicy, error) {
	var out []policyDomain.ApprovalPolicy
	res := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("service_tier ASC, updated_at DESC").
		Find(&out)
	return out, res.Error
}
