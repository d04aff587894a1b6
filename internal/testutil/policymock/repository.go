package policymock

import (
	"context"

	domain "equipmart-backend/internal/domain/policy"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies policy.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, p *domain.ApprovalPolicy) error
	SaveFn               func(ctx context.Context, p *domain.ApprovalPolicy) error
	FindActiveFn         func(ctx context.Context, orgID string, tier domain.ServiceTier) (*domain.ApprovalPolicy, error)
	GetByPolicyIDFn      func(ctx context.Context, policyID string) (*domain.ApprovalPolicy, error)
	ListByOrganizationFn func(ctx context.Context, orgID string) ([]domain.ApprovalPolicy, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.ApprovalPolicy) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.ApprovalPolicy) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) FindActive(ctx context.Context, orgID string, tier domain.ServiceTier) (*domain.ApprovalPolicy, error) {
	if m.FindActiveFn != nil {
		return m.FindActiveFn(ctx, orgID, tier)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByPolicyID(ctx context.Context, policyID string) (*domain.ApprovalPolicy, error) {
	if m.GetByPolicyIDFn != nil {
		return m.GetByPolicyIDFn(ctx, policyID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByOrganization(ctx context.Context, orgID string) ([]domain.ApprovalPolicy, error) {
	if m.ListByOrganizationFn != nil {
		return m.ListByOrganizationFn(ctx, orgID)
	}
	return nil, nil
}
