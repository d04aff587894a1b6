package policy

import "context"

type Repository interface {
	Create(ctx context.Context, p *ApprovalPolicy) error
	Save(ctx context.Context, p *ApprovalPolicy) error

	// FindActive returns the most recently updated active policy for the
	// (org, tier) pair, or ErrNotFound.
	FindActive(ctx context.Context, orgID string, tier ServiceTier) (*ApprovalPolicy, error)

	GetByPolicyID(ctx context.Context, policyID string) (*ApprovalPolicy, error)
	ListByOrganization(ctx context.Context, orgID string) ([]ApprovalPolicy, error)
}
