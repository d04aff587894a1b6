package approvalmock

import (
	"context"

	domain "equipmart-backend/internal/domain/approval"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies approval.Repository.
// Only methods a test fills in are exercised; reads default to not-found.
type Repo struct {
	CreateRequestFn            func(ctx context.Context, r *domain.ApprovalRequest) error
	SaveRequestFn              func(ctx context.Context, r *domain.ApprovalRequest) error
	GetByApprovalIDFn          func(ctx context.Context, approvalID string) (*domain.ApprovalRequest, error)
	GetByApprovalIDForUpdateFn func(ctx context.Context, approvalID string) (*domain.ApprovalRequest, error)
	GetPendingBySourcingIDFn   func(ctx context.Context, sourcingRequestID string) (*domain.ApprovalRequest, error)
	UpsertDecisionFn           func(ctx context.Context, d *domain.ApprovalDecision) error
	ListDecisionsFn            func(ctx context.Context, approvalRequestID uint64) ([]domain.ApprovalDecision, error)
}

func (m *Repo) CreateRequest(ctx context.Context, r *domain.ApprovalRequest) error {
	if m.CreateRequestFn != nil {
		return m.CreateRequestFn(ctx, r)
	}
	return nil
}

func (m *Repo) SaveRequest(ctx context.Context, r *domain.ApprovalRequest) error {
	if m.SaveRequestFn != nil {
		return m.SaveRequestFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByApprovalID(ctx context.Context, approvalID string) (*domain.ApprovalRequest, error) {
	if m.GetByApprovalIDFn != nil {
		return m.GetByApprovalIDFn(ctx, approvalID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByApprovalIDForUpdate(ctx context.Context, approvalID string) (*domain.ApprovalRequest, error) {
	if m.GetByApprovalIDForUpdateFn != nil {
		return m.GetByApprovalIDForUpdateFn(ctx, approvalID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetPendingBySourcingID(ctx context.Context, sourcingRequestID string) (*domain.ApprovalRequest, error) {
	if m.GetPendingBySourcingIDFn != nil {
		return m.GetPendingBySourcingIDFn(ctx, sourcingRequestID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) UpsertDecision(ctx context.Context, d *domain.ApprovalDecision) error {
	if m.UpsertDecisionFn != nil {
		return m.UpsertDecisionFn(ctx, d)
	}
	return nil
}

func (m *Repo) ListDecisions(ctx context.Context, approvalRequestID uint64) ([]domain.ApprovalDecision, error) {
	if m.ListDecisionsFn != nil {
		return m.ListDecisionsFn(ctx, approvalRequestID)
	}
	return nil, nil
}
