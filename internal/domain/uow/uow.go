package uow

import (
	"context"

	"equipmart-backend/internal/domain/approval"
	"equipmart-backend/internal/domain/directory"
	"equipmart-backend/internal/domain/escalation"
	"equipmart-backend/internal/domain/policy"
	"equipmart-backend/internal/domain/sourcing"
)

type Repos struct {
	Directory directory.Repository
	Policies  policy.Repository
	Sourcing  sourcing.Repository
	Approvals approval.Repository
	Alerts    escalation.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the sourcing request first, then pass it in.
	// An unknown requestID surfaces as sourcing.ErrNotFound.
	WithinSourcingTx(ctx context.Context, requestID string, fn func(r Repos, s *sourcing.SourcingRequest) error) error
}
