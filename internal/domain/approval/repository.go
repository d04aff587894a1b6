package approval

import "context"

type Repository interface {
	CreateRequest(ctx context.Context, r *ApprovalRequest) error
	SaveRequest(ctx context.Context, r *ApprovalRequest) error
	GetByApprovalID(ctx context.Context, approvalID string) (*ApprovalRequest, error)
	// GetByApprovalIDForUpdate locks the request row for the current tx so
	// concurrent decisions serialize.
	GetByApprovalIDForUpdate(ctx context.Context, approvalID string) (*ApprovalRequest, error)
	// GetPendingBySourcingID finds the (at most one) pending request for a
	// parent sourcing request.
	GetPendingBySourcingID(ctx context.Context, sourcingRequestID string) (*ApprovalRequest, error)

	// UpsertDecision inserts or overwrites the (request, approver) row.
	UpsertDecision(ctx context.Context, d *ApprovalDecision) error
	ListDecisions(ctx context.Context, approvalRequestID uint64) ([]ApprovalDecision, error)
}
