package mysql

import (
	"context"

	approvalDomain "equipmart-backend/internal/domain/approval"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) CreateRequest(ctx context.Context, a *approvalDomain.ApprovalRequest) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) SaveRequest(ctx context.Context, a *approvalDomain.ApprovalRequest) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApprovalRepository) GetByApprovalID(ctx context.Context, approvalID string) (*approvalDomain.ApprovalRequest, error) {
	var out approvalDomain.ApprovalRequest
	res := r.db.WithContext(ctx).
		Where("approval_id = ?", approvalID).
		First(&out)
	return &out, res.Error
}

// GetByApprovalIDForUpdate locks the request row so concurrent decision
// submissions serialize on it for the rest of the transaction.
func (r *ApprovalRepository) GetByApprovalIDForUpdate(ctx context.Context, approvalID string) (*approvalDomain.ApprovalRequest, error) {
	var out approvalDomain.ApprovalRequest
	res := forUpdate(r.db.WithContext(ctx)).
		Where("approval_id = ?", approvalID).
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRepository) GetPendingBySourcingID(ctx context.Context, sourcingRequestID string) (*approvalDomain.ApprovalRequest, error) {
	var out approvalDomain.ApprovalRequest
	res := r.db.WithContext(ctx).
		Where("sourcing_request_id = ? AND status = ?", sourcingRequestID, approvalDomain.StatusPending).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

// UpsertDecision: the (request, approver) pair is unique; a resubmission
// overwrites status and note instead of appending history.
func (r *ApprovalRepository) UpsertDecision(ctx context.Context, d *approvalDomain.ApprovalDecision) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "approval_request_id"}, {Name: "approver_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "note", "updated_at"}),
		}).
		Create(d).Error
}

func (r *ApprovalRepository) ListDecisions(ctx context.Context, approvalRequestID uint64) ([]approvalDomain.ApprovalDecision, error) {
	var out []approvalDomain.ApprovalDecision
	res := r.db.WithContext(ctx).
		Where("approval_request_id = ?", approvalRequestID).
		Order("updated_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
