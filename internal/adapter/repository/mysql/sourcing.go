package mysql

import (
	"context"

	sourcingDomain "equipmart-backend/internal/domain/sourcing"

	"gorm.io/gorm"
)

type SourcingRepository struct{ db *gorm.DB }

func NewSourcingRepository(db *gorm.DB) *SourcingRepository { return &SourcingRepository{db: db} }

func (r *SourcingRepository) Create(ctx context.Context, s *sourcingDomain.SourcingRequest) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SourcingRepository) Save(ctx context.Context, s *sourcingDomain.SourcingRequest) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SourcingRepository) GetByRequestID(ctx context.Context, requestID string) (*sourcingDomain.SourcingRequest, error) {
	var out sourcingDomain.SourcingRequest
	res := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		First(&out)
	return &out, res.Error
}

func (r *SourcingRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*sourcingDomain.SourcingRequest, error) {
	var out sourcingDomain.SourcingRequest
	res := forUpdate(r.db.WithContext(ctx)).
		Where("request_id = ?", requestID).
		First(&out)
	return &out, res.Error
}

func (r *SourcingRepository) ListOpen(ctx context.Context) ([]sourcingDomain.SourcingRequest, error) {
	var out []sourcingDomain.SourcingRequest
	res := r.db.WithContext(ctx).
		Where("status <> ?", sourcingDomain.StatusClosed).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *SourcingRepository) AppendEvent(ctx context.Context, e *sourcingDomain.SourcingEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *SourcingRepository) ListEvents(ctx context.Context, requestID string) ([]sourcingDomain.SourcingEvent, error) {
	var out []sourcingDomain.SourcingEvent
	res := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
