package mysql

import (
	"context"

	escalationDomain "equipmart-backend/internal/domain/escalation"

	"gorm.io/gorm"
)

type EscalationRepository struct{ db *gorm.DB }

func NewEscalationRepository(db *gorm.DB) *EscalationRepository {
	return &EscalationRepository{db: db}
}

// Create relies on the (alert_day, request_id, admin_id) unique index;
// callers treat gorm.ErrDuplicatedKey as "already alerted today".
func (r *EscalationRepository) Create(ctx context.Context, a *escalationDomain.Alert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *EscalationRepository) ListByDay(ctx context.Context, day string) ([]escalationDomain.Alert, error) {
	var out []escalationDomain.Alert
	res := r.db.WithContext(ctx).
		Where("alert_day = ?", day).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
