package mysql

import (
	"context"
	"errors"

	sourcingDomain "equipmart-backend/internal/domain/sourcing"
	"equipmart-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Directory: &DirectoryRepository{db: tx},
		Policies:  &PolicyRepository{db: tx},
		Sourcing:  &SourcingRepository{db: tx},
		Approvals: &ApprovalRepository{db: tx},
		Alerts:    &EscalationRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinSourcingTx(ctx context.Context, requestID string, fn func(r uow.Repos, s *sourcingDomain.SourcingRequest) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the sourcing row up-front to prevent races
		s, err := r.Sourcing.GetByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return sourcingDomain.ErrNotFound
			}
			return err
		}
		return fn(r, s)
	})
}
